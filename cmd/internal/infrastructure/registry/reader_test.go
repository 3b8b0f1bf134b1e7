package registry

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companymatch/cmd/internal/domain/entity"
)

const sampleCSV = "testdata/companies_house_sample.csv"

func readAll(t *testing.T, rr *RowReader) []*entity.Company {
	t.Helper()

	var companies []*entity.Company
	for {
		c, err := rr.Read()
		if errors.Is(err, io.EOF) {
			return companies
		}
		require.NoError(t, err)
		companies = append(companies, c)
	}
}

func TestRowReaderDecodesSample(t *testing.T) {
	f, err := os.Open(filepath.FromSlash(sampleCSV))
	require.NoError(t, err)
	defer f.Close()

	rr, err := NewRowReader(f)
	require.NoError(t, err)

	companies := readAll(t, rr)
	require.Len(t, companies, 6)

	first := companies[0]
	assert.Equal(t, "!BIG IMPACT GRAPHICS LIMITED", first.CompanyName)
	assert.Equal(t, "11743365", first.CompanyNumber)
	assert.Equal(t, "372 Old Street", first.RegAddressAddressLine1)
	assert.Equal(t, "LONDON", first.RegAddressPostTown)
	assert.Equal(t, "Active", first.CompanyStatus)
	require.NotNil(t, first.IncorporationDate)
	assert.Equal(t, time.Date(2018, 12, 18, 0, 0, 0, 0, time.UTC), *first.IncorporationDate)
	require.NotNil(t, first.MortgagesNumMortCharges)
	assert.Equal(t, 0, *first.MortgagesNumMortCharges)
	assert.Empty(t, first.PreviousNames())

	quoted := companies[2]
	assert.Equal(t, `" TRIPLE D" PROPERTIES LIMITED`, quoted.CompanyName)

	renamed := companies[3]
	prev := renamed.PreviousNames()
	require.Len(t, prev, 1)
	assert.Equal(t, "AARDVARK ADVISORY LIMITED", prev[0].Name)
	require.NotNil(t, prev[0].Date)
	assert.Equal(t, time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC), *prev[0].Date)
}

func TestRowReaderRejectsMissingKeyColumns(t *testing.T) {
	_, err := NewRowReader(strings.NewReader("CompanyName,RegAddress.PostTown\nFOO LIMITED,LEEDS\n"))
	assert.Error(t, err)
}

func TestRowReaderRejectsEmptyNumber(t *testing.T) {
	rr, err := NewRowReader(strings.NewReader("CompanyName,CompanyNumber\nFOO LIMITED,\n"))
	require.NoError(t, err)

	_, err = rr.Read()
	assert.Error(t, err)
}

func TestRowReaderRejectsBadDate(t *testing.T) {
	rr, err := NewRowReader(strings.NewReader("CompanyName,CompanyNumber,IncorporationDate\nFOO LIMITED,123,2018-12-18\n"))
	require.NoError(t, err)

	_, err = rr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IncorporationDate")
}

func TestRowReaderIgnoresUnknownColumns(t *testing.T) {
	rr, err := NewRowReader(strings.NewReader("CompanyName,CompanyNumber,SomeFutureColumn\nFOO LIMITED,123,whatever\n"))
	require.NoError(t, err)

	c, err := rr.Read()
	require.NoError(t, err)
	assert.Equal(t, "FOO LIMITED", c.CompanyName)
	assert.Equal(t, "123", c.CompanyNumber)
}
