package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"companymatch/cmd/internal/domain/entity"
)

// RowReader streams Company rows out of a snapshot CSV using the static
// column table. Headers are matched exactly (after trimming the stray
// spaces the published snapshot carries); unknown headers are skipped.
type RowReader struct {
	r *csv.Reader

	// setters is positional: setters[i] decodes CSV field i, nil when
	// the column is not part of the schema.
	setters []func(c *entity.Company, raw string) error

	line int
}

func NewRowReader(r io.Reader) (*RowReader, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	byHeader := make(map[string]column, len(columns))
	for _, col := range columns {
		byHeader[col.header] = col
	}

	setters := make([]func(c *entity.Company, raw string) error, len(header))
	seen := map[string]bool{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if col, ok := byHeader[h]; ok {
			setters[i] = col.set
			seen[h] = true
		}
	}

	if !seen["CompanyName"] || !seen["CompanyNumber"] {
		return nil, errors.New("csv header is missing CompanyName or CompanyNumber")
	}

	return &RowReader{r: cr, setters: setters, line: 1}, nil
}

// Read decodes the next row, returning io.EOF at the end of the file.
func (rr *RowReader) Read() (*entity.Company, error) {
	record, err := rr.r.Read()
	if err != nil {
		return nil, err
	}
	rr.line++

	company := &entity.Company{}
	for i, raw := range record {
		if i >= len(rr.setters) || rr.setters[i] == nil {
			continue
		}
		if err := rr.setters[i](company, raw); err != nil {
			return nil, fmt.Errorf("row %d: %w", rr.line, err)
		}
	}

	if company.CompanyNumber == "" || company.CompanyName == "" {
		return nil, fmt.Errorf("row %d: empty company number or name", rr.line)
	}
	return company, nil
}
