package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/domain/sqlite"
	"companymatch/cmd/internal/domain/sqlite/repository"
	"companymatch/cmd/internal/infrastructure/registry"
	"companymatch/cmd/internal/utils/validators"
)

const sampleCSVContent = `CompanyName,CompanyNumber,RegAddress.PostTown,CompanyStatus,IncorporationDate
!BIG IMPACT GRAPHICS LIMITED,11743365,LONDON,Active,18/12/2018
!NSPIRED INVESTMENTS LTD,SC606050,EDINBURGH,Active,09/08/2018
""" TRIPLE D"" PROPERTIES LIMITED",12001110,NORWICH,Active,23/05/2019
AARDVARK CONSULTING LIMITED,10000001,MANCHESTER,Active,11/01/2016
BRIGHT SPARK ENERGY LIMITED,10000002,BIRMINGHAM,Liquidation,02/02/2016
CORNWALL KITCHENS LTD,10000003,TRURO,Active,30/06/2017
`

const sampleRows = 6

type indexFixture struct {
	repo    *repository.DefaultCompanyRepository
	svc     *IndexService
	csvPath string
}

func newIndexFixture(t *testing.T) *indexFixture {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "companies.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSVContent), 0o644))

	db, err := sqlite.Init(filepath.Join(dir, "companies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	repo := repository.NewCompanyRepository(db)
	resolver := registry.NewResolver(filepath.Join(dir, "data"), nil)

	return &indexFixture{
		repo:    repo,
		svc:     NewIndexService(repo, resolver),
		csvPath: csvPath,
	}
}

func TestBuildPopulatesStore(t *testing.T) {
	fx := newIndexFixture(t)

	require.NoError(t, fx.svc.Build(context.Background(), fx.csvPath, false))

	assert.True(t, fx.repo.Ready())
	count, err := fx.repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(sampleRows), count)
}

func TestBuildTwiceKeepsRowCount(t *testing.T) {
	fx := newIndexFixture(t)

	require.NoError(t, fx.svc.Build(context.Background(), fx.csvPath, true))
	first, err := fx.repo.Count()
	require.NoError(t, err)

	require.NoError(t, fx.svc.Build(context.Background(), fx.csvPath, true))
	second, err := fx.repo.Count()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnsureBuiltReusesExistingStore(t *testing.T) {
	fx := newIndexFixture(t)

	require.NoError(t, fx.svc.Build(context.Background(), fx.csvPath, false))

	// An already-built store is reused even without a configured source.
	assert.NoError(t, fx.svc.EnsureBuilt(context.Background(), "", false))
}

func TestEnsureBuiltRequiresSourceWhenUnbuilt(t *testing.T) {
	fx := newIndexFixture(t)

	err := fx.svc.EnsureBuilt(context.Background(), "", false)
	assert.ErrorIs(t, err, registry.ErrSourceNotFound)
}

// End-to-end: CSV build, FTS retrieval and a stubbed oracle pick.
func TestMatchPipelineGraphicsScenario(t *testing.T) {
	fx := newIndexFixture(t)
	require.NoError(t, fx.svc.Build(context.Background(), fx.csvPath, false))

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("notblank", validators.NotBlank))

	oracle := &stubOracle{answer: "11743365"}
	m := NewMatchService(fx.repo, NewOracleRecommender(oracle, time.Second), validate, 10)

	resp, apierr := m.MatchCompanies(context.Background(), &contract.MatchRequest{
		CompanyNames: []string{"GRAPHICS", "COMPANYTHATDOESNOTEXIST"},
	})
	require.Nil(t, apierr)

	match := resp.Matches["GRAPHICS"]
	require.NotNil(t, match)
	require.NotNil(t, match.RecommendedMatch)
	assert.Equal(t, "11743365", match.RecommendedMatch.CompanyNumber)
	assert.Equal(t, "!BIG IMPACT GRAPHICS LIMITED", match.RecommendedMatch.CompanyName)
	assert.Empty(t, match.OtherMatches)

	miss := resp.Matches["COMPANYTHATDOESNOTEXIST"]
	require.NotNil(t, miss)
	assert.Nil(t, miss.RecommendedMatch)
	assert.Empty(t, miss.OtherMatches)
}
