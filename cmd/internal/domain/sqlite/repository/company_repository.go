package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"companymatch/cmd/internal/domain/entity"
)

const (
	companiesTable = "companies"
	ftsTable       = "companies_fts"

	insertBatchSize = 500
)

// ErrStoreNotReady is returned when a query arrives before the registry
// table and its full-text index have been built. This is a sequencing
// bug in the caller, not a user error.
var ErrStoreNotReady = errors.New("registry store is not built yet")

type DefaultCompanyRepository struct {
	db *gorm.DB

	mu    sync.Mutex
	ready bool
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// BeginRebuild drops the registry table and its index and recreates the
// table empty. The rebuild is wholesale: there is no per-record upsert.
func (r *DefaultCompanyRepository) BeginRebuild() error {
	r.mu.Lock()
	r.ready = false
	r.mu.Unlock()

	if err := r.db.Exec("DROP TABLE IF EXISTS " + ftsTable).Error; err != nil {
		return err
	}
	if err := r.db.Migrator().DropTable(&entity.Company{}); err != nil {
		return err
	}
	return r.db.AutoMigrate(&entity.Company{})
}

// InsertBatch bulk-inserts one chunk of parsed registry rows.
func (r *DefaultCompanyRepository) InsertBatch(companies []*entity.Company) error {
	if len(companies) == 0 {
		return nil
	}
	return r.db.CreateInBatches(companies, insertBatchSize).Error
}

// BuildSearchIndex (re)creates the FTS5 index over exactly two fields:
// the company number (unindexed document key) and the company name (the
// only scored column). A prior index of the same name is overwritten.
func (r *DefaultCompanyRepository) BuildSearchIndex() error {
	if err := r.db.Exec("DROP TABLE IF EXISTS " + ftsTable).Error; err != nil {
		return err
	}

	err := r.db.Exec(fmt.Sprintf(
		"CREATE VIRTUAL TABLE %s USING fts5(company_number UNINDEXED, company_name)",
		ftsTable,
	)).Error
	if err != nil {
		return err
	}

	err = r.db.Exec(fmt.Sprintf(
		"INSERT INTO %s (company_number, company_name) SELECT company_number, company_name FROM %s",
		ftsTable, companiesTable,
	)).Error
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.ready = true
	r.mu.Unlock()
	return nil
}

// SearchByName runs a ranked BM25 search over company names and returns
// up to limit candidates, best first. Rows with no token overlap never
// appear; zero results is a valid outcome. Ties are broken by ascending
// company number so result order is stable within one build.
func (r *DefaultCompanyRepository) SearchByName(query string, limit int) ([]*entity.ScoredCompany, error) {
	if err := r.ensureReady(); err != nil {
		return nil, err
	}

	match := matchExpression(query)
	if match == "" {
		return []*entity.ScoredCompany{}, nil
	}

	var results []*entity.ScoredCompany
	err := r.db.Raw(fmt.Sprintf(`
		SELECT c.*, -bm25(%[1]s) AS score
		FROM %[1]s
		JOIN %[2]s c ON c.company_number = %[1]s.company_number
		WHERE %[1]s MATCH ?
		ORDER BY score DESC, c.company_number ASC
		LIMIT ?`, ftsTable, companiesTable),
		match, limit,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []*entity.ScoredCompany{}
	}
	return results, nil
}

// FindByNumber is an exact point lookup on the company number. A missing
// number returns (nil, nil), not an error.
func (r *DefaultCompanyRepository) FindByNumber(number string) (*entity.Company, error) {
	if err := r.ensureReady(); err != nil {
		return nil, err
	}

	var company entity.Company
	err := r.db.
		Where("company_number = ?", number).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) Count() (int64, error) {
	if err := r.ensureReady(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.Model(&entity.Company{}).Count(&count).Error
	return count, err
}

// Ready reports whether both the registry table and its full-text index
// exist, probing the database on first call after startup.
func (r *DefaultCompanyRepository) Ready() bool {
	return r.ensureReady() == nil
}

func (r *DefaultCompanyRepository) ensureReady() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return nil
	}

	if !r.db.Migrator().HasTable(&entity.Company{}) {
		return ErrStoreNotReady
	}

	var count int64
	err := r.db.
		Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", ftsTable).
		Scan(&count).Error
	if err != nil || count == 0 {
		return ErrStoreNotReady
	}

	r.ready = true
	return nil
}

// matchExpression turns a raw query into an FTS5 MATCH expression by
// quoting each term and OR-joining them. Quoting keeps punctuation in
// registry names (leading "!", embedded quotes) from being parsed as
// FTS5 syntax. An empty expression means nothing is searchable.
func matchExpression(query string) string {
	terms := strings.FieldsFunc(query, func(r rune) bool {
		return !isTermRune(r)
	})
	if len(terms) == 0 {
		return ""
	}

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " OR ")
}

func isTermRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return r > 127
	}
}
