package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/domain/entity"
	"companymatch/cmd/internal/domain/sqlite/repository"
	"companymatch/cmd/internal/utils/apierror"
)

type CompanyRepository interface {
	SearchByName(query string, limit int) ([]*entity.ScoredCompany, error)
	FindByNumber(number string) (*entity.Company, error)
	Count() (int64, error)
}

type Recommender interface {
	Recommend(ctx context.Context, query string, candidates []*entity.Company) (Recommendation, error)
}

type DefaultMatchService struct {
	CompanyRepo CompanyRepository
	Recommender Recommender
	Validate    *validator.Validate

	// SearchLimit is the top-K candidate count handed to the oracle.
	SearchLimit int
}

func NewMatchService(
	companyRepo CompanyRepository,
	recommender Recommender,
	validate *validator.Validate,
	searchLimit int,
) *DefaultMatchService {
	return &DefaultMatchService{
		CompanyRepo: companyRepo,
		Recommender: recommender,
		Validate:    validate,
		SearchLimit: searchLimit,
	}
}

// MatchCompanies resolves each submitted name independently and
// concurrently. Results are keyed by the as-submitted name, so a
// duplicated name keeps only its last resolution.
func (m *DefaultMatchService) MatchCompanies(ctx context.Context, req *contract.MatchRequest) (*contract.MatchResponse, apierror.ErrorResponse) {
	if err := m.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		matches  = make(map[string]*contract.CompanyMatch, len(req.CompanyNames))
		firstErr apierror.ErrorResponse
	)

	for _, name := range req.CompanyNames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			match, apierr := m.resolveOne(ctx, name)

			mu.Lock()
			defer mu.Unlock()
			if apierr != nil {
				if firstErr == nil {
					firstErr = apierr
				}
				return
			}
			matches[name] = match
		}(name)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &contract.MatchResponse{Matches: matches}, nil
}

// resolveOne runs the retrieval plus re-rank pipeline for one name. An
// oracle failure or an unrecognized answer degrades to "no
// recommendation" with every candidate kept as an other match.
func (m *DefaultMatchService) resolveOne(ctx context.Context, name string) (*contract.CompanyMatch, apierror.ErrorResponse) {
	scored, apierr := m.search(name, m.SearchLimit)
	if apierr != nil {
		return nil, apierr
	}

	if len(scored) == 0 {
		return &contract.CompanyMatch{OtherMatches: []*contract.CompanyResponse{}}, nil
	}

	candidates := make([]*entity.Company, len(scored))
	for i, sc := range scored {
		candidates[i] = &sc.Company
	}

	rec, err := m.Recommender.Recommend(ctx, name, candidates)
	if err != nil {
		log.Errorf("oracle recommendation failed for %q, returning all candidates: %v", name, err)
		rec = Recommendation{}
	}

	match := &contract.CompanyMatch{OtherMatches: []*contract.CompanyResponse{}}
	for _, sc := range scored {
		resp := toScoredCompanyResp(sc)
		if rec.Confident && sc.CompanyNumber == rec.CompanyNumber {
			match.RecommendedMatch = resp
		} else {
			match.OtherMatches = append(match.OtherMatches, resp)
		}
	}
	return match, nil
}

// SearchCompanies is retrieval only: no oracle. The top-scored candidate
// is reported as the best match.
func (m *DefaultMatchService) SearchCompanies(ctx context.Context, reqs []*contract.SearchRequest) ([]*contract.SearchResponse, apierror.ErrorResponse) {
	responses := make([]*contract.SearchResponse, 0, len(reqs))

	for _, req := range reqs {
		if err := m.Validate.Struct(req); err != nil {
			return nil, apierror.FromValidationError(err)
		}

		limit := req.Limit
		if limit == 0 {
			limit = m.SearchLimit
		}

		scored, apierr := m.search(req.CompanyName, limit)
		if apierr != nil {
			return nil, apierr
		}

		resp := &contract.SearchResponse{
			SearchString: req.CompanyName,
			OtherMatches: []*contract.CompanyResponse{},
		}
		for i, sc := range scored {
			if i == 0 {
				resp.BestMatch = toScoredCompanyResp(sc)
				continue
			}
			resp.OtherMatches = append(resp.OtherMatches, toScoredCompanyResp(sc))
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetCompany is the exact-number point lookup.
func (m *DefaultMatchService) GetCompany(number string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, err := m.CompanyRepo.FindByNumber(strings.TrimSpace(number))
	if err != nil {
		return nil, m.storeError("lookup", err)
	}
	if company == nil {
		return nil, apierror.CompanyNotFoundError
	}
	return toCompanyResp(company, nil), nil
}

func (m *DefaultMatchService) Health() (*contract.HealthResponse, apierror.ErrorResponse) {
	count, err := m.CompanyRepo.Count()
	if err != nil {
		return nil, m.storeError("health check", err)
	}
	return &contract.HealthResponse{Status: "ok", Companies: count}, nil
}

func (m *DefaultMatchService) search(name string, limit int) ([]*entity.ScoredCompany, apierror.ErrorResponse) {
	scored, err := m.CompanyRepo.SearchByName(name, limit)
	if err != nil {
		return nil, m.storeError("search", err)
	}
	return scored, nil
}

func (m *DefaultMatchService) storeError(op string, err error) apierror.ErrorResponse {
	if errors.Is(err, repository.ErrStoreNotReady) {
		log.Errorf("%s issued before the registry store was built", op)
		return apierror.StoreNotReadyError
	}
	log.Errorf("registry %s failed: %v", op, err)
	return apierror.InternalServerError
}
