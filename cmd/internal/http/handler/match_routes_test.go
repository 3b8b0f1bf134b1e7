package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/utils/apierror"
)

type stubMatchService struct {
	resp   *contract.MatchResponse
	search []*contract.SearchResponse
	apierr apierror.ErrorResponse
}

func (s *stubMatchService) MatchCompanies(_ context.Context, _ *contract.MatchRequest) (*contract.MatchResponse, apierror.ErrorResponse) {
	return s.resp, s.apierr
}

func (s *stubMatchService) SearchCompanies(_ context.Context, _ []*contract.SearchRequest) ([]*contract.SearchResponse, apierror.ErrorResponse) {
	return s.search, s.apierr
}

func doJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestMatchCompaniesHandler(t *testing.T) {
	svc := &stubMatchService{
		resp: &contract.MatchResponse{
			Matches: map[string]*contract.CompanyMatch{
				"GRAPHICS": {
					RecommendedMatch: &contract.CompanyResponse{CompanyNumber: "11743365"},
					OtherMatches:     []*contract.CompanyResponse{},
				},
			},
		},
	}
	h := NewMatchRoute(svc)

	rec := doJSON(t, h.MatchCompanies, `{"company_names": ["GRAPHICS"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp contract.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Matches["GRAPHICS"])
	assert.Equal(t, "11743365", resp.Matches["GRAPHICS"].RecommendedMatch.CompanyNumber)
}

func TestMatchCompaniesHandlerMalformedJSON(t *testing.T) {
	h := NewMatchRoute(&stubMatchService{})

	rec := doJSON(t, h.MatchCompanies, `{"company_names": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchCompaniesHandlerServiceError(t *testing.T) {
	h := NewMatchRoute(&stubMatchService{apierr: apierror.StoreNotReadyError})

	rec := doJSON(t, h.MatchCompanies, `{"company_names": ["GRAPHICS"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearchCompaniesHandler(t *testing.T) {
	svc := &stubMatchService{
		search: []*contract.SearchResponse{
			{SearchString: "GRAPHICS", OtherMatches: []*contract.CompanyResponse{}},
		},
	}
	h := NewMatchRoute(svc)

	rec := doJSON(t, h.SearchCompanies, `[{"company_name": "GRAPHICS"}]`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resps []*contract.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resps))
	require.Len(t, resps, 1)
	assert.Equal(t, "GRAPHICS", resps[0].SearchString)
}
