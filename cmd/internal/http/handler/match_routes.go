package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/utils/apierror"
)

type MatchService interface {
	MatchCompanies(ctx context.Context, req *contract.MatchRequest) (*contract.MatchResponse, apierror.ErrorResponse)
	SearchCompanies(ctx context.Context, reqs []*contract.SearchRequest) ([]*contract.SearchResponse, apierror.ErrorResponse)
}

type DefaultMatchRoute struct {
	MatchService MatchService
}

func NewMatchRoute(matchService MatchService) *DefaultMatchRoute {
	return &DefaultMatchRoute{MatchService: matchService}
}

// MatchCompanies resolves each submitted name to its most likely
// registry record, using the oracle to pick among the candidates.
func (m *DefaultMatchRoute) MatchCompanies(c echo.Context) error {
	var req contract.MatchRequest
	if err := c.Bind(&req); err != nil {
		apierr := apierror.MalformedJSONError
		return c.JSON(apierr.Code(), apierr)
	}

	resp, apierr := m.MatchService.MatchCompanies(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchCompanies is ranked retrieval only; no oracle involved.
func (m *DefaultMatchRoute) SearchCompanies(c echo.Context) error {
	var reqs []*contract.SearchRequest
	if err := c.Bind(&reqs); err != nil {
		apierr := apierror.MalformedJSONError
		return c.JSON(apierr.Code(), apierr)
	}

	resp, apierr := m.MatchService.SearchCompanies(c.Request().Context(), reqs)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
