package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/utils/apierror"
)

type CompanyService interface {
	GetCompany(number string) (*contract.CompanyResponse, apierror.ErrorResponse)
	Health() (*contract.HealthResponse, apierror.ErrorResponse)
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyRoute(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (h *DefaultCompanyRoute) GetCompany(c echo.Context) error {
	number := c.Param("number")
	if number == "" {
		apierr := apierror.NotFoundError
		return c.JSON(apierr.Code(), apierr)
	}

	company, apierr := h.CompanyService.GetCompany(number)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *DefaultCompanyRoute) Health(c echo.Context) error {
	health, apierr := h.CompanyService.Health()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, health)
}
