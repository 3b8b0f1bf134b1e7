package service

import (
	"time"

	"companymatch/cmd/internal/contract"
	"companymatch/cmd/internal/domain/entity"
)

const dateFormat = "2006-01-02"

func toScoredCompanyResp(sc *entity.ScoredCompany) *contract.CompanyResponse {
	score := sc.Score
	return toCompanyResp(&sc.Company, &score)
}

func toCompanyResp(c *entity.Company, score *float64) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		CompanyName:   c.CompanyName,
		CompanyNumber: c.CompanyNumber,

		AddressLine1: c.RegAddressAddressLine1,
		AddressLine2: c.RegAddressAddressLine2,
		PostTown:     c.RegAddressPostTown,
		County:       c.RegAddressCounty,
		Country:      c.RegAddressCountry,
		PostCode:     c.RegAddressPostCode,

		CompanyCategory: c.CompanyCategory,
		CompanyStatus:   c.CompanyStatus,
		CountryOfOrigin: c.CountryOfOrigin,

		IncorporationDate: fmtDate(c.IncorporationDate),
		DissolutionDate:   fmtDate(c.DissolutionDate),

		SICCodes: sicCodes(c),

		MortgageCharges:     c.MortgagesNumMortCharges,
		MortgageOutstanding: c.MortgagesNumMortOutstanding,

		PreviousNames: toPreviousNamesResp(c.PreviousNames()),

		Score: score,
	}
}

func toPreviousNamesResp(names []entity.PreviousName) []*contract.PreviousNameResponse {
	if len(names) == 0 {
		return nil
	}

	resp := make([]*contract.PreviousNameResponse, len(names))
	for i, n := range names {
		resp[i] = &contract.PreviousNameResponse{
			Name: n.Name,
			Date: fmtDate(n.Date),
		}
	}
	return resp
}

func sicCodes(c *entity.Company) []string {
	var codes []string
	for _, code := range []string{c.SICCodeSicText1, c.SICCodeSicText2, c.SICCodeSicText3, c.SICCodeSicText4} {
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
