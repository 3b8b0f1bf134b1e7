package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"companymatch/cmd/internal/domain/entity"
)

// The snapshot CSV is decoded through a fixed column table: one entry
// per source header, each with an explicit scalar kind and assignment.
// No type auto-detection and no schema reflection; headers that are not
// listed here are ignored.

const csvDateFormat = "02/01/2006"

type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindDate
)

type column struct {
	header string
	kind   columnKind
	set    func(c *entity.Company, raw string) error
}

func str(header string, assign func(c *entity.Company, v string)) column {
	return column{header: header, kind: kindString, set: func(c *entity.Company, raw string) error {
		assign(c, strings.TrimSpace(raw))
		return nil
	}}
}

func integer(header string, assign func(c *entity.Company, v *int)) column {
	return column{header: header, kind: kindInt, set: func(c *entity.Company, raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("column %q: %w", header, err)
		}
		assign(c, &v)
		return nil
	}}
}

func date(header string, assign func(c *entity.Company, v *time.Time)) column {
	return column{header: header, kind: kindDate, set: func(c *entity.Company, raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		v, err := time.Parse(csvDateFormat, raw)
		if err != nil {
			return fmt.Errorf("column %q: %w", header, err)
		}
		assign(c, &v)
		return nil
	}}
}

func previousName(n int, assignDate func(c *entity.Company, v *time.Time), assignName func(c *entity.Company, v string)) []column {
	prefix := fmt.Sprintf("PreviousName_%d.", n)
	return []column{
		date(prefix+"CONDATE", assignDate),
		str(prefix+"CompanyName", assignName),
	}
}

var columns = buildColumnTable()

func buildColumnTable() []column {
	cols := []column{
		str("CompanyName", func(c *entity.Company, v string) { c.CompanyName = v }),
		str("CompanyNumber", func(c *entity.Company, v string) { c.CompanyNumber = v }),
		str("RegAddress.CareOf", func(c *entity.Company, v string) { c.RegAddressCareOf = v }),
		str("RegAddress.POBox", func(c *entity.Company, v string) { c.RegAddressPOBox = v }),
		str("RegAddress.AddressLine1", func(c *entity.Company, v string) { c.RegAddressAddressLine1 = v }),
		str("RegAddress.AddressLine2", func(c *entity.Company, v string) { c.RegAddressAddressLine2 = v }),
		str("RegAddress.PostTown", func(c *entity.Company, v string) { c.RegAddressPostTown = v }),
		str("RegAddress.County", func(c *entity.Company, v string) { c.RegAddressCounty = v }),
		str("RegAddress.Country", func(c *entity.Company, v string) { c.RegAddressCountry = v }),
		str("RegAddress.PostCode", func(c *entity.Company, v string) { c.RegAddressPostCode = v }),
		str("CompanyCategory", func(c *entity.Company, v string) { c.CompanyCategory = v }),
		str("CompanyStatus", func(c *entity.Company, v string) { c.CompanyStatus = v }),
		str("CountryOfOrigin", func(c *entity.Company, v string) { c.CountryOfOrigin = v }),
		date("DissolutionDate", func(c *entity.Company, v *time.Time) { c.DissolutionDate = v }),
		date("IncorporationDate", func(c *entity.Company, v *time.Time) { c.IncorporationDate = v }),
		integer("Accounts.AccountRefDay", func(c *entity.Company, v *int) { c.AccountsAccountRefDay = v }),
		integer("Accounts.AccountRefMonth", func(c *entity.Company, v *int) { c.AccountsAccountRefMonth = v }),
		date("Accounts.NextDueDate", func(c *entity.Company, v *time.Time) { c.AccountsNextDueDate = v }),
		date("Accounts.LastMadeUpDate", func(c *entity.Company, v *time.Time) { c.AccountsLastMadeUpDate = v }),
		str("Accounts.AccountCategory", func(c *entity.Company, v string) { c.AccountsAccountCategory = v }),
		date("Returns.NextDueDate", func(c *entity.Company, v *time.Time) { c.ReturnsNextDueDate = v }),
		date("Returns.LastMadeUpDate", func(c *entity.Company, v *time.Time) { c.ReturnsLastMadeUpDate = v }),
		integer("Mortgages.NumMortCharges", func(c *entity.Company, v *int) { c.MortgagesNumMortCharges = v }),
		integer("Mortgages.NumMortOutstanding", func(c *entity.Company, v *int) { c.MortgagesNumMortOutstanding = v }),
		integer("Mortgages.NumMortPartSatisfied", func(c *entity.Company, v *int) { c.MortgagesNumMortPartSatisfied = v }),
		integer("Mortgages.NumMortSatisfied", func(c *entity.Company, v *int) { c.MortgagesNumMortSatisfied = v }),
		str("SICCode.SicText_1", func(c *entity.Company, v string) { c.SICCodeSicText1 = v }),
		str("SICCode.SicText_2", func(c *entity.Company, v string) { c.SICCodeSicText2 = v }),
		str("SICCode.SicText_3", func(c *entity.Company, v string) { c.SICCodeSicText3 = v }),
		str("SICCode.SicText_4", func(c *entity.Company, v string) { c.SICCodeSicText4 = v }),
		integer("LimitedPartnerships.NumGenPartners", func(c *entity.Company, v *int) { c.LimitedPartnershipsNumGenPartners = v }),
		integer("LimitedPartnerships.NumLimPartners", func(c *entity.Company, v *int) { c.LimitedPartnershipsNumLimPartners = v }),
		str("URI", func(c *entity.Company, v string) { c.URI = v }),
		date("ConfStmtNextDueDate", func(c *entity.Company, v *time.Time) { c.ConfStmtNextDueDate = v }),
		date("ConfStmtLastMadeUpDate", func(c *entity.Company, v *time.Time) { c.ConfStmtLastMadeUpDate = v }),
	}

	cols = append(cols, previousName(1,
		func(c *entity.Company, v *time.Time) { c.PreviousName1CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName1CompanyName = v })...)
	cols = append(cols, previousName(2,
		func(c *entity.Company, v *time.Time) { c.PreviousName2CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName2CompanyName = v })...)
	cols = append(cols, previousName(3,
		func(c *entity.Company, v *time.Time) { c.PreviousName3CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName3CompanyName = v })...)
	cols = append(cols, previousName(4,
		func(c *entity.Company, v *time.Time) { c.PreviousName4CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName4CompanyName = v })...)
	cols = append(cols, previousName(5,
		func(c *entity.Company, v *time.Time) { c.PreviousName5CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName5CompanyName = v })...)
	cols = append(cols, previousName(6,
		func(c *entity.Company, v *time.Time) { c.PreviousName6CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName6CompanyName = v })...)
	cols = append(cols, previousName(7,
		func(c *entity.Company, v *time.Time) { c.PreviousName7CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName7CompanyName = v })...)
	cols = append(cols, previousName(8,
		func(c *entity.Company, v *time.Time) { c.PreviousName8CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName8CompanyName = v })...)
	cols = append(cols, previousName(9,
		func(c *entity.Company, v *time.Time) { c.PreviousName9CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName9CompanyName = v })...)
	cols = append(cols, previousName(10,
		func(c *entity.Company, v *time.Time) { c.PreviousName10CONDATE = v },
		func(c *entity.Company, v string) { c.PreviousName10CompanyName = v })...)

	return cols
}
