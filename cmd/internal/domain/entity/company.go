package entity

import "time"

// Company is one row of the Companies House basic data snapshot.
//
// The table is rebuilt wholesale from the monthly CSV and treated as
// read-only afterwards. CompanyNumber is the stable identifier (it
// survives renames) and is the document key of the full-text index.
type Company struct {
	CompanyNumber string `gorm:"primaryKey;column:company_number"`
	CompanyName   string `gorm:"column:company_name;not null"`

	RegAddressCareOf       string
	RegAddressPOBox        string `gorm:"column:reg_address_po_box"`
	RegAddressAddressLine1 string
	RegAddressAddressLine2 string
	RegAddressPostTown     string
	RegAddressCounty       string
	RegAddressCountry      string
	RegAddressPostCode     string

	CompanyCategory string
	CompanyStatus   string
	CountryOfOrigin string

	DissolutionDate   *time.Time
	IncorporationDate *time.Time

	AccountsAccountRefDay   *int
	AccountsAccountRefMonth *int
	AccountsNextDueDate     *time.Time
	AccountsLastMadeUpDate  *time.Time
	AccountsAccountCategory string

	ReturnsNextDueDate    *time.Time
	ReturnsLastMadeUpDate *time.Time

	MortgagesNumMortCharges       *int
	MortgagesNumMortOutstanding   *int
	MortgagesNumMortPartSatisfied *int
	MortgagesNumMortSatisfied     *int

	SICCodeSicText1 string `gorm:"column:sic_code_sic_text_1"`
	SICCodeSicText2 string `gorm:"column:sic_code_sic_text_2"`
	SICCodeSicText3 string `gorm:"column:sic_code_sic_text_3"`
	SICCodeSicText4 string `gorm:"column:sic_code_sic_text_4"`

	LimitedPartnershipsNumGenPartners *int
	LimitedPartnershipsNumLimPartners *int

	URI string `gorm:"column:uri"`

	PreviousName1CONDATE      *time.Time `gorm:"column:previous_name_1_condate"`
	PreviousName1CompanyName  string     `gorm:"column:previous_name_1_company_name"`
	PreviousName2CONDATE      *time.Time `gorm:"column:previous_name_2_condate"`
	PreviousName2CompanyName  string     `gorm:"column:previous_name_2_company_name"`
	PreviousName3CONDATE      *time.Time `gorm:"column:previous_name_3_condate"`
	PreviousName3CompanyName  string     `gorm:"column:previous_name_3_company_name"`
	PreviousName4CONDATE      *time.Time `gorm:"column:previous_name_4_condate"`
	PreviousName4CompanyName  string     `gorm:"column:previous_name_4_company_name"`
	PreviousName5CONDATE      *time.Time `gorm:"column:previous_name_5_condate"`
	PreviousName5CompanyName  string     `gorm:"column:previous_name_5_company_name"`
	PreviousName6CONDATE      *time.Time `gorm:"column:previous_name_6_condate"`
	PreviousName6CompanyName  string     `gorm:"column:previous_name_6_company_name"`
	PreviousName7CONDATE      *time.Time `gorm:"column:previous_name_7_condate"`
	PreviousName7CompanyName  string     `gorm:"column:previous_name_7_company_name"`
	PreviousName8CONDATE      *time.Time `gorm:"column:previous_name_8_condate"`
	PreviousName8CompanyName  string     `gorm:"column:previous_name_8_company_name"`
	PreviousName9CONDATE      *time.Time `gorm:"column:previous_name_9_condate"`
	PreviousName9CompanyName  string     `gorm:"column:previous_name_9_company_name"`
	PreviousName10CONDATE     *time.Time `gorm:"column:previous_name_10_condate"`
	PreviousName10CompanyName string     `gorm:"column:previous_name_10_company_name"`

	ConfStmtNextDueDate    *time.Time
	ConfStmtLastMadeUpDate *time.Time
}

func (Company) TableName() string {
	return "companies"
}

// PreviousName is one historical name entry with its change-over date.
type PreviousName struct {
	Name string
	Date *time.Time
}

// PreviousNames flattens the up-to-10 previous-name column pairs,
// skipping empty slots.
func (c *Company) PreviousNames() []PreviousName {
	pairs := []PreviousName{
		{c.PreviousName1CompanyName, c.PreviousName1CONDATE},
		{c.PreviousName2CompanyName, c.PreviousName2CONDATE},
		{c.PreviousName3CompanyName, c.PreviousName3CONDATE},
		{c.PreviousName4CompanyName, c.PreviousName4CONDATE},
		{c.PreviousName5CompanyName, c.PreviousName5CONDATE},
		{c.PreviousName6CompanyName, c.PreviousName6CONDATE},
		{c.PreviousName7CompanyName, c.PreviousName7CONDATE},
		{c.PreviousName8CompanyName, c.PreviousName8CONDATE},
		{c.PreviousName9CompanyName, c.PreviousName9CONDATE},
		{c.PreviousName10CompanyName, c.PreviousName10CONDATE},
	}

	names := make([]PreviousName, 0, len(pairs))
	for _, p := range pairs {
		if p.Name != "" {
			names = append(names, p)
		}
	}
	return names
}

// ScoredCompany is a Company plus its BM25 relevance for one query.
// Scores are only comparable within a single result set of a single
// index build.
type ScoredCompany struct {
	Company `gorm:"embedded"`
	Score   float64 `gorm:"column:score"`
}
