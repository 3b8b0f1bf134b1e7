package contract

// CompanyResponse is the API view of a registry record. Score is only
// present on search results and is meaningless across requests.
type CompanyResponse struct {
	CompanyName   string `json:"company_name"`
	CompanyNumber string `json:"company_number"`

	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	PostTown     string `json:"post_town,omitempty"`
	County       string `json:"county,omitempty"`
	Country      string `json:"country,omitempty"`
	PostCode     string `json:"post_code,omitempty"`

	CompanyCategory string `json:"company_category,omitempty"`
	CompanyStatus   string `json:"company_status,omitempty"`
	CountryOfOrigin string `json:"country_of_origin,omitempty"`

	IncorporationDate string `json:"incorporation_date,omitempty"`
	DissolutionDate   string `json:"dissolution_date,omitempty"`

	SICCodes []string `json:"sic_codes,omitempty"`

	MortgageCharges     *int `json:"mortgage_charges,omitempty"`
	MortgageOutstanding *int `json:"mortgage_outstanding,omitempty"`

	PreviousNames []*PreviousNameResponse `json:"previous_names,omitempty"`

	Score *float64 `json:"score,omitempty"`
}

// PreviousNameResponse is one historical name with its change date.
type PreviousNameResponse struct {
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

// HealthResponse reports liveness and the size of the registry.
type HealthResponse struct {
	Status    string `json:"status"`
	Companies int64  `json:"companies"`
}
