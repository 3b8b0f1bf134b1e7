package contract

// SearchRequest is one retrieval-only search; no oracle involved.
type SearchRequest struct {
	CompanyName string `json:"company_name" validate:"required,notblank"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

// SearchResponse echoes the search string with the top-scored match
// split from the rest.
type SearchResponse struct {
	SearchString string             `json:"search_string"`
	BestMatch    *CompanyResponse   `json:"best_match"`
	OtherMatches []*CompanyResponse `json:"other_matches"`
}
