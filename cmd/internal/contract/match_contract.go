package contract

// MatchRequest carries the raw names to resolve. Duplicate names are
// allowed; the response map keeps the last resolution per name.
type MatchRequest struct {
	CompanyNames []string `json:"company_names" validate:"required,min=1,dive,notblank"`
}

// MatchResponse maps each submitted name to its resolution.
type MatchResponse struct {
	Matches map[string]*CompanyMatch `json:"matches"`
}

// CompanyMatch is the per-query outcome: the oracle's pick (null when
// it declined or failed) and every other retrieved candidate.
type CompanyMatch struct {
	RecommendedMatch *CompanyResponse   `json:"recommended_match"`
	OtherMatches     []*CompanyResponse `json:"other_matches"`
}
