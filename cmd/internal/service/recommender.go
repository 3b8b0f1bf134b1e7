package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"companymatch/cmd/internal/domain/entity"
)

// Oracle is the external text-generation service used to disambiguate
// between near-equal candidates.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Recommendation is the explicit outcome of a disambiguation call. An
// unconfident result is an expected, common outcome, not an error.
type Recommendation struct {
	CompanyNumber string
	Confident     bool
}

const recommendPrompt = `Given a search query for a company and a list of potential matches from a database, please choose the best match.

Search Query: %q

Potential Matches:
%s
Respond with the company number of the best match. Only return the company number, with no additional commentary or formatting.`

type OracleRecommender struct {
	Oracle  Oracle
	Timeout time.Duration
}

func NewOracleRecommender(oracle Oracle, timeout time.Duration) *OracleRecommender {
	return &OracleRecommender{Oracle: oracle, Timeout: timeout}
}

// Recommend asks the oracle to pick the best candidate for the query.
// The answer must be exactly one of the supplied company numbers;
// anything else yields an unconfident result. Transport failures are
// returned as errors and carry no recommendation either way.
func (r *OracleRecommender) Recommend(ctx context.Context, query string, candidates []*entity.Company) (Recommendation, error) {
	if len(candidates) == 0 {
		return Recommendation{}, nil
	}

	var sb strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- %s: %s\n", c.CompanyNumber, c.CompanyName)
	}
	prompt := fmt.Sprintf(recommendPrompt, query, sb.String())

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	answer, err := r.Oracle.Complete(ctx, prompt)
	if err != nil {
		return Recommendation{}, err
	}

	number := normalizeAnswer(answer)
	for _, c := range candidates {
		if c.CompanyNumber == number {
			return Recommendation{CompanyNumber: number, Confident: true}, nil
		}
	}
	return Recommendation{}, nil
}

// normalizeAnswer strips the wrapping models tend to add around a bare
// identifier. The remainder must match a candidate number exactly.
func normalizeAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	answer = strings.Trim(answer, "\"'`")
	return strings.TrimSpace(answer)
}
