package rerank

import (
	"time"

	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/pkg/metrics"
)

// Candidate is the slice of a scored venue the reasoning service sees.
type Candidate struct {
	ID          string
	Name        string
	Address     string
	Rating      *float64
	RatingCount int
	PriceLevel  *int
	Types       []string
	Open        venue.OpenStatus
	Score       int
}

// Request is one reranking attempt: the scored page, the weather summary it
// should reason over and optional free-text user context.
type Request struct {
	Candidates     []Candidate
	WeatherSummary string
	UserContext    string
}

// Result always carries a total ordering of the request's candidate IDs.
// Applied is false whenever the external call failed or returned something
// unusable, in which case OrderedIDs equals the input order and Error is
// non-empty.
type Result struct {
	OrderedIDs []string
	Applied    bool
	Error      string
	Usage      metrics.TokenUsage
}

// Config tunes the reranker. Zero values fall back to the package defaults.
type Config struct {
	Model         string
	Temperature   float32
	Prompt        string
	MaxCandidates int
	TokenBudget   int
	Timeout       time.Duration
}

const (
	defaultMaxCandidates = 50
	defaultTokenBudget   = 6000
	defaultTimeout       = 10 * time.Second
)
