package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/venuecast/internal/infra/llm/chatgpt"
	"github.com/yanqian/venuecast/pkg/metrics"
)

// Service reorders a scored venue page through an external reasoning
// service. It never fails upward: any problem degrades to the deterministic
// input order carried in the Result.
type Service interface {
	Rerank(ctx context.Context, req Request) Result
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg     Config
	client  ChatClient
	counter TokenCounter
	logger  *slog.Logger
}

// NewService wires up the semantic reranker. A nil client means no reasoning
// service is configured; every call then fails fast into the fallback order.
func NewService(cfg Config, client ChatClient, counter TokenCounter, logger *slog.Logger) Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = defaultMaxCandidates
	}
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = defaultTokenBudget
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &service{
		cfg:     cfg,
		client:  client,
		counter: counter,
		logger:  logger.With("component", "rerank.service"),
	}
}

func (s *service) Rerank(ctx context.Context, req Request) Result {
	inputOrder := make([]string, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		inputOrder = append(inputOrder, c.ID)
	}
	if len(inputOrder) == 0 {
		return Result{OrderedIDs: inputOrder, Applied: false, Error: "no candidates to rerank"}
	}
	if s.client == nil {
		return s.fallback(inputOrder, "reasoning service not configured", nil)
	}

	candidates := req.Candidates
	if len(candidates) > s.cfg.MaxCandidates {
		candidates = candidates[:s.cfg.MaxCandidates]
	}

	prompt := s.buildRankingPrompt(candidates, req.WeatherSummary, req.UserContext)
	messages := []chatgpt.Message{
		{Role: "system", Content: s.buildSystemPrompt()},
		{Role: "user", Content: prompt},
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	completion, err := s.client.CreateChatCompletion(callCtx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return s.fallback(inputOrder, fmt.Sprintf("reasoning service call failed: %v", err), nil)
	}
	usage := &metrics.TokenUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	if len(completion.Choices) == 0 {
		return s.fallback(inputOrder, "reasoning service returned no choices", usage)
	}

	ranked, err := parseRanking(completion.Choices[0].Message.Content)
	if err != nil {
		return s.fallback(inputOrder, fmt.Sprintf("reasoning service response malformed: %v", err), usage)
	}

	return Result{
		OrderedIDs: reconcile(inputOrder, ranked),
		Applied:    true,
		Usage:      *usage,
	}
}

func (s *service) fallback(inputOrder []string, reason string, usage *metrics.TokenUsage) Result {
	s.logger.Warn("semantic rerank degraded to deterministic order", "reason", reason)
	res := Result{OrderedIDs: inputOrder, Applied: false, Error: reason}
	if usage != nil {
		res.Usage = *usage
	}
	return res
}

// reconcile turns the service's reply into a total ordering of the input
// IDs: foreign IDs and duplicates are dropped, missing IDs are appended in
// their original order.
func reconcile(inputOrder, ranked []string) []string {
	known := make(map[string]struct{}, len(inputOrder))
	for _, id := range inputOrder {
		known[id] = struct{}{}
	}

	out := make([]string, 0, len(inputOrder))
	seen := make(map[string]struct{}, len(inputOrder))
	for _, id := range ranked {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range inputOrder {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func parseRanking(raw string) ([]string, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var ids []string
	if err := json.Unmarshal([]byte(sanitized), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "You are a local guide ranking venues for the best possible visit given current weather."
	}
	enforcer := " Respond ONLY with a JSON array of venue id strings, best first, covering every listed venue. Never return prose, objects or other fields."
	return base + enforcer
}

func (s *service) buildRankingPrompt(candidates []Candidate, weatherSummary, userContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather: %s\n", weatherSummary)
	if strings.TrimSpace(userContext) != "" {
		fmt.Fprintf(&b, "User context: %s\n", strings.TrimSpace(userContext))
	}
	b.WriteString("Reorder the venues below for the best experience in this weather. Prefer indoor venues in adverse weather and outdoor or scenic venues in pleasant weather, respect open/closed status, and balance weather fit against venue quality.\n\nVenues:\n")

	header := b.String()
	used := s.count(header)
	for i, c := range candidates {
		line := candidateLine(i+1, c)
		used += s.count(line)
		if used > s.cfg.TokenBudget && i > 0 {
			// Over budget: the remaining candidates keep their
			// deterministic position via reconciliation.
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

func (s *service) count(text string) int {
	if s.counter == nil {
		return (len(text) + 3) / 4
	}
	return s.counter.Count(text)
}

func candidateLine(rank int, c Candidate) string {
	rating := "unrated"
	if c.Rating != nil {
		rating = fmt.Sprintf("%.1f (%d reviews)", *c.Rating, c.RatingCount)
	}
	price := "price n/a"
	if c.PriceLevel != nil {
		n := *c.PriceLevel
		if n < 1 {
			n = 1
		}
		price = strings.Repeat("$", n)
	}
	return fmt.Sprintf("%d. id=%s | %s | %s | rating %s | %s | types: %s | %s | score %d\n",
		rank, c.ID, c.Name, c.Address, rating, price, strings.Join(c.Types, ", "), string(c.Open), c.Score)
}
