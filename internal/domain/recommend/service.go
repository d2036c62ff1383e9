package recommend

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/venuecast/internal/domain/filter"
	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/rerank"
	"github.com/yanqian/venuecast/internal/domain/scoring"
	"github.com/yanqian/venuecast/internal/domain/venue"
	"github.com/yanqian/venuecast/internal/domain/weather"
	apperrors "github.com/yanqian/venuecast/pkg/errors"
	"github.com/yanqian/venuecast/pkg/util"
)

// Service runs the full recommendation pipeline.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

// Config tunes the orchestrator.
type Config struct {
	MaxResults      int
	DefaultRadiusKm float64
	Workers         int
}

type service struct {
	cfg      Config
	weather  WeatherSource
	venues   VenueSource
	profiles ProfileStore
	distance DistanceCalculator
	reranker rerank.Service
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the recommendation pipeline.
func NewService(cfg Config, weatherSrc WeatherSource, venueSrc VenueSource, profiles ProfileStore, distance DistanceCalculator, reranker rerank.Service, logger *slog.Logger) Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = 5
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &service{
		cfg:      cfg,
		weather:  weatherSrc,
		venues:   venueSrc,
		profiles: profiles,
		distance: distance,
		reranker: reranker,
		logger:   logger.With("component", "recommend.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	if math.Abs(req.Lat) > 90 || math.Abs(req.Lng) > 180 {
		return Response{}, apperrors.Wrap("invalid_input", "coordinates out of range", nil)
	}
	radius := req.RadiusKm
	if radius <= 0 {
		radius = s.cfg.DefaultRadiusKm
	}
	count := req.Count
	if count <= 0 || count > s.cfg.MaxResults {
		count = s.cfg.MaxResults
	}

	prof := s.resolveProfile(ctx, req)
	moodTags, _ := profile.MoodTags(prof.Mood)

	obs, err := s.weather.Current(ctx, req.Lat, req.Lng)
	if err != nil {
		return Response{}, apperrors.Wrap("weather_data_error", "failed to fetch weather observation", err)
	}
	candidates, err := s.venues.Nearby(ctx, req.Lat, req.Lng, radius)
	if err != nil {
		return Response{}, apperrors.Wrap("venue_data_error", "failed to fetch candidate venues", err)
	}

	origin := venue.LatLng{Lat: req.Lat, Lng: req.Lng}
	candidates = s.prepare(candidates, origin)

	wctx := weather.Classify(obs)
	s.logger.Info("weather classified", "regime", wctx.Regime, "severity", wctx.Severity, "timeOfDay", wctx.TimeOfDay)

	pipe := filter.New(s.now, s.logger)
	survivors, stats := pipe.Apply(candidates, prof)

	ranked := s.scoreAll(survivors, wctx, prof, moodTags)
	sortRanked(ranked)
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	meta := Metadata{
		Regime:         wctx.Regime,
		Severity:       wctx.Severity,
		TimeOfDay:      wctx.TimeOfDay,
		WeatherSummary: wctx.Summary,
		WeightsUsed:    scoring.NormalizeWeights(prof.Weights),
		Filter:         stats,
	}

	if req.Rerank && s.reranker != nil && len(ranked) > 1 {
		ranked, meta = s.applyRerank(ctx, ranked, meta, wctx.Summary, req.Context)
	}

	return Response{Recommendations: ranked, Metadata: meta}, nil
}

// resolveProfile prefers an inline profile, then the stored one, then the
// defaults. Store failures degrade to defaults with a warning; a preference
// lookup must never abort a recommendation.
func (s *service) resolveProfile(ctx context.Context, req Request) profile.Profile {
	prof := profile.Default()
	switch {
	case req.Profile != nil:
		prof = *req.Profile
	case req.ProfileID != "" && s.profiles != nil:
		stored, found, err := s.profiles.Get(ctx, req.ProfileID)
		if err != nil {
			s.logger.Warn("profile lookup failed, using defaults", "profile_id", req.ProfileID, "error", err)
		} else if found {
			prof = stored
		}
	}
	if req.Mood != "" {
		prof.Mood = req.Mood
	}
	prof.Normalize()
	return prof
}

// prepare attaches distances and drops records missing required fields.
// Malformed venues are skipped with a warning, never aborting the batch.
func (s *service) prepare(candidates []venue.Venue, origin venue.LatLng) []venue.Venue {
	out := make([]venue.Venue, 0, len(candidates))
	for _, v := range candidates {
		if v.ID == "" || v.Name == "" {
			s.logger.Warn("skipping malformed venue record", "venue_id", v.ID, "name", v.Name)
			continue
		}
		if v.DistanceKm == nil && s.distance != nil {
			d := s.distance.DistanceKm(origin, v.Location)
			v.DistanceKm = &d
		}
		out = append(out, v)
	}
	return out
}

// scoreAll scores venues with a bounded worker pool. Per-venue scoring is
// pure and independent, so the pool changes throughput, never output.
func (s *service) scoreAll(venues []venue.Venue, wctx weather.Context, prof profile.Profile, moodTags map[string]struct{}) []Recommendation {
	out := make([]Recommendation, len(venues))
	workers := s.cfg.Workers
	if workers > len(venues) {
		workers = len(venues)
	}
	if workers <= 1 {
		for i, v := range venues {
			out[i] = s.scoreOne(v, wctx, prof, moodTags)
		}
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = s.scoreOne(venues[i], wctx, prof, moodTags)
			}
		}()
	}
	for i := range venues {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

func (s *service) scoreOne(v venue.Venue, wctx weather.Context, prof profile.Profile, moodTags map[string]struct{}) Recommendation {
	leaning := venue.ClassifyLeaning(v.Types)
	open := venue.ResolveOpen(v, s.now(), s.logger)
	breakdown := scoring.Personalize(scoring.Input{
		Venue:   v,
		Leaning: leaning,
		Open:    open,
		Weather: wctx,
	}, prof, moodTags)
	return Recommendation{
		Venue:     v,
		Leaning:   leaning,
		Category:  venue.Categorize(v.Types),
		Open:      open,
		Breakdown: breakdown,
	}
}

// sortRanked orders by personalized score, then rating, then review count,
// then ascending distance.
func sortRanked(ranked []Recommendation) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Breakdown.Personalized != b.Breakdown.Personalized {
			return a.Breakdown.Personalized > b.Breakdown.Personalized
		}
		ar, br := ratingOf(a.Venue), ratingOf(b.Venue)
		if ar != br {
			return ar > br
		}
		if a.Venue.RatingCount != b.Venue.RatingCount {
			return a.Venue.RatingCount > b.Venue.RatingCount
		}
		return distanceOf(a.Venue) < distanceOf(b.Venue)
	})
}

func ratingOf(v venue.Venue) float64 {
	if v.Rating == nil {
		return 0
	}
	return *v.Rating
}

func distanceOf(v venue.Venue) float64 {
	if v.DistanceKm == nil {
		return math.MaxFloat64
	}
	return *v.DistanceKm
}

func (s *service) applyRerank(ctx context.Context, ranked []Recommendation, meta Metadata, weatherSummary, userContext string) ([]Recommendation, Metadata) {
	candidates := make([]rerank.Candidate, 0, len(ranked))
	byID := make(map[string]Recommendation, len(ranked))
	for _, r := range ranked {
		candidates = append(candidates, rerank.Candidate{
			ID:          r.Venue.ID,
			Name:        r.Venue.Name,
			Address:     r.Venue.Address,
			Rating:      r.Venue.Rating,
			RatingCount: r.Venue.RatingCount,
			PriceLevel:  r.Venue.PriceLevel,
			Types:       r.Venue.Types,
			Open:        r.Open,
			Score:       r.Breakdown.Personalized,
		})
		byID[r.Venue.ID] = r
	}

	result := s.reranker.Rerank(ctx, rerank.Request{
		Candidates:     candidates,
		WeatherSummary: weatherSummary,
		UserContext:    userContext,
	})
	meta.AIRerankingApplied = result.Applied
	meta.RerankError = result.Error
	meta.TokenUsage = result.Usage
	if !result.Applied {
		return ranked, meta
	}

	reordered := make([]Recommendation, 0, len(ranked))
	for _, id := range result.OrderedIDs {
		if r, ok := byID[id]; ok {
			reordered = append(reordered, r)
		}
	}
	return reordered, meta
}
