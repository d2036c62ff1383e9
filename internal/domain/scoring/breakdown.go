package scoring

// Confidence tiers the personalized total.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Components are the bounded sub-scores feeding personalization.
// Sub-ranges: WeatherMatch 0-30, TimeCompatibility 0-10, Distance 0-20,
// Popularity 0-25, Novelty 0-10. Price (0-15, cheaper scores higher) is
// filled by the weighting engine, not the base scorer.
type Components struct {
	WeatherMatch      float64 `json:"weatherMatch"`
	TimeCompatibility float64 `json:"timeCompatibility"`
	Distance          float64 `json:"distance"`
	Popularity        float64 `json:"popularity"`
	Novelty           float64 `json:"novelty"`
	Price             float64 `json:"price"`
}

// Breakdown is the per-venue scoring result. Explanations are purely
// diagnostic and carry no behavioral weight.
type Breakdown struct {
	Base         int        `json:"base"`
	Components   Components `json:"components"`
	Personalized int        `json:"personalized"`
	Confidence   Confidence `json:"confidence"`
	Explanations []string   `json:"explanations,omitempty"`
}

func confidenceFor(total int) Confidence {
	switch {
	case total >= 75:
		return ConfidenceHigh
	case total < 50:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}
