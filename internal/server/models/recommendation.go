package models

// Bounds of the requested recommendation count.
const (
	MinRecommendations     = 5
	MaxRecommendations     = 20
	DefaultRecommendations = 10
	RecommendationStep     = 5
)

// RecommendationRequest is a validated, immutable generator query.
// Targets always holds one range per nutrient field in canonical order.
// An empty Ingredients slice means "no ingredient constraint".
type RecommendationRequest struct {
	Targets     []NutritionRange `json:"targets"`
	Count       int              `json:"count"`
	Ingredients []string         `json:"ingredients"`
}

// TargetValues returns the nine target values in canonical order.
func (r RecommendationRequest) TargetValues() []float64 {
	out := make([]float64, len(r.Targets))
	for i, t := range r.Targets {
		out[i] = float64(t.Value)
	}
	return out
}

// RecipeTimes keeps the generator's cook/prep/total minutes as text.
// An empty value means the generator did not report it.
type RecipeTimes struct {
	Cook  string `json:"cook"`
	Prep  string `json:"prep"`
	Total string `json:"total"`
}

// RecommendationResult is one generated recipe. ImageURL is empty when the
// image lookup failed or was skipped; the rest of the item is still valid.
type RecommendationResult struct {
	Name         string                    `json:"name"`
	Ingredients  []string                  `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
	Nutrients    map[NutrientField]float64 `json:"nutrients"`
	Times        RecipeTimes               `json:"times"`
	ImageURL     string                    `json:"image_url,omitempty"`
}

func (r RecommendationResult) HasImage() bool {
	return r.ImageURL != ""
}

// NutrientValue is a single field/value pair of a recipe overview.
type NutrientValue struct {
	Field NutrientField `json:"name"`
	Value float64       `json:"value"`
}

// Overview lists the recipe's nutrients in canonical order. Missing fields
// are reported as zero.
func (r RecommendationResult) Overview() []NutrientValue {
	out := make([]NutrientValue, 0, NutrientFieldCount)
	for _, f := range NutrientFields() {
		out = append(out, NutrientValue{Field: f, Value: r.Nutrients[f]})
	}
	return out
}
