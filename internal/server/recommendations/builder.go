// Package recommendations turns user constraints into generator queries and
// enriches the generated recipes with images.
package recommendations

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

// BuildRequest validates raw form input. Values and count are clamped into
// their bounds rather than rejected; only a wrong number of ranges is an
// error. It performs no I/O.
func BuildRequest(rawRanges []int, rawCount int, rawIngredientText string) (models.RecommendationRequest, error) {
	if len(rawRanges) != models.NutrientFieldCount {
		return models.RecommendationRequest{}, common.NewValidationError("targets",
			fmt.Sprintf("expected %d nutrition values, got %d", models.NutrientFieldCount, len(rawRanges)))
	}

	targets := models.DefaultRanges()
	for i := range targets {
		targets[i].Value = clamp(rawRanges[i], targets[i].Min, targets[i].Max)
	}

	return models.RecommendationRequest{
		Targets:     targets,
		Count:       clamp(rawCount, models.MinRecommendations, models.MaxRecommendations),
		Ingredients: ParseIngredients(rawIngredientText),
	}, nil
}

// ParseIngredients splits on ';', trims each token and drops empty ones.
// The result is never nil.
func ParseIngredients(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
