package recommendations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

type generatorParams struct {
	NNeighbors     int  `json:"n_neighbors"`
	ReturnDistance bool `json:"return_distance"`
}

type generatorRequest struct {
	NutritionInput []float64       `json:"nutrition_input"`
	Ingredients    []string        `json:"ingredients"`
	Params         generatorParams `json:"params"`
}

type generatorResponse struct {
	Output []wireRecipe `json:"output"`
}

type wireRecipe struct {
	Name                  string   `json:"Name"`
	Calories              float64  `json:"Calories"`
	FatContent            float64  `json:"FatContent"`
	SaturatedFatContent   float64  `json:"SaturatedFatContent"`
	CholesterolContent    float64  `json:"CholesterolContent"`
	SodiumContent         float64  `json:"SodiumContent"`
	CarbohydrateContent   float64  `json:"CarbohydrateContent"`
	FiberContent          float64  `json:"FiberContent"`
	SugarContent          float64  `json:"SugarContent"`
	ProteinContent        float64  `json:"ProteinContent"`
	RecipeIngredientParts []string `json:"RecipeIngredientParts"`
	RecipeInstructions    []string `json:"RecipeInstructions"`
	CookTime              minutes  `json:"CookTime"`
	PrepTime              minutes  `json:"PrepTime"`
	TotalTime             minutes  `json:"TotalTime"`
}

// minutes accepts a JSON number, a string or null.
type minutes string

func (m *minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*m = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = minutes(s)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("time: %w", err)
		}
		*m = minutes(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}

// EncodeRequest renders req in the generator's call shape.
func EncodeRequest(req models.RecommendationRequest) ([]byte, error) {
	return json.Marshal(toWire(req))
}

// DecodeRequest is the inverse of EncodeRequest.
func DecodeRequest(b []byte) (models.RecommendationRequest, error) {
	var w generatorRequest
	if err := json.Unmarshal(b, &w); err != nil {
		return models.RecommendationRequest{}, err
	}
	if len(w.NutritionInput) != models.NutrientFieldCount {
		return models.RecommendationRequest{}, errors.New("nutrition_input must hold one value per nutrient")
	}

	targets := models.DefaultRanges()
	for i := range targets {
		targets[i].Value = int(math.Round(w.NutritionInput[i]))
	}

	ingredients := w.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return models.RecommendationRequest{
		Targets:     targets,
		Count:       w.Params.NNeighbors,
		Ingredients: ingredients,
	}, nil
}

func toWire(req models.RecommendationRequest) generatorRequest {
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return generatorRequest{
		NutritionInput: req.TargetValues(),
		Ingredients:    ingredients,
		Params:         generatorParams{NNeighbors: req.Count, ReturnDistance: false},
	}
}

func (w wireRecipe) result() models.RecommendationResult {
	values := [models.NutrientFieldCount]float64{
		w.Calories, w.FatContent, w.SaturatedFatContent, w.CholesterolContent,
		w.SodiumContent, w.CarbohydrateContent, w.FiberContent, w.SugarContent, w.ProteinContent,
	}

	nutrients := make(map[models.NutrientField]float64, models.NutrientFieldCount)
	for i, f := range models.NutrientFields() {
		nutrients[f] = values[i]
	}

	return models.RecommendationResult{
		Name:         w.Name,
		Ingredients:  nonNil(w.RecipeIngredientParts),
		Instructions: nonNil(w.RecipeInstructions),
		Nutrients:    nutrients,
		Times: models.RecipeTimes{
			Cook:  string(w.CookTime),
			Prep:  string(w.PrepTime),
			Total: string(w.TotalTime),
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
