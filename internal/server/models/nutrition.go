package models

import "fmt"

// NutrientField enumerates the nine nutrient targets. The numeric order is
// the canonical order used for display and for generator requests.
type NutrientField int

const (
	Calories NutrientField = iota
	FatContent
	SaturatedFatContent
	CholesterolContent
	SodiumContent
	CarbohydrateContent
	FiberContent
	SugarContent
	ProteinContent
)

// NutrientFieldCount is the number of recognised nutrient fields.
const NutrientFieldCount = 9

var nutrientNames = [NutrientFieldCount]string{
	"Calories",
	"FatContent",
	"SaturatedFatContent",
	"CholesterolContent",
	"SodiumContent",
	"CarbohydrateContent",
	"FiberContent",
	"SugarContent",
	"ProteinContent",
}

var nutrientCeilings = [NutrientFieldCount]int{2000, 100, 13, 300, 2300, 325, 50, 40, 40}

var nutrientDefaults = [NutrientFieldCount]int{500, 50, 0, 0, 400, 100, 10, 10, 10}

// NutrientFields returns every field in canonical order.
func NutrientFields() []NutrientField {
	out := make([]NutrientField, NutrientFieldCount)
	for i := range out {
		out[i] = NutrientField(i)
	}
	return out
}

func (f NutrientField) Valid() bool {
	return f >= 0 && int(f) < NutrientFieldCount
}

func (f NutrientField) String() string {
	if !f.Valid() {
		return fmt.Sprintf("NutrientField(%d)", int(f))
	}
	return nutrientNames[f]
}

// Ceiling is the fixed upper bound of the field's range. The lower bound is 0.
func (f NutrientField) Ceiling() int {
	return nutrientCeilings[f]
}

// Default is the initial value offered for the field.
func (f NutrientField) Default() int {
	return nutrientDefaults[f]
}

func (f NutrientField) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown nutrient field %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *NutrientField) UnmarshalText(b []byte) error {
	field, ok := ParseNutrientField(string(b))
	if !ok {
		return fmt.Errorf("unknown nutrient field %q", string(b))
	}
	*f = field
	return nil
}

// ParseNutrientField maps a wire name such as "SodiumContent" to its field.
func ParseNutrientField(name string) (NutrientField, bool) {
	for i, n := range nutrientNames {
		if n == name {
			return NutrientField(i), true
		}
	}
	return 0, false
}

// NutritionRange is one bounded nutrient target.
type NutritionRange struct {
	Field NutrientField `json:"field"`
	Min   int           `json:"min"`
	Max   int           `json:"max"`
	Value int           `json:"value"`
}

// DefaultRanges returns the nine ranges in canonical order, each set to its
// default value.
func DefaultRanges() []NutritionRange {
	out := make([]NutritionRange, 0, NutrientFieldCount)
	for _, f := range NutrientFields() {
		out = append(out, NutritionRange{Field: f, Min: 0, Max: f.Ceiling(), Value: f.Default()})
	}
	return out
}
