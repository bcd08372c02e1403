package models

// AdvisoryCategory selects the phrasing template of a chat query.
type AdvisoryCategory string

const (
	SymptomChecker      AdvisoryCategory = "Symptom Checker"
	PreventiveMeasures  AdvisoryCategory = "Preventive Measures"
	GeneralHealthAdvice AdvisoryCategory = "General Health Advice"
	MedicalTerms        AdvisoryCategory = "Medical Terms"
	FirstAid            AdvisoryCategory = "First Aid"
)

// AdvisoryCategories lists the categories in presentation order.
func AdvisoryCategories() []AdvisoryCategory {
	return []AdvisoryCategory{SymptomChecker, PreventiveMeasures, GeneralHealthAdvice, MedicalTerms, FirstAid}
}

// Limits of an advisory query.
const (
	MaxAdvisoryTextLen    = 300
	MinAdvisoryTokens     = 50
	MaxAdvisoryTokens     = 300
	DefaultAdvisoryTokens = 150
)

// AdvisoryQuery is a transient, fully built chat request. Prompt is the user
// message derived from Category and RawText.
type AdvisoryQuery struct {
	Category  AdvisoryCategory
	RawText   string
	MaxTokens int
	Prompt    string
}
