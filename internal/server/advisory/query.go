// Package advisory builds health-advice prompts and sends them to a chat
// completion backend.
package advisory

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

// SystemInstruction restricts the assistant to health education and makes
// the closing disclaimer mandatory.
const SystemInstruction = "You are a highly knowledgeable, empathetic, and professional health assistant " +
	"specializing in delivering accurate, evidence-based, and easily understandable guidance. " +
	"Your core responsibilities are to assist users with health-related topics, specifically focusing on " +
	"symptoms assessment, preventive care advice, nutrition and diet optimization, fitness and exercise " +
	"recommendations, mental health support strategies, and first aid instructions. " +
	"Maintain a tone that is friendly, supportive, clear, and strictly professional. Always provide answers " +
	"that are factually correct, concise, and directly relevant to the user's inquiry, without offering " +
	"personal opinions or speculative advice. " +
	"It is mandatory to conclude every response with a clear disclaimer stating: " +
	"'" + Disclaimer + "' " +
	"Do not deviate into unrelated topics. Do not provide diagnosis, prescriptions, or emergency interventions. " +
	"Prioritize user safety, accuracy, and clarity in every response."

// Disclaimer is the sentence every answer has to end with.
const Disclaimer = "Disclaimer: This information is for educational purposes only and does not substitute " +
	"professional medical advice, diagnosis, or treatment. " +
	"Please consult a qualified healthcare provider for personalized medical guidance."

var templates = map[models.AdvisoryCategory]string{
	models.SymptomChecker:      "User has described the following symptoms: %s. What could be the potential conditions?",
	models.PreventiveMeasures:  "Provide preventive measures for: %s.",
	models.GeneralHealthAdvice: "Give general health advice on the topic: %s.",
	models.MedicalTerms:        "Explain the following medical term: %s.",
	models.FirstAid:            "Provide first aid tips for: %s.",
}

// BuildQuery maps category and free text to a chat prompt. The text is
// embedded verbatim. maxTokens is clamped into the allowed range; zero
// selects the default.
func BuildQuery(category models.AdvisoryCategory, rawText string, maxTokens int) (models.AdvisoryQuery, error) {
	tmpl, ok := templates[category]
	if !ok {
		return models.AdvisoryQuery{}, common.NewValidationError("category",
			fmt.Sprintf("unknown query type %q", string(category)))
	}

	if strings.TrimSpace(rawText) == "" {
		return models.AdvisoryQuery{}, common.NewValidationError("text", "please enter a query before submitting")
	}
	if utf8.RuneCountInString(rawText) > models.MaxAdvisoryTextLen {
		return models.AdvisoryQuery{}, common.NewValidationError("text",
			fmt.Sprintf("query must be at most %d characters", models.MaxAdvisoryTextLen))
	}

	if maxTokens == 0 {
		maxTokens = models.DefaultAdvisoryTokens
	}
	maxTokens = max(models.MinAdvisoryTokens, min(maxTokens, models.MaxAdvisoryTokens))

	return models.AdvisoryQuery{
		Category:  category,
		RawText:   rawText,
		MaxTokens: maxTokens,
		Prompt:    fmt.Sprintf(tmpl, rawText),
	}, nil
}
