package advisory

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_Templates(t *testing.T) {
	tests := []struct {
		category models.AdvisoryCategory
		want     string
	}{
		{models.SymptomChecker, "User has described the following symptoms: headache. What could be the potential conditions?"},
		{models.PreventiveMeasures, "Provide preventive measures for: headache."},
		{models.GeneralHealthAdvice, "Give general health advice on the topic: headache."},
		{models.MedicalTerms, "Explain the following medical term: headache."},
		{models.FirstAid, "Provide first aid tips for: headache."},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			q, err := BuildQuery(tt.category, "headache", 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Prompt)
			assert.Equal(t, tt.category, q.Category)
			assert.Equal(t, "headache", q.RawText)
		})
	}
}

func TestBuildQuery_FirstAidBurn(t *testing.T) {
	q, err := BuildQuery(models.FirstAid, "burn", 150)
	require.NoError(t, err)

	assert.Contains(t, q.Prompt, "burn")
	assert.True(t, strings.HasPrefix(q.Prompt, "Provide first aid tips for:"))
}

func TestBuildQuery_Validation(t *testing.T) {
	tests := []struct {
		name     string
		category models.AdvisoryCategory
		text     string
		field    string
	}{
		{"empty text", models.SymptomChecker, "", "text"},
		{"blank text", models.SymptomChecker, "   ", "text"},
		{"too long", models.MedicalTerms, strings.Repeat("a", 301), "text"},
		{"unknown category", "Astrology", "stars", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuery(tt.category, tt.text, 150)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBuildQuery_LengthCountsCharacters(t *testing.T) {
	_, err := BuildQuery(models.MedicalTerms, strings.Repeat("é", 300), 150)
	require.NoError(t, err)
}

func TestBuildQuery_MaxTokens(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 150},
		{10, 50},
		{200, 200},
		{1000, 300},
	}
	for _, tt := range tests {
		q, err := BuildQuery(models.FirstAid, "cut", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.MaxTokens, "in %d", tt.in)
	}
}

func TestSystemInstruction_MandatesDisclaimer(t *testing.T) {
	assert.Contains(t, SystemInstruction, Disclaimer)
	assert.Contains(t, SystemInstruction, "Do not deviate into unrelated topics")
}
