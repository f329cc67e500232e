package completeness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/scout-profile/internal/profile"
)

func TestEvaluateDefaults(t *testing.T) {
	report := Evaluate(profile.Default())

	assert.Equal(t, profile.FieldCount(), report.TotalFields)
	assert.Equal(t, 38, report.FieldsCompleted)
	assert.Equal(t, 70, report.ConfidenceScore)
	assert.Equal(t, LevelMedium, report.ConfidenceLevel)
	assert.Equal(t, FitHigh, report.FitScoreConfidence)
	assert.Equal(t, "High confidence", report.FitScoreDisplay)
	assert.Equal(t, []string{
		"identity.name",
		"identity.league",
		"finances.transfer_budget",
		"finances.wage_budget_weekly",
		"recruitment.priority_positions",
	}, report.MissingRequiredFields)
	assert.Len(t, report.MissingFields, report.TotalFields-report.FieldsCompleted)
}

func TestEvaluateNilProfile(t *testing.T) {
	report := Evaluate(nil)

	assert.Equal(t, 0, report.FieldsCompleted)
	assert.Equal(t, 0, report.ConfidenceScore)
	assert.Equal(t, LevelLow, report.ConfidenceLevel)
	assert.Equal(t, FitInsufficient, report.FitScoreConfidence)
	assert.Len(t, report.MissingRequiredFields, 12)
}

func TestEvaluateAgePreferenceIsComposite(t *testing.T) {
	p := profile.Default()
	p.Recruitment.AgePreference.Ideal = nil

	report := Evaluate(p)

	assert.Contains(t, report.MissingRequiredFields, profile.AgePreferencePath)
	assert.NotContains(t, report.MissingRequiredFields, "recruitment.age_preference.ideal")
	assert.Contains(t, report.MissingFields, "recruitment.age_preference.ideal")
}

func TestEvaluateCompleteRequirements(t *testing.T) {
	p := profile.Default()
	p.Identity.Name = "Riverside FC"
	p.Identity.League = "Championship"
	p.Finances.TransferBudget = 2_000_000
	p.Finances.WageBudgetWeekly = 25_000
	p.Recruitment.PriorityPositions = []string{"CB"}

	report := Evaluate(p)

	require.Empty(t, report.MissingRequiredFields)
	assert.NotNil(t, report.MissingRequiredFields)
	assert.Equal(t, 43, report.FieldsCompleted)
	assert.Equal(t, LevelHigh, report.ConfidenceLevel)
}

func TestLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelLow},
		{39, LevelLow},
		{40, LevelMedium},
		{70, LevelMedium},
		{71, LevelHigh},
		{100, LevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.score), "score %d", tt.score)
	}
}

func TestFitConfidenceFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		completed int
		want      FitConfidence
	}{
		{0, FitInsufficient},
		{11, FitInsufficient},
		{12, FitBasic},
		{18, FitBasic},
		{19, FitGood},
		{30, FitGood},
		{31, FitHigh},
		{54, FitHigh},
	}

	for _, tt := range tests {
		got := FitConfidenceFor(tt.completed)
		assert.Equal(t, tt.want, got, "completed %d", tt.completed)
		assert.NotEmpty(t, got.Display())
	}
}

func TestConfidenceScoreRounds(t *testing.T) {
	assert.Equal(t, 0, ConfidenceScore(1, 0))
	assert.Equal(t, 2, ConfidenceScore(1, 54))
	assert.Equal(t, 50, ConfidenceScore(27, 54))
	assert.Equal(t, 100, ConfidenceScore(54, 54))
}
