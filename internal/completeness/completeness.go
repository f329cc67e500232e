// Package completeness reports how much of a recruitment profile is filled in.
package completeness

import (
	"math"

	"github.com/spigell/scout-profile/internal/profile"
)

// Level is the percentage based confidence tier.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// FitConfidence is the count based tier describing how trustworthy a fit
// score computed from the profile would be.
type FitConfidence string

const (
	FitInsufficient FitConfidence = "insufficient"
	FitBasic        FitConfidence = "basic"
	FitGood         FitConfidence = "good"
	FitHigh         FitConfidence = "high"
)

var fitDisplay = map[FitConfidence]string{
	FitInsufficient: "Insufficient data: complete more of your profile",
	FitBasic:        "Basic confidence",
	FitGood:         "Good confidence",
	FitHigh:         "High confidence",
}

// Display returns the label shown next to fit scores.
func (c FitConfidence) Display() string { return fitDisplay[c] }

// Report is the completeness summary of one profile.
type Report struct {
	FieldsCompleted       int           `json:"fields_completed"`
	TotalFields           int           `json:"total_fields"`
	ConfidenceScore       int           `json:"confidence_score"`
	ConfidenceLevel       Level         `json:"confidence_level"`
	FitScoreConfidence    FitConfidence `json:"fit_score_confidence"`
	FitScoreDisplay       string        `json:"fit_score_display"`
	MissingRequiredFields []string      `json:"missing_required_fields"`
	MissingFields         []string      `json:"missing_fields"`
}

// Evaluate walks the field catalog of p. A nil profile counts as nothing
// filled in.
func Evaluate(p *profile.Profile) Report {
	fields := profile.Fields()

	completed := 0
	missing := make([]string, 0)
	for _, f := range fields {
		if p.Present(f) {
			completed++
			continue
		}
		missing = append(missing, f.Path())
	}

	missingRequired := make([]string, 0)
	for _, req := range profile.Requirements() {
		if !req.Satisfied(p) {
			missingRequired = append(missingRequired, req.Name)
		}
	}

	score := ConfidenceScore(completed, len(fields))
	fit := FitConfidenceFor(completed)

	return Report{
		FieldsCompleted:       completed,
		TotalFields:           len(fields),
		ConfidenceScore:       score,
		ConfidenceLevel:       LevelFor(score),
		FitScoreConfidence:    fit,
		FitScoreDisplay:       fit.Display(),
		MissingRequiredFields: missingRequired,
		MissingFields:         missing,
	}
}

// ConfidenceScore is the rounded percentage of completed fields.
func ConfidenceScore(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// LevelFor maps a percentage to its tier: below 40 is low, above 70 is high.
func LevelFor(score int) Level {
	switch {
	case score < 40:
		return LevelLow
	case score > 70:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// FitConfidenceFor maps an absolute count of completed fields to its tier.
func FitConfidenceFor(completed int) FitConfidence {
	switch {
	case completed < 12:
		return FitInsufficient
	case completed < 19:
		return FitBasic
	case completed < 31:
		return FitGood
	default:
		return FitHigh
	}
}
