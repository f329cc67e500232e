// Package fitscore rates how well a candidate matches a club's recruitment profile.
package fitscore

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spigell/scout-profile/internal/candidate"
	"github.com/spigell/scout-profile/internal/profile"
)

// Verdict is the coarse label derived from a score.
type Verdict string

const (
	VerdictStrong      Verdict = "Strong Fit"
	VerdictModerate    Verdict = "Moderate Fit"
	VerdictPoor        Verdict = "Poor Fit"
	VerdictNotAssessed Verdict = "Not Assessed"
)

const (
	StrengthPosition       = "Matches target position"
	StrengthAge            = "Age within preferred range"
	StrengthContract       = "Contract expires soon"
	ConcernAge             = "Age outside preferred range"
	ConcernValueOverBudget = "Market value exceeds budget"

	baseScore  = 50
	maxReasons = 2
)

// Result is one candidate's rating.
type Result struct {
	Score     int      `json:"score"`
	Verdict   Verdict  `json:"verdict"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
}

// VerdictFor maps a score to its verdict.
func VerdictFor(score int) Verdict {
	switch {
	case score >= 80:
		return VerdictStrong
	case score >= 50:
		return VerdictModerate
	default:
		return VerdictPoor
	}
}

// NotAssessed is the result reported when scoring was never attempted.
func NotAssessed() Result {
	return Result{Verdict: VerdictNotAssessed, Strengths: []string{}, Concerns: []string{}}
}

// Score rates c against p as of now. Missing inputs skip their term.
func Score(p *profile.Profile, c *candidate.Attributes, now time.Time) Result {
	if p == nil {
		p = profile.Default()
	}
	if c == nil {
		c = &candidate.Attributes{}
	}

	s := &tally{total: baseScore}
	s.position(p, c)
	s.age(p, c, now)
	s.value(p, c)
	s.contract(c, now)
	s.nationality(p, c)

	score := int(math.Round(math.Max(0, math.Min(100, s.total))))
	return Result{
		Score:     score,
		Verdict:   VerdictFor(score),
		Strengths: truncate(s.strengths),
		Concerns:  truncate(s.concerns),
	}
}

type tally struct {
	total     float64
	strengths []string
	concerns  []string
}

func (s *tally) position(p *profile.Profile, c *candidate.Attributes) {
	if strings.TrimSpace(c.Position) == "" {
		return
	}
	if containsFold(p.Recruitment.PriorityPositions, c.Position) {
		s.total += 20
		s.strengths = append(s.strengths, StrengthPosition)
		return
	}
	s.total -= 10
}

func (s *tally) age(p *profile.Profile, c *candidate.Attributes, now time.Time) {
	age, ok := c.AgeAt(now)
	pref := p.Recruitment.AgePreference
	if !ok || pref.Min == nil || pref.Max == nil {
		return
	}

	if age < *pref.Min || age > *pref.Max {
		s.total -= 15
		s.concerns = append(s.concerns, ConcernAge)
		return
	}
	if pref.Ideal == nil {
		return
	}

	distance := age - *pref.Ideal
	if distance < 0 {
		distance = -distance
	}
	switch {
	case distance <= 2:
		s.total += 15
		s.strengths = append(s.strengths, StrengthAge)
	case distance <= 5:
		s.total += 5
	}
}

func (s *tally) value(p *profile.Profile, c *candidate.Attributes) {
	budget := p.Finances.TransferBudget
	if c.MarketValue == nil || math.IsNaN(*c.MarketValue) || math.IsNaN(budget) || budget <= 0 {
		return
	}
	if *c.MarketValue <= budget {
		s.total += 10
		return
	}
	s.total -= 15
	s.concerns = append(s.concerns, ConcernValueOverBudget)
}

func (s *tally) contract(c *candidate.Attributes, now time.Time) {
	months, ok := c.MonthsToContractEnd(now)
	if !ok {
		return
	}
	switch {
	case months >= 0 && months < 6:
		s.total += 10
		s.strengths = append(s.strengths, StrengthContract)
	case months > 12:
		s.total -= 5
	}
}

func (s *tally) nationality(p *profile.Profile, c *candidate.Attributes) {
	if strings.TrimSpace(c.Nationality) == "" {
		return
	}
	if containsFold(p.Recruitment.PreferredNationalities, c.Nationality) {
		s.total += 5
	}
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	return slices.ContainsFunc(list, func(item string) bool {
		return strings.EqualFold(strings.TrimSpace(item), v)
	})
}

func truncate(reasons []string) []string {
	out := make([]string, 0, maxReasons)
	for _, r := range reasons {
		if len(out) == maxReasons {
			break
		}
		out = append(out, r)
	}
	return out
}
