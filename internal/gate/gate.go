// Package gate decides whether a profile is complete enough to allow fit scoring.
package gate

import "github.com/spigell/scout-profile/internal/profile"

// Result is the gating decision for one profile.
type Result struct {
	Unlocked              bool     `json:"unlocked"`
	MissingRequiredFields []string `json:"missing_required_fields"`
	BlockingMissingFields []string `json:"blocking_missing_fields"`
}

// Check evaluates p against the required and hard-gate fields. The default
// profile is always locked.
func Check(p *profile.Profile) Result {
	missing := missingOf(p, profile.RequiredFields)
	blocking := missingOf(p, profile.HardGateFields)

	return Result{
		Unlocked:              len(missing) == 0 && len(blocking) == 0,
		MissingRequiredFields: missing,
		BlockingMissingFields: blocking,
	}
}

func missingOf(p *profile.Profile, fields []profile.Field) []string {
	out := make([]string, 0)
	for _, f := range fields {
		if !p.Present(f) {
			out = append(out, f.Path())
		}
	}
	return out
}
