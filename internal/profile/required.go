package profile

// RequiredFields must all be present before fit scoring is allowed.
var RequiredFields = []Field{
	IdentityName,
	IdentityLeague,
	IdentityTier,
	FinancesTransferBudget,
	FinancesWageBudgetWeekly,
	PlayingStyleFormationPrimary,
	PlayingStyleStyle,
	RecruitmentPriorityPositions,
	RecruitmentAgeMin,
	RecruitmentAgeMax,
	RecruitmentAgeIdeal,
	SquadForeignPlayerLimit,
	StrategySeasonObjective,
	StrategyRiskAppetite,
}

// HardGateFields block scoring on their own and are reported separately.
var HardGateFields = []Field{
	FinancesTransferBudget,
	FinancesWageBudgetWeekly,
	RecruitmentPriorityPositions,
}

// AgePreferencePath names the age preference as a single requirement.
const AgePreferencePath = "recruitment.age_preference"

// AgePreferenceFields make up the composite age preference requirement.
var AgePreferenceFields = []Field{RecruitmentAgeMin, RecruitmentAgeMax, RecruitmentAgeIdeal}

// Requirement is a named group of fields that is satisfied only when every
// field in it is present.
type Requirement struct {
	Name   string
	Fields []Field
}

// Satisfied reports whether all fields of r are present on p.
func (r Requirement) Satisfied(p *Profile) bool {
	for _, f := range r.Fields {
		if !p.Present(f) {
			return false
		}
	}
	return true
}

// Requirements collapses RequiredFields into the checklist shown to users:
// the three age bounds become one composite entry.
func Requirements() []Requirement {
	out := make([]Requirement, 0, len(RequiredFields))
	ageAdded := false
	for _, f := range RequiredFields {
		if isAgeField(f) {
			if !ageAdded {
				out = append(out, Requirement{Name: AgePreferencePath, Fields: AgePreferenceFields})
				ageAdded = true
			}
			continue
		}
		out = append(out, Requirement{Name: f.Path(), Fields: []Field{f}})
	}
	return out
}

func isAgeField(f Field) bool {
	for _, a := range AgePreferenceFields {
		if a == f {
			return true
		}
	}
	return false
}
