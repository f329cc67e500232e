package profile

import (
	"math"
	"strings"
)

// Field identifies one leaf of a Profile.
type Field int

const (
	IdentityName Field = iota
	IdentityCountry
	IdentityLeague
	IdentityTier
	IdentityFoundedYear
	IdentityStadiumCapacity
	IdentityAcademyLevel

	FinancesTransferBudget
	FinancesWageBudgetWeekly
	FinancesCurrency
	FinancesSellToBuy
	FinancesInstallmentPreference
	FinancesAgentFeeCeilingPct

	PlayingStyleFormationPrimary
	PlayingStyleFormationSecondary
	PlayingStyleStyle
	PlayingStyleBuildUp
	PlayingStylePressingIntensity
	PlayingStyleWingPlayPreference
	PlayingStyleSetPieceImportance

	SquadSizeTarget
	SquadCurrentSize
	SquadForeignPlayerLimit
	SquadHomegrownRequirement
	SquadAverageAge
	SquadYouthIntegrationPolicy

	RecruitmentPriorityPositions
	RecruitmentAgeMin
	RecruitmentAgeMax
	RecruitmentAgeIdeal
	RecruitmentExperienceLevel
	RecruitmentPreferredLeagues
	RecruitmentPreferredNationalities
	RecruitmentAvoidLeagues
	RecruitmentLeftFootPriority

	TechnicalPhysicalProfile
	TechnicalMinimumHeightCm
	TechnicalSpeedImportance
	TechnicalAerialImportance
	TechnicalFloor
	TechnicalInjuryHistoryTolerance

	ContractsMinYears
	ContractsMaxYears
	ContractsLoanInterest
	ContractsSellOnClauseOK
	ContractsBuybackClauseOK
	ContractsReleaseClausePolicy
	ContractsImageRightsPolicy

	StrategySeasonObjective
	StrategyTransferPhilosophy
	StrategyRiskAppetite
	StrategyProjectTimeline
	StrategyBrandValueImportance
	StrategySocialMediaPresenceFactor

	fieldCount
)

// Kind selects the presence rule applied to a field.
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindNumber
	// KindBudget is a number that only counts as present when positive.
	KindBudget
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindNumber:
		return "number"
	case KindBudget:
		return "budget"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Descriptor describes a catalog entry.
type Descriptor struct {
	Field    Field
	Section  string
	Name     string
	Kind     Kind
	Nullable bool
}

// Path returns the dotted path of the field, e.g. "finances.transfer_budget".
func (d Descriptor) Path() string {
	return d.Section + "." + d.Name
}

var catalog = [fieldCount]Descriptor{
	IdentityName:            {IdentityName, "identity", "name", KindString, false},
	IdentityCountry:         {IdentityCountry, "identity", "country", KindString, false},
	IdentityLeague:          {IdentityLeague, "identity", "league", KindString, false},
	IdentityTier:            {IdentityTier, "identity", "tier", KindEnum, false},
	IdentityFoundedYear:     {IdentityFoundedYear, "identity", "founded_year", KindNumber, true},
	IdentityStadiumCapacity: {IdentityStadiumCapacity, "identity", "stadium_capacity", KindNumber, true},
	IdentityAcademyLevel:    {IdentityAcademyLevel, "identity", "academy_level", KindEnum, false},

	FinancesTransferBudget:        {FinancesTransferBudget, "finances", "transfer_budget", KindBudget, false},
	FinancesWageBudgetWeekly:      {FinancesWageBudgetWeekly, "finances", "wage_budget_weekly", KindBudget, false},
	FinancesCurrency:              {FinancesCurrency, "finances", "currency", KindString, false},
	FinancesSellToBuy:             {FinancesSellToBuy, "finances", "sell_to_buy", KindBool, false},
	FinancesInstallmentPreference: {FinancesInstallmentPreference, "finances", "installment_preference", KindEnum, false},
	FinancesAgentFeeCeilingPct:    {FinancesAgentFeeCeilingPct, "finances", "agent_fee_ceiling_pct", KindNumber, false},

	PlayingStyleFormationPrimary:   {PlayingStyleFormationPrimary, "playing_style", "formation_primary", KindString, false},
	PlayingStyleFormationSecondary: {PlayingStyleFormationSecondary, "playing_style", "formation_secondary", KindString, true},
	PlayingStyleStyle:              {PlayingStyleStyle, "playing_style", "style", KindEnum, false},
	PlayingStyleBuildUp:            {PlayingStyleBuildUp, "playing_style", "build_up", KindEnum, false},
	PlayingStylePressingIntensity:  {PlayingStylePressingIntensity, "playing_style", "pressing_intensity", KindEnum, false},
	PlayingStyleWingPlayPreference: {PlayingStyleWingPlayPreference, "playing_style", "wing_play_preference", KindEnum, false},
	PlayingStyleSetPieceImportance: {PlayingStyleSetPieceImportance, "playing_style", "set_piece_importance", KindEnum, false},

	SquadSizeTarget:             {SquadSizeTarget, "squad", "squad_size_target", KindNumber, false},
	SquadCurrentSize:            {SquadCurrentSize, "squad", "current_squad_size", KindNumber, true},
	SquadForeignPlayerLimit:     {SquadForeignPlayerLimit, "squad", "foreign_player_limit", KindNumber, false},
	SquadHomegrownRequirement:   {SquadHomegrownRequirement, "squad", "homegrown_requirement", KindNumber, false},
	SquadAverageAge:             {SquadAverageAge, "squad", "average_squad_age", KindNumber, true},
	SquadYouthIntegrationPolicy: {SquadYouthIntegrationPolicy, "squad", "youth_integration_policy", KindEnum, false},

	RecruitmentPriorityPositions:      {RecruitmentPriorityPositions, "recruitment", "priority_positions", KindList, false},
	RecruitmentAgeMin:                 {RecruitmentAgeMin, "recruitment", "age_preference.min", KindNumber, true},
	RecruitmentAgeMax:                 {RecruitmentAgeMax, "recruitment", "age_preference.max", KindNumber, true},
	RecruitmentAgeIdeal:               {RecruitmentAgeIdeal, "recruitment", "age_preference.ideal", KindNumber, true},
	RecruitmentExperienceLevel:        {RecruitmentExperienceLevel, "recruitment", "experience_level", KindEnum, false},
	RecruitmentPreferredLeagues:       {RecruitmentPreferredLeagues, "recruitment", "preferred_leagues", KindList, false},
	RecruitmentPreferredNationalities: {RecruitmentPreferredNationalities, "recruitment", "preferred_nationalities", KindList, false},
	RecruitmentAvoidLeagues:           {RecruitmentAvoidLeagues, "recruitment", "avoid_leagues", KindList, false},
	RecruitmentLeftFootPriority:       {RecruitmentLeftFootPriority, "recruitment", "left_foot_priority", KindBool, false},

	TechnicalPhysicalProfile:        {TechnicalPhysicalProfile, "technical", "physical_profile", KindEnum, false},
	TechnicalMinimumHeightCm:        {TechnicalMinimumHeightCm, "technical", "minimum_height_cm", KindNumber, true},
	TechnicalSpeedImportance:        {TechnicalSpeedImportance, "technical", "speed_importance", KindEnum, false},
	TechnicalAerialImportance:       {TechnicalAerialImportance, "technical", "aerial_importance", KindEnum, false},
	TechnicalFloor:                  {TechnicalFloor, "technical", "technical_floor", KindNumber, true},
	TechnicalInjuryHistoryTolerance: {TechnicalInjuryHistoryTolerance, "technical", "injury_history_tolerance", KindEnum, false},

	ContractsMinYears:            {ContractsMinYears, "contracts", "contract_length_preference.min_years", KindNumber, false},
	ContractsMaxYears:            {ContractsMaxYears, "contracts", "contract_length_preference.max_years", KindNumber, false},
	ContractsLoanInterest:        {ContractsLoanInterest, "contracts", "loan_interest", KindBool, false},
	ContractsSellOnClauseOK:      {ContractsSellOnClauseOK, "contracts", "sell_on_clause_ok", KindBool, false},
	ContractsBuybackClauseOK:     {ContractsBuybackClauseOK, "contracts", "buyback_clause_ok", KindBool, false},
	ContractsReleaseClausePolicy: {ContractsReleaseClausePolicy, "contracts", "release_clause_policy", KindEnum, false},
	ContractsImageRightsPolicy:   {ContractsImageRightsPolicy, "contracts", "image_rights_policy", KindEnum, false},

	StrategySeasonObjective:           {StrategySeasonObjective, "strategy", "season_objective", KindEnum, false},
	StrategyTransferPhilosophy:        {StrategyTransferPhilosophy, "strategy", "transfer_philosophy", KindEnum, false},
	StrategyRiskAppetite:              {StrategyRiskAppetite, "strategy", "risk_appetite", KindEnum, false},
	StrategyProjectTimeline:           {StrategyProjectTimeline, "strategy", "project_timeline", KindEnum, false},
	StrategyBrandValueImportance:      {StrategyBrandValueImportance, "strategy", "brand_value_importance", KindEnum, false},
	StrategySocialMediaPresenceFactor: {StrategySocialMediaPresenceFactor, "strategy", "social_media_presence_factor", KindBool, false},
}

var byPath = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for _, d := range catalog {
		m[d.Path()] = d.Field
	}
	return m
}()

// Fields returns every catalog field in catalog order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// FieldCount is the size of the catalog.
func FieldCount() int { return int(fieldCount) }

// Describe returns the descriptor of f.
func (f Field) Describe() Descriptor {
	if f < 0 || f >= fieldCount {
		return Descriptor{Field: f}
	}
	return catalog[f]
}

// Path returns the dotted path of f.
func (f Field) Path() string { return f.Describe().Path() }

func (f Field) String() string { return f.Path() }

// FieldByPath resolves a dotted path to its field.
func FieldByPath(path string) (Field, bool) {
	f, ok := byPath[strings.TrimSpace(path)]
	return f, ok
}

// SectionFields returns the fields of one section in catalog order.
func SectionFields(section string) []Field {
	var out []Field
	for _, d := range catalog {
		if d.Section == section {
			out = append(out, d.Field)
		}
	}
	return out
}

// Sections lists section names in catalog order.
func Sections() []string {
	return []string{"identity", "finances", "playing_style", "squad", "recruitment", "technical", "contracts", "strategy"}
}

// Value returns the value held by f: string, float64, int, bool or []string,
// or nil for an unset nullable field. Enum values are returned as plain strings.
func (p *Profile) Value(f Field) any {
	switch f {
	case IdentityName:
		return p.Identity.Name
	case IdentityCountry:
		return p.Identity.Country
	case IdentityLeague:
		return p.Identity.League
	case IdentityTier:
		return string(p.Identity.Tier)
	case IdentityFoundedYear:
		return deref(p.Identity.FoundedYear)
	case IdentityStadiumCapacity:
		return deref(p.Identity.StadiumCapacity)
	case IdentityAcademyLevel:
		return string(p.Identity.AcademyLevel)

	case FinancesTransferBudget:
		return p.Finances.TransferBudget
	case FinancesWageBudgetWeekly:
		return p.Finances.WageBudgetWeekly
	case FinancesCurrency:
		return p.Finances.Currency
	case FinancesSellToBuy:
		return p.Finances.SellToBuy
	case FinancesInstallmentPreference:
		return string(p.Finances.InstallmentPreference)
	case FinancesAgentFeeCeilingPct:
		return p.Finances.AgentFeeCeilingPct

	case PlayingStyleFormationPrimary:
		return p.PlayingStyle.FormationPrimary
	case PlayingStyleFormationSecondary:
		return deref(p.PlayingStyle.FormationSecondary)
	case PlayingStyleStyle:
		return string(p.PlayingStyle.Style)
	case PlayingStyleBuildUp:
		return string(p.PlayingStyle.BuildUp)
	case PlayingStylePressingIntensity:
		return string(p.PlayingStyle.PressingIntensity)
	case PlayingStyleWingPlayPreference:
		return string(p.PlayingStyle.WingPlayPreference)
	case PlayingStyleSetPieceImportance:
		return string(p.PlayingStyle.SetPieceImportance)

	case SquadSizeTarget:
		return p.Squad.SquadSizeTarget
	case SquadCurrentSize:
		return deref(p.Squad.CurrentSquadSize)
	case SquadForeignPlayerLimit:
		return p.Squad.ForeignPlayerLimit
	case SquadHomegrownRequirement:
		return p.Squad.HomegrownRequirement
	case SquadAverageAge:
		return deref(p.Squad.AverageSquadAge)
	case SquadYouthIntegrationPolicy:
		return string(p.Squad.YouthIntegrationPolicy)

	case RecruitmentPriorityPositions:
		return p.Recruitment.PriorityPositions
	case RecruitmentAgeMin:
		return deref(p.Recruitment.AgePreference.Min)
	case RecruitmentAgeMax:
		return deref(p.Recruitment.AgePreference.Max)
	case RecruitmentAgeIdeal:
		return deref(p.Recruitment.AgePreference.Ideal)
	case RecruitmentExperienceLevel:
		return string(p.Recruitment.ExperienceLevel)
	case RecruitmentPreferredLeagues:
		return p.Recruitment.PreferredLeagues
	case RecruitmentPreferredNationalities:
		return p.Recruitment.PreferredNationalities
	case RecruitmentAvoidLeagues:
		return p.Recruitment.AvoidLeagues
	case RecruitmentLeftFootPriority:
		return p.Recruitment.LeftFootPriority

	case TechnicalPhysicalProfile:
		return string(p.Technical.PhysicalProfile)
	case TechnicalMinimumHeightCm:
		return deref(p.Technical.MinimumHeightCm)
	case TechnicalSpeedImportance:
		return string(p.Technical.SpeedImportance)
	case TechnicalAerialImportance:
		return string(p.Technical.AerialImportance)
	case TechnicalFloor:
		return deref(p.Technical.TechnicalFloor)
	case TechnicalInjuryHistoryTolerance:
		return string(p.Technical.InjuryHistoryTolerance)

	case ContractsMinYears:
		return p.Contracts.ContractLengthPreference.MinYears
	case ContractsMaxYears:
		return p.Contracts.ContractLengthPreference.MaxYears
	case ContractsLoanInterest:
		return p.Contracts.LoanInterest
	case ContractsSellOnClauseOK:
		return p.Contracts.SellOnClauseOK
	case ContractsBuybackClauseOK:
		return p.Contracts.BuybackClauseOK
	case ContractsReleaseClausePolicy:
		return string(p.Contracts.ReleaseClausePolicy)
	case ContractsImageRightsPolicy:
		return string(p.Contracts.ImageRightsPolicy)

	case StrategySeasonObjective:
		return string(p.Strategy.SeasonObjective)
	case StrategyTransferPhilosophy:
		return string(p.Strategy.TransferPhilosophy)
	case StrategyRiskAppetite:
		return string(p.Strategy.RiskAppetite)
	case StrategyProjectTimeline:
		return string(p.Strategy.ProjectTimeline)
	case StrategyBrandValueImportance:
		return string(p.Strategy.BrandValueImportance)
	case StrategySocialMediaPresenceFactor:
		return p.Strategy.SocialMediaPresenceFactor
	}

	return nil
}

// Present reports whether f counts as filled in on p:
// strings and enums must be non-blank, lists non-empty, budgets positive,
// other numbers finite; booleans are always present.
func (p *Profile) Present(f Field) bool {
	if p == nil {
		return false
	}

	switch v := p.Value(f).(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case float64:
		if f.Describe().Kind == KindBudget {
			return v > 0
		}
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		if f.Describe().Kind == KindBudget {
			return v > 0
		}
		return true
	case bool:
		return true
	default:
		return true
	}
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
