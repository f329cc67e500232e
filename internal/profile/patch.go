package profile

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Opt is one patch value. An absent key leaves the base untouched, an
// explicit null clears it, anything else replaces it. An enum value outside
// its set counts as the wrong shape and is dropped.
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a patch value that replaces the base value with v.
func Some[T any](v T) Opt[T] { return Opt[T]{Set: true, Value: v} }

// Null returns a patch value that clears the base value.
func Null[T any]() Opt[T] { return Opt[T]{Set: true, Null: true} }

// IsZero reports an absent value; it makes `omitzero` drop untouched keys.
func (o Opt[T]) IsZero() bool { return !o.Set }

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Opt[T]{Set: true, Null: true}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil || !allowed(v) {
		// A value of the wrong shape never overwrites the base.
		*o = Opt[T]{}
		return nil
	}
	*o = Opt[T]{Set: true, Value: v}
	return nil
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Patch is a partial Profile. Nil sections are left unchanged.
type Patch struct {
	Identity     *IdentityPatch     `json:"identity,omitempty"`
	Finances     *FinancesPatch     `json:"finances,omitempty"`
	PlayingStyle *PlayingStylePatch `json:"playing_style,omitempty"`
	Squad        *SquadPatch        `json:"squad,omitempty"`
	Recruitment  *RecruitmentPatch  `json:"recruitment,omitempty"`
	Technical    *TechnicalPatch    `json:"technical,omitempty"`
	Contracts    *ContractsPatch    `json:"contracts,omitempty"`
	Strategy     *StrategyPatch     `json:"strategy,omitempty"`
}

type IdentityPatch struct {
	Name            Opt[string]       `json:"name,omitzero"`
	Country         Opt[string]       `json:"country,omitzero"`
	League          Opt[string]       `json:"league,omitzero"`
	Tier            Opt[Tier]         `json:"tier,omitzero"`
	FoundedYear     Opt[int]          `json:"founded_year,omitzero"`
	StadiumCapacity Opt[int]          `json:"stadium_capacity,omitzero"`
	AcademyLevel    Opt[AcademyLevel] `json:"academy_level,omitzero"`
}

type FinancesPatch struct {
	TransferBudget        Opt[float64]               `json:"transfer_budget,omitzero"`
	WageBudgetWeekly      Opt[float64]               `json:"wage_budget_weekly,omitzero"`
	Currency              Opt[string]                `json:"currency,omitzero"`
	SellToBuy             Opt[bool]                  `json:"sell_to_buy,omitzero"`
	InstallmentPreference Opt[InstallmentPreference] `json:"installment_preference,omitzero"`
	AgentFeeCeilingPct    Opt[float64]               `json:"agent_fee_ceiling_pct,omitzero"`
}

type PlayingStylePatch struct {
	FormationPrimary   Opt[string]            `json:"formation_primary,omitzero"`
	FormationSecondary Opt[string]            `json:"formation_secondary,omitzero"`
	Style              Opt[Style]             `json:"style,omitzero"`
	BuildUp            Opt[BuildUp]           `json:"build_up,omitzero"`
	PressingIntensity  Opt[PressingIntensity] `json:"pressing_intensity,omitzero"`
	WingPlayPreference Opt[WingPlay]          `json:"wing_play_preference,omitzero"`
	SetPieceImportance Opt[Level]             `json:"set_piece_importance,omitzero"`
}

type SquadPatch struct {
	SquadSizeTarget        Opt[int]         `json:"squad_size_target,omitzero"`
	CurrentSquadSize       Opt[int]         `json:"current_squad_size,omitzero"`
	ForeignPlayerLimit     Opt[int]         `json:"foreign_player_limit,omitzero"`
	HomegrownRequirement   Opt[int]         `json:"homegrown_requirement,omitzero"`
	AverageSquadAge        Opt[float64]     `json:"average_squad_age,omitzero"`
	YouthIntegrationPolicy Opt[YouthPolicy] `json:"youth_integration_policy,omitzero"`
}

type RecruitmentPatch struct {
	PriorityPositions      Opt[[]string]        `json:"priority_positions,omitzero"`
	AgePreference          *AgePreferencePatch  `json:"age_preference,omitempty"`
	ExperienceLevel        Opt[ExperienceLevel] `json:"experience_level,omitzero"`
	PreferredLeagues       Opt[[]string]        `json:"preferred_leagues,omitzero"`
	PreferredNationalities Opt[[]string]        `json:"preferred_nationalities,omitzero"`
	AvoidLeagues           Opt[[]string]        `json:"avoid_leagues,omitzero"`
	LeftFootPriority       Opt[bool]            `json:"left_foot_priority,omitzero"`
}

type AgePreferencePatch struct {
	Min   Opt[int] `json:"min,omitzero"`
	Max   Opt[int] `json:"max,omitzero"`
	Ideal Opt[int] `json:"ideal,omitzero"`
}

type TechnicalPatch struct {
	PhysicalProfile        Opt[PhysicalProfile] `json:"physical_profile,omitzero"`
	MinimumHeightCm        Opt[int]             `json:"minimum_height_cm,omitzero"`
	SpeedImportance        Opt[Importance]      `json:"speed_importance,omitzero"`
	AerialImportance       Opt[Importance]      `json:"aerial_importance,omitzero"`
	TechnicalFloor         Opt[float64]         `json:"technical_floor,omitzero"`
	InjuryHistoryTolerance Opt[Level]           `json:"injury_history_tolerance,omitzero"`
}

type ContractsPatch struct {
	ContractLengthPreference *ContractLengthPatch     `json:"contract_length_preference,omitempty"`
	LoanInterest             Opt[bool]                `json:"loan_interest,omitzero"`
	SellOnClauseOK           Opt[bool]                `json:"sell_on_clause_ok,omitzero"`
	BuybackClauseOK          Opt[bool]                `json:"buyback_clause_ok,omitzero"`
	ReleaseClausePolicy      Opt[ReleaseClausePolicy] `json:"release_clause_policy,omitzero"`
	ImageRightsPolicy        Opt[ImageRightsPolicy]   `json:"image_rights_policy,omitzero"`
}

type ContractLengthPatch struct {
	MinYears Opt[int] `json:"min_years,omitzero"`
	MaxYears Opt[int] `json:"max_years,omitzero"`
}

type StrategyPatch struct {
	SeasonObjective           Opt[SeasonObjective]    `json:"season_objective,omitzero"`
	TransferPhilosophy        Opt[TransferPhilosophy] `json:"transfer_philosophy,omitzero"`
	RiskAppetite              Opt[RiskAppetite]       `json:"risk_appetite,omitzero"`
	ProjectTimeline           Opt[ProjectTimeline]    `json:"project_timeline,omitzero"`
	BrandValueImportance      Opt[Level]              `json:"brand_value_importance,omitzero"`
	SocialMediaPresenceFactor Opt[bool]               `json:"social_media_presence_factor,omitzero"`
}

// Merge returns base with patch applied. Records recurse, lists are replaced
// whole, scalars are overwritten, and an explicit null clears nullable
// fields and lists. A null aimed at a non-nullable scalar is ignored. Neither
// argument is modified; a nil patch yields a copy of base.
func Merge(base *Profile, patch *Patch) *Profile {
	out := base.Clone()
	if out == nil {
		out = Default()
	}
	if patch == nil {
		return out
	}

	if s := patch.Identity; s != nil {
		d := &out.Identity
		setValue(&d.Name, s.Name)
		setValue(&d.Country, s.Country)
		setValue(&d.League, s.League)
		setValue(&d.Tier, s.Tier)
		setNullable(&d.FoundedYear, s.FoundedYear)
		setNullable(&d.StadiumCapacity, s.StadiumCapacity)
		setValue(&d.AcademyLevel, s.AcademyLevel)
	}

	if s := patch.Finances; s != nil {
		d := &out.Finances
		setValue(&d.TransferBudget, s.TransferBudget)
		setValue(&d.WageBudgetWeekly, s.WageBudgetWeekly)
		setValue(&d.Currency, s.Currency)
		setValue(&d.SellToBuy, s.SellToBuy)
		setValue(&d.InstallmentPreference, s.InstallmentPreference)
		setValue(&d.AgentFeeCeilingPct, s.AgentFeeCeilingPct)
	}

	if s := patch.PlayingStyle; s != nil {
		d := &out.PlayingStyle
		setValue(&d.FormationPrimary, s.FormationPrimary)
		setNullable(&d.FormationSecondary, s.FormationSecondary)
		setValue(&d.Style, s.Style)
		setValue(&d.BuildUp, s.BuildUp)
		setValue(&d.PressingIntensity, s.PressingIntensity)
		setValue(&d.WingPlayPreference, s.WingPlayPreference)
		setValue(&d.SetPieceImportance, s.SetPieceImportance)
	}

	if s := patch.Squad; s != nil {
		d := &out.Squad
		setValue(&d.SquadSizeTarget, s.SquadSizeTarget)
		setNullable(&d.CurrentSquadSize, s.CurrentSquadSize)
		setValue(&d.ForeignPlayerLimit, s.ForeignPlayerLimit)
		setValue(&d.HomegrownRequirement, s.HomegrownRequirement)
		setNullable(&d.AverageSquadAge, s.AverageSquadAge)
		setValue(&d.YouthIntegrationPolicy, s.YouthIntegrationPolicy)
	}

	if s := patch.Recruitment; s != nil {
		d := &out.Recruitment
		setList(&d.PriorityPositions, s.PriorityPositions)
		if a := s.AgePreference; a != nil {
			setNullable(&d.AgePreference.Min, a.Min)
			setNullable(&d.AgePreference.Max, a.Max)
			setNullable(&d.AgePreference.Ideal, a.Ideal)
		}
		setValue(&d.ExperienceLevel, s.ExperienceLevel)
		setList(&d.PreferredLeagues, s.PreferredLeagues)
		setList(&d.PreferredNationalities, s.PreferredNationalities)
		setList(&d.AvoidLeagues, s.AvoidLeagues)
		setValue(&d.LeftFootPriority, s.LeftFootPriority)
	}

	if s := patch.Technical; s != nil {
		d := &out.Technical
		setValue(&d.PhysicalProfile, s.PhysicalProfile)
		setNullable(&d.MinimumHeightCm, s.MinimumHeightCm)
		setValue(&d.SpeedImportance, s.SpeedImportance)
		setValue(&d.AerialImportance, s.AerialImportance)
		setNullable(&d.TechnicalFloor, s.TechnicalFloor)
		setValue(&d.InjuryHistoryTolerance, s.InjuryHistoryTolerance)
	}

	if s := patch.Contracts; s != nil {
		d := &out.Contracts
		if c := s.ContractLengthPreference; c != nil {
			setValue(&d.ContractLengthPreference.MinYears, c.MinYears)
			setValue(&d.ContractLengthPreference.MaxYears, c.MaxYears)
		}
		setValue(&d.LoanInterest, s.LoanInterest)
		setValue(&d.SellOnClauseOK, s.SellOnClauseOK)
		setValue(&d.BuybackClauseOK, s.BuybackClauseOK)
		setValue(&d.ReleaseClausePolicy, s.ReleaseClausePolicy)
		setValue(&d.ImageRightsPolicy, s.ImageRightsPolicy)
	}

	if s := patch.Strategy; s != nil {
		d := &out.Strategy
		setValue(&d.SeasonObjective, s.SeasonObjective)
		setValue(&d.TransferPhilosophy, s.TransferPhilosophy)
		setValue(&d.RiskAppetite, s.RiskAppetite)
		setValue(&d.ProjectTimeline, s.ProjectTimeline)
		setValue(&d.BrandValueImportance, s.BrandValueImportance)
		setValue(&d.SocialMediaPresenceFactor, s.SocialMediaPresenceFactor)
	}

	return out
}

// allowed is false only for an enum holding a value outside its set.
func allowed(v any) bool {
	valid, isEnum := enumMember(v)
	return valid || !isEnum
}

func setValue[T any](dst *T, o Opt[T]) {
	if o.Set && !o.Null && allowed(o.Value) {
		*dst = o.Value
	}
}

func setNullable[T any](dst **T, o Opt[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	if !allowed(o.Value) {
		return
	}
	v := o.Value
	*dst = &v
}

func setList(dst *[]string, o Opt[[]string]) {
	if !o.Set {
		return
	}
	if o.Null || o.Value == nil {
		*dst = []string{}
		return
	}
	*dst = slices.Clone(o.Value)
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	if p == nil {
		return true
	}
	return p.Identity == nil && p.Finances == nil && p.PlayingStyle == nil && p.Squad == nil &&
		p.Recruitment == nil && p.Technical == nil && p.Contracts == nil && p.Strategy == nil
}
