// Package profile holds the club recruitment profile, its defaults, the
// field catalog shared by completeness and gating, and the typed patch merge.
package profile

import "slices"

// Profile is the recruitment configuration of one club.
type Profile struct {
	Identity     Identity     `json:"identity"`
	Finances     Finances     `json:"finances"`
	PlayingStyle PlayingStyle `json:"playing_style"`
	Squad        Squad        `json:"squad"`
	Recruitment  Recruitment  `json:"recruitment"`
	Technical    Technical    `json:"technical"`
	Contracts    Contracts    `json:"contracts"`
	Strategy     Strategy     `json:"strategy"`
}

type Identity struct {
	Name            string       `json:"name"`
	Country         string       `json:"country"`
	League          string       `json:"league"`
	Tier            Tier         `json:"tier" validate:"oneof=top_flight second_tier third_tier lower"`
	FoundedYear     *int         `json:"founded_year"`
	StadiumCapacity *int         `json:"stadium_capacity" validate:"omitnil,gte=0"`
	AcademyLevel    AcademyLevel `json:"academy_level" validate:"oneof=none basic developing established elite"`
}

type Finances struct {
	// TransferBudget and WageBudgetWeekly are in Currency units; zero means
	// the budget has not been set.
	TransferBudget        float64               `json:"transfer_budget" validate:"gte=0"`
	WageBudgetWeekly      float64               `json:"wage_budget_weekly" validate:"gte=0"`
	Currency              string                `json:"currency"`
	SellToBuy             bool                  `json:"sell_to_buy"`
	InstallmentPreference InstallmentPreference `json:"installment_preference" validate:"oneof=upfront installments flexible"`
	AgentFeeCeilingPct    float64               `json:"agent_fee_ceiling_pct" validate:"gte=0,lte=100"`
}

type PlayingStyle struct {
	FormationPrimary   string            `json:"formation_primary"`
	FormationSecondary *string           `json:"formation_secondary"`
	Style              Style             `json:"style" validate:"oneof=possession counter_attack direct balanced"`
	BuildUp            BuildUp           `json:"build_up" validate:"oneof=short mixed long"`
	PressingIntensity  PressingIntensity `json:"pressing_intensity" validate:"oneof=low medium high very_high"`
	WingPlayPreference WingPlay          `json:"wing_play_preference" validate:"oneof=traditional inverted mixed"`
	SetPieceImportance Level             `json:"set_piece_importance" validate:"oneof=low medium high"`
}

type Squad struct {
	SquadSizeTarget        int         `json:"squad_size_target" validate:"gte=0"`
	CurrentSquadSize       *int        `json:"current_squad_size" validate:"omitnil,gte=0"`
	ForeignPlayerLimit     int         `json:"foreign_player_limit" validate:"gte=0"`
	HomegrownRequirement   int         `json:"homegrown_requirement" validate:"gte=0"`
	AverageSquadAge        *float64    `json:"average_squad_age" validate:"omitnil,gte=0"`
	YouthIntegrationPolicy YouthPolicy `json:"youth_integration_policy" validate:"oneof=minimal balanced priority"`
}

type Recruitment struct {
	// PriorityPositions is ordered by importance; only the first five are
	// meaningful.
	PriorityPositions      []string        `json:"priority_positions"`
	AgePreference          AgePreference   `json:"age_preference"`
	ExperienceLevel        ExperienceLevel `json:"experience_level" validate:"oneof=prospect emerging proven veteran"`
	PreferredLeagues       []string        `json:"preferred_leagues"`
	PreferredNationalities []string        `json:"preferred_nationalities"`
	AvoidLeagues           []string        `json:"avoid_leagues"`
	LeftFootPriority       bool            `json:"left_foot_priority"`
}

// AgePreference is expected to satisfy Min <= Ideal <= Max, but nothing
// enforces it; consumers must cope with any ordering or a missing bound.
type AgePreference struct {
	Min   *int `json:"min"`
	Max   *int `json:"max"`
	Ideal *int `json:"ideal"`
}

type Technical struct {
	PhysicalProfile        PhysicalProfile `json:"physical_profile" validate:"oneof=athletic technical balanced"`
	MinimumHeightCm        *int            `json:"minimum_height_cm" validate:"omitnil,gte=0"`
	SpeedImportance        Importance      `json:"speed_importance" validate:"oneof=low medium high critical"`
	AerialImportance       Importance      `json:"aerial_importance" validate:"oneof=low medium high critical"`
	TechnicalFloor         *float64        `json:"technical_floor" validate:"omitnil,gte=0,lte=100"`
	InjuryHistoryTolerance Level           `json:"injury_history_tolerance" validate:"oneof=low medium high"`
}

type Contracts struct {
	ContractLengthPreference ContractLength      `json:"contract_length_preference"`
	LoanInterest             bool                `json:"loan_interest"`
	SellOnClauseOK           bool                `json:"sell_on_clause_ok"`
	BuybackClauseOK          bool                `json:"buyback_clause_ok"`
	ReleaseClausePolicy      ReleaseClausePolicy `json:"release_clause_policy" validate:"oneof=required preferred avoid"`
	ImageRightsPolicy        ImageRightsPolicy   `json:"image_rights_policy" validate:"oneof=club_owned shared player_owned"`
}

type ContractLength struct {
	MinYears int `json:"min_years" validate:"gte=0"`
	MaxYears int `json:"max_years" validate:"gte=0"`
}

type Strategy struct {
	SeasonObjective           SeasonObjective    `json:"season_objective" validate:"oneof=title continental top_half mid_table survival promotion"`
	TransferPhilosophy        TransferPhilosophy `json:"transfer_philosophy" validate:"oneof=develop_and_sell win_now balanced"`
	RiskAppetite              RiskAppetite       `json:"risk_appetite" validate:"oneof=conservative moderate aggressive"`
	ProjectTimeline           ProjectTimeline    `json:"project_timeline" validate:"oneof=short_term medium_term long_term"`
	BrandValueImportance      Level              `json:"brand_value_importance" validate:"oneof=low medium high"`
	SocialMediaPresenceFactor bool               `json:"social_media_presence_factor"`
}

// Default returns the profile every club starts with. Budgets and priority
// positions are deliberately empty so a fresh profile never unlocks scoring.
func Default() *Profile {
	return &Profile{
		Identity: Identity{
			Tier:         TierTopFlight,
			AcademyLevel: AcademyBasic,
		},
		Finances: Finances{
			Currency:              "EUR",
			InstallmentPreference: InstallmentFlexible,
			AgentFeeCeilingPct:    10,
		},
		PlayingStyle: PlayingStyle{
			FormationPrimary:   "4-3-3",
			Style:              StyleBalanced,
			BuildUp:            BuildUpMixed,
			PressingIntensity:  PressingMedium,
			WingPlayPreference: WingPlayMixed,
			SetPieceImportance: LevelMedium,
		},
		Squad: Squad{
			SquadSizeTarget:        25,
			ForeignPlayerLimit:     0,
			HomegrownRequirement:   0,
			YouthIntegrationPolicy: YouthBalanced,
		},
		Recruitment: Recruitment{
			PriorityPositions: []string{},
			AgePreference: AgePreference{
				Min:   intPtr(18),
				Max:   intPtr(30),
				Ideal: intPtr(24),
			},
			ExperienceLevel:        ExperienceEmerging,
			PreferredLeagues:       []string{},
			PreferredNationalities: []string{},
			AvoidLeagues:           []string{},
		},
		Technical: Technical{
			PhysicalProfile:        PhysicalBalanced,
			SpeedImportance:        ImportanceMedium,
			AerialImportance:       ImportanceMedium,
			InjuryHistoryTolerance: LevelMedium,
		},
		Contracts: Contracts{
			ContractLengthPreference: ContractLength{MinYears: 2, MaxYears: 4},
			SellOnClauseOK:           true,
			ReleaseClausePolicy:      ReleaseClausePreferred,
			ImageRightsPolicy:        ImageRightsShared,
		},
		Strategy: Strategy{
			SeasonObjective:      ObjectiveMidTable,
			TransferPhilosophy:   PhilosophyBalanced,
			RiskAppetite:         RiskModerate,
			ProjectTimeline:      TimelineMedium,
			BrandValueImportance: LevelMedium,
		},
	}
}

// Clone returns a deep copy of p. Nil and empty lists are preserved as they are.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	c := *p
	c.Identity.FoundedYear = clonePtr(p.Identity.FoundedYear)
	c.Identity.StadiumCapacity = clonePtr(p.Identity.StadiumCapacity)
	c.PlayingStyle.FormationSecondary = clonePtr(p.PlayingStyle.FormationSecondary)
	c.Squad.CurrentSquadSize = clonePtr(p.Squad.CurrentSquadSize)
	c.Squad.AverageSquadAge = clonePtr(p.Squad.AverageSquadAge)
	c.Recruitment.PriorityPositions = slices.Clone(p.Recruitment.PriorityPositions)
	c.Recruitment.AgePreference = AgePreference{
		Min:   clonePtr(p.Recruitment.AgePreference.Min),
		Max:   clonePtr(p.Recruitment.AgePreference.Max),
		Ideal: clonePtr(p.Recruitment.AgePreference.Ideal),
	}
	c.Recruitment.PreferredLeagues = slices.Clone(p.Recruitment.PreferredLeagues)
	c.Recruitment.PreferredNationalities = slices.Clone(p.Recruitment.PreferredNationalities)
	c.Recruitment.AvoidLeagues = slices.Clone(p.Recruitment.AvoidLeagues)
	c.Technical.MinimumHeightCm = clonePtr(p.Technical.MinimumHeightCm)
	c.Technical.TechnicalFloor = clonePtr(p.Technical.TechnicalFloor)

	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func intPtr(v int) *int { return &v }
