package profile

import "slices"

// Enumerated values. Every enum field of a Profile holds one of the values
// listed in the matching slice; Validate rejects anything else.

type Tier string

const (
	TierTopFlight Tier = "top_flight"
	TierSecond    Tier = "second_tier"
	TierThird     Tier = "third_tier"
	TierLower     Tier = "lower"
)

var Tiers = []Tier{TierTopFlight, TierSecond, TierThird, TierLower}

type AcademyLevel string

const (
	AcademyNone        AcademyLevel = "none"
	AcademyBasic       AcademyLevel = "basic"
	AcademyDeveloping  AcademyLevel = "developing"
	AcademyEstablished AcademyLevel = "established"
	AcademyElite       AcademyLevel = "elite"
)

var AcademyLevels = []AcademyLevel{AcademyNone, AcademyBasic, AcademyDeveloping, AcademyEstablished, AcademyElite}

type InstallmentPreference string

const (
	InstallmentUpfront  InstallmentPreference = "upfront"
	InstallmentSpread   InstallmentPreference = "installments"
	InstallmentFlexible InstallmentPreference = "flexible"
)

var InstallmentPreferences = []InstallmentPreference{InstallmentUpfront, InstallmentSpread, InstallmentFlexible}

type Style string

const (
	StylePossession    Style = "possession"
	StyleCounterAttack Style = "counter_attack"
	StyleDirect        Style = "direct"
	StyleBalanced      Style = "balanced"
)

var Styles = []Style{StylePossession, StyleCounterAttack, StyleDirect, StyleBalanced}

type BuildUp string

const (
	BuildUpShort BuildUp = "short"
	BuildUpMixed BuildUp = "mixed"
	BuildUpLong  BuildUp = "long"
)

var BuildUps = []BuildUp{BuildUpShort, BuildUpMixed, BuildUpLong}

type PressingIntensity string

const (
	PressingLow      PressingIntensity = "low"
	PressingMedium   PressingIntensity = "medium"
	PressingHigh     PressingIntensity = "high"
	PressingVeryHigh PressingIntensity = "very_high"
)

var PressingIntensities = []PressingIntensity{PressingLow, PressingMedium, PressingHigh, PressingVeryHigh}

type WingPlay string

const (
	WingPlayTraditional WingPlay = "traditional"
	WingPlayInverted    WingPlay = "inverted"
	WingPlayMixed       WingPlay = "mixed"
)

var WingPlays = []WingPlay{WingPlayTraditional, WingPlayInverted, WingPlayMixed}

// Level is the shared low/medium/high scale.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

type YouthPolicy string

const (
	YouthMinimal  YouthPolicy = "minimal"
	YouthBalanced YouthPolicy = "balanced"
	YouthPriority YouthPolicy = "priority"
)

var YouthPolicies = []YouthPolicy{YouthMinimal, YouthBalanced, YouthPriority}

type ExperienceLevel string

const (
	ExperienceProspect ExperienceLevel = "prospect"
	ExperienceEmerging ExperienceLevel = "emerging"
	ExperienceProven   ExperienceLevel = "proven"
	ExperienceVeteran  ExperienceLevel = "veteran"
)

var ExperienceLevels = []ExperienceLevel{ExperienceProspect, ExperienceEmerging, ExperienceProven, ExperienceVeteran}

type PhysicalProfile string

const (
	PhysicalAthletic  PhysicalProfile = "athletic"
	PhysicalTechnical PhysicalProfile = "technical"
	PhysicalBalanced  PhysicalProfile = "balanced"
)

var PhysicalProfiles = []PhysicalProfile{PhysicalAthletic, PhysicalTechnical, PhysicalBalanced}

// Importance is the four-step scale used by speed and aerial importance.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

var Importances = []Importance{ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical}

type ReleaseClausePolicy string

const (
	ReleaseClauseRequired  ReleaseClausePolicy = "required"
	ReleaseClausePreferred ReleaseClausePolicy = "preferred"
	ReleaseClauseAvoid     ReleaseClausePolicy = "avoid"
)

var ReleaseClausePolicies = []ReleaseClausePolicy{ReleaseClauseRequired, ReleaseClausePreferred, ReleaseClauseAvoid}

type ImageRightsPolicy string

const (
	ImageRightsClub   ImageRightsPolicy = "club_owned"
	ImageRightsShared ImageRightsPolicy = "shared"
	ImageRightsPlayer ImageRightsPolicy = "player_owned"
)

var ImageRightsPolicies = []ImageRightsPolicy{ImageRightsClub, ImageRightsShared, ImageRightsPlayer}

type SeasonObjective string

const (
	ObjectiveTitle       SeasonObjective = "title"
	ObjectiveContinental SeasonObjective = "continental"
	ObjectiveTopHalf     SeasonObjective = "top_half"
	ObjectiveMidTable    SeasonObjective = "mid_table"
	ObjectiveSurvival    SeasonObjective = "survival"
	ObjectivePromotion   SeasonObjective = "promotion"
)

var SeasonObjectives = []SeasonObjective{
	ObjectiveTitle, ObjectiveContinental, ObjectiveTopHalf,
	ObjectiveMidTable, ObjectiveSurvival, ObjectivePromotion,
}

type TransferPhilosophy string

const (
	PhilosophyDevelopAndSell TransferPhilosophy = "develop_and_sell"
	PhilosophyWinNow         TransferPhilosophy = "win_now"
	PhilosophyBalanced       TransferPhilosophy = "balanced"
)

var TransferPhilosophies = []TransferPhilosophy{PhilosophyDevelopAndSell, PhilosophyWinNow, PhilosophyBalanced}

type RiskAppetite string

const (
	RiskConservative RiskAppetite = "conservative"
	RiskModerate     RiskAppetite = "moderate"
	RiskAggressive   RiskAppetite = "aggressive"
)

var RiskAppetites = []RiskAppetite{RiskConservative, RiskModerate, RiskAggressive}

type ProjectTimeline string

const (
	TimelineShort  ProjectTimeline = "short_term"
	TimelineMedium ProjectTimeline = "medium_term"
	TimelineLong   ProjectTimeline = "long_term"
)

var ProjectTimelines = []ProjectTimeline{TimelineShort, TimelineMedium, TimelineLong}

// EnumValues returns the allowed values of the enum field f, or nil when f is
// not an enum.
func EnumValues(f Field) []string {
	switch f {
	case IdentityTier:
		return toStrings(Tiers)
	case IdentityAcademyLevel:
		return toStrings(AcademyLevels)
	case FinancesInstallmentPreference:
		return toStrings(InstallmentPreferences)
	case PlayingStyleStyle:
		return toStrings(Styles)
	case PlayingStyleBuildUp:
		return toStrings(BuildUps)
	case PlayingStylePressingIntensity:
		return toStrings(PressingIntensities)
	case PlayingStyleWingPlayPreference:
		return toStrings(WingPlays)
	case PlayingStyleSetPieceImportance, TechnicalInjuryHistoryTolerance, StrategyBrandValueImportance:
		return toStrings(Levels)
	case SquadYouthIntegrationPolicy:
		return toStrings(YouthPolicies)
	case RecruitmentExperienceLevel:
		return toStrings(ExperienceLevels)
	case TechnicalPhysicalProfile:
		return toStrings(PhysicalProfiles)
	case TechnicalSpeedImportance, TechnicalAerialImportance:
		return toStrings(Importances)
	case ContractsReleaseClausePolicy:
		return toStrings(ReleaseClausePolicies)
	case ContractsImageRightsPolicy:
		return toStrings(ImageRightsPolicies)
	case StrategySeasonObjective:
		return toStrings(SeasonObjectives)
	case StrategyTransferPhilosophy:
		return toStrings(TransferPhilosophies)
	case StrategyRiskAppetite:
		return toStrings(RiskAppetites)
	case StrategyProjectTimeline:
		return toStrings(ProjectTimelines)
	default:
		return nil
	}
}

// enumMember reports whether v has one of the enum types and, if so, whether
// it holds a listed value.
func enumMember(v any) (valid, isEnum bool) {
	switch e := v.(type) {
	case Tier:
		return slices.Contains(Tiers, e), true
	case AcademyLevel:
		return slices.Contains(AcademyLevels, e), true
	case InstallmentPreference:
		return slices.Contains(InstallmentPreferences, e), true
	case Style:
		return slices.Contains(Styles, e), true
	case BuildUp:
		return slices.Contains(BuildUps, e), true
	case PressingIntensity:
		return slices.Contains(PressingIntensities, e), true
	case WingPlay:
		return slices.Contains(WingPlays, e), true
	case Level:
		return slices.Contains(Levels, e), true
	case YouthPolicy:
		return slices.Contains(YouthPolicies, e), true
	case ExperienceLevel:
		return slices.Contains(ExperienceLevels, e), true
	case PhysicalProfile:
		return slices.Contains(PhysicalProfiles, e), true
	case Importance:
		return slices.Contains(Importances, e), true
	case ReleaseClausePolicy:
		return slices.Contains(ReleaseClausePolicies, e), true
	case ImageRightsPolicy:
		return slices.Contains(ImageRightsPolicies, e), true
	case SeasonObjective:
		return slices.Contains(SeasonObjectives, e), true
	case TransferPhilosophy:
		return slices.Contains(TransferPhilosophies, e), true
	case RiskAppetite:
		return slices.Contains(RiskAppetites, e), true
	case ProjectTimeline:
		return slices.Contains(ProjectTimelines, e), true
	default:
		return false, false
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
