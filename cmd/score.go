package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/candidate"
	"github.com/spigell/scout-profile/internal/fitscore"
	"github.com/spigell/scout-profile/internal/gate"
	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/provider"
	"github.com/spigell/scout-profile/internal/secrets"
	"github.com/spigell/scout-profile/internal/store"
)

type scoreView struct {
	ClubID      string                `json:"club_id"`
	Version     int                   `json:"version"`
	AsOf        string                `json:"as_of"`
	Gate        gate.Result           `json:"gate"`
	Assessments []fitscore.Assessment `json:"assessments"`
}

var scoreCmd = &cobra.Command{
	Use:   "score <club-id>",
	Short: "Score transfer candidates against a club profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l, config := setup()

		clubID, err := store.ParseClubID(args[0])
		if err != nil {
			l.Fatal("parsing club id", zap.Error(err))
		}

		now := candidate.Today(time.Now())
		if asOf, _ := cmd.Flags().GetString("as-of"); asOf != "" {
			d, err := candidate.ParseDate(asOf)
			if err != nil {
				l.Fatal("parsing --as-of", zap.Error(err))
			}
			now = d.Time
		}

		candidates, err := collectCandidates(ctx, cmd, config, l)
		if err != nil {
			l.Fatal("collecting candidates", zap.Error(err))
		}
		if len(candidates) == 0 {
			l.Fatal("no candidates given", zap.String("hint", "use --candidates, --player or --team"))
		}

		s, err := openStore(ctx, config.Store)
		if err != nil {
			l.Fatal("opening a store", zap.Error(err))
		}
		defer s.Close()

		l = logger.WithFields(l, logger.ClubFields(clubID.String(), s.Name())...)

		rec, err := store.LoadOrDefault(ctx, s, clubID, l)
		if err != nil {
			l.Fatal("loading the profile", zap.Error(err))
		}

		decision := gate.Check(rec.Profile)
		if !decision.Unlocked {
			l.Warn("fit scoring is locked, candidates are not assessed",
				zap.Strings("blocking_missing_fields", decision.BlockingMissingFields),
				zap.Strings("missing_required_fields", decision.MissingRequiredFields),
			)
		}

		assessments, err := fitscore.EvaluateAll(ctx, rec.Profile, candidates, now, config.Scoring.Concurrency)
		if err != nil {
			l.Fatal("scoring candidates", zap.Error(err))
		}

		for _, a := range assessments {
			logger.WithFields(l, logger.CandidateFields(a.Candidate.Label())...).Debug("candidate scored",
				zap.Int("score", a.Result.Score),
				zap.String("verdict", string(a.Result.Verdict)),
			)
		}

		l.Info("scored candidates", zap.Int("count", len(assessments)))
		view := scoreView{
			ClubID:      clubID.String(),
			Version:     rec.Version,
			AsOf:        now.Format(time.DateOnly),
			Gate:        decision,
			Assessments: assessments,
		}
		if err := printJSON(cmd.OutOrStdout(), view); err != nil {
			l.Fatal("printing the assessments", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("candidates", "c", "", "a JSON file with one candidate or a list of candidates")
	scoreCmd.Flags().StringSlice("player", nil, "player id to fetch from the data provider (repeatable)")
	scoreCmd.Flags().String("team", "", "team id whose squad is fetched from the data provider")
	scoreCmd.Flags().String("as-of", "", "evaluation date (YYYY-MM-DD), default is today")
}

// collectCandidates gathers candidates from the file and the data provider,
// in that order.
func collectCandidates(ctx context.Context, cmd *cobra.Command, config *Config, l *zap.Logger) ([]*candidate.Attributes, error) {
	var out []*candidate.Attributes

	if path, _ := cmd.Flags().GetString("candidates"); path != "" {
		loaded, err := candidate.LoadFile(path)
		if err != nil {
			return nil, err
		}
		l.Info("loaded candidates from file", zap.String("file", path), zap.Int("count", len(loaded)))
		out = append(out, loaded...)
	}

	players, _ := cmd.Flags().GetStringSlice("player")
	team, _ := cmd.Flags().GetString("team")
	if len(players) == 0 && team == "" {
		return out, nil
	}

	client, err := newProviderClient(config.Provider, l)
	if err != nil {
		return nil, err
	}

	for _, id := range players {
		p, err := client.GetPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching player %s: %w", id, err)
		}
		out = append(out, p)
	}

	if team != "" {
		squad, err := client.GetSquad(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("fetching squad of team %s: %w", team, err)
		}
		l.Info("fetched squad", zap.String("team", team), zap.Int("count", len(squad)))
		out = append(out, squad...)
	}

	return out, nil
}

func newProviderClient(cfg provider.Config, l *zap.Logger) (*provider.Client, error) {
	token, err := secrets.Optional(secrets.Source{
		Name: "provider api key",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set provider.api-key-file or SCOUT_PROVIDER_KEY_FILE)", err)
	}
	return provider.New(l, cfg, token)
}
