package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/completeness"
	"github.com/spigell/scout-profile/internal/gate"
	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/profile"
	"github.com/spigell/scout-profile/internal/store"
)

type statusView struct {
	ClubID       string              `json:"club_id"`
	Version      int                 `json:"version"`
	Completeness completeness.Report `json:"completeness"`
	Gate         gate.Result         `json:"gate"`
	Warnings     []string            `json:"warnings,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status <club-id>",
	Short: "Report profile completeness and whether fit scoring is unlocked",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l, config := setup()

		clubID, err := store.ParseClubID(args[0])
		if err != nil {
			l.Fatal("parsing club id", zap.Error(err))
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

		view := statusView{
			ClubID:       clubID.String(),
			Version:      rec.Version,
			Completeness: completeness.Evaluate(rec.Profile),
			Gate:         gate.Check(rec.Profile),
			Warnings:     profile.Warnings(rec.Profile),
		}

		l.Info("profile status",
			zap.Int("confidence_score", view.Completeness.ConfidenceScore),
			zap.Bool("fit_scoring_unlocked", view.Gate.Unlocked),
		)
		if err := printJSON(cmd.OutOrStdout(), view); err != nil {
			l.Fatal("printing the status", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
