package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a club profile with default values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		l, config := setup()

		clubID := uuid.New()
		if raw, _ := cmd.Flags().GetString("club-id"); raw != "" {
			id, err := store.ParseClubID(raw)
			if err != nil {
				l.Fatal("parsing club id", zap.Error(err))
			}
			clubID = id
		}

		s, err := openStore(ctx, config.Store)
		if err != nil {
			l.Fatal("opening a store", zap.Error(err))
		}
		defer s.Close()

		l = logger.WithFields(l, logger.ClubFields(clubID.String(), s.Name())...)

		rec, err := store.Create(ctx, s, clubID)
		if err != nil {
			l.Fatal("creating a profile", zap.Error(err))
		}

		l.Info("profile created", zap.Int("version", rec.Version))
		if err := printJSON(cmd.OutOrStdout(), recordView(rec)); err != nil {
			l.Fatal("printing the profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("club-id", "", "club id (uuid) to create; a new one is generated when empty")
}

type profileView struct {
	ClubID    string `json:"club_id"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at,omitempty"`
	Profile   any    `json:"profile"`
}

func recordView(rec *store.Record) profileView {
	v := profileView{
		ClubID:  rec.ClubID.String(),
		Version: rec.Version,
		Profile: rec.Profile,
	}
	if !rec.UpdatedAt.IsZero() {
		v.UpdatedAt = rec.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func printJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
