package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/ai"
	"github.com/spigell/scout-profile/internal/ai/gemini"
	"github.com/spigell/scout-profile/internal/candidate"
	"github.com/spigell/scout-profile/internal/fitscore"
	"github.com/spigell/scout-profile/internal/gate"
	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/secrets"
	"github.com/spigell/scout-profile/internal/store"
)

type extractView struct {
	Candidate  *candidate.Attributes `json:"candidate"`
	ClubID     string                `json:"club_id,omitempty"`
	Assessment *fitscore.Result      `json:"assessment,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract candidate attributes from free-text scouting notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		l, config := setup()

		notesFile, _ := cmd.Flags().GetString("notes")
		notes, err := readNotes(notesFile, cmd.InOrStdin())
		if err != nil {
			l.Fatal("reading notes", zap.Error(err))
		}

		view := extractView{}
		currency := ""

		var rec *store.Record
		if raw, _ := cmd.Flags().GetString("club-id"); raw != "" {
			clubID, err := store.ParseClubID(raw)
			if err != nil {
				l.Fatal("parsing club id", zap.Error(err))
			}

			s, err := openStore(ctx, config.Store)
			if err != nil {
				l.Fatal("opening a store", zap.Error(err))
			}
			defer s.Close()

			l = logger.WithFields(l, logger.ClubFields(clubID.String(), s.Name())...)
			rec, err = store.LoadOrDefault(ctx, s, clubID, l)
			if err != nil {
				l.Fatal("loading the profile", zap.Error(err))
			}
			view.ClubID = clubID.String()
			currency = rec.Profile.Finances.Currency
		}

		extractor, err := newExtractor(ctx, config.AI, currency, l)
		if err != nil {
			l.Fatal("building an extractor", zap.Error(err), zap.String("hint", "set ai.enabled and ai.gemini.api-key-file or GEMINI_API_KEY_FILE"))
		}

		view.Candidate, err = extractor.Extract(ctx, notes)
		if err != nil {
			l.Fatal("extracting candidate attributes", zap.Error(err))
		}

		if rec != nil {
			result := fitscore.Evaluate(rec.Profile, gate.Check(rec.Profile), view.Candidate, candidate.Today(time.Now()))
			view.Assessment = &result
		}

		if err := printJSON(cmd.OutOrStdout(), view); err != nil {
			l.Fatal("printing the candidate", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("notes", "n", "-", "a file with scouting notes, - reads stdin")
	extractCmd.Flags().String("club-id", "", "club whose currency is used and whose profile scores the result")
}

func readNotes(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return string(data), nil
}

func newExtractor(ctx context.Context, cfg ai.Config, currency string, l *zap.Logger) (ai.Extractor, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("ai extraction is disabled")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, l, apiKey, cfg.Gemini)
	if err != nil {
		return nil, err
	}

	return gemini.NewExtractor(generator, logger.WithAIFields(l, ai.ProviderGemini, generator.Model()), currency, cfg.Gemini.MaxLogLength), nil
}
