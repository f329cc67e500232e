package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/logger"
	"github.com/spigell/scout-profile/internal/profile"
	"github.com/spigell/scout-profile/internal/store"
)

const (
	PromptDone  = "done"
	PromptClear = "(clear)"
	PromptTrue  = "true"
	PromptFalse = "false"
)

var editCmd = &cobra.Command{
	Use:   "edit <club-id>",
	Short: "Apply a partial update to a club profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l, config := setup()

		clubID, err := store.ParseClubID(args[0])
		if err != nil {
			l.Fatal("parsing club id", zap.Error(err))
		}

		patchFile, _ := cmd.Flags().GetString("patch")
		interactive, _ := cmd.Flags().GetBool("interactive")

		var patch *profile.Patch
		switch {
		case patchFile != "" && interactive:
			l.Fatal("--patch and --interactive are mutually exclusive")
		case patchFile != "":
			patch, err = readPatch(patchFile)
		case interactive:
			patch, err = interactivePatch()
		default:
			l.Fatal("nothing to apply", zap.String("hint", "pass --patch file.{json,yaml} or --interactive"))
		}
		if err != nil {
			l.Fatal("building a patch", zap.Error(err))
		}
		if patch.Empty() {
			l.Info("exiting", zap.String("reason", "patch changes nothing"))
			return
		}

		s, err := openStore(ctx, config.Store)
		if err != nil {
			l.Fatal("opening a store", zap.Error(err))
		}
		defer s.Close()

		l = logger.WithFields(l, logger.ClubFields(clubID.String(), s.Name())...)

		rec, err := store.NewEditor(s, l, config.Store.MaxRetries).Apply(ctx, clubID, patch)
		if err != nil {
			l.Fatal("applying the patch", zap.Error(err))
		}

		l.Info("profile updated", zap.Int("version", rec.Version))
		if err := printJSON(cmd.OutOrStdout(), recordView(rec)); err != nil {
			l.Fatal("printing the profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringP("patch", "p", "", "a patch document (.json, .yaml or .yml)")
	editCmd.Flags().BoolP("interactive", "i", false, "choose fields and values in a prompt")
}

// readPatch decodes a patch file, choosing the format by extension.
func readPatch(path string) (*profile.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patch file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return profile.DecodePatchYAML(data)
	case ".json", "":
		return profile.DecodePatch(data)
	default:
		return nil, fmt.Errorf("unsupported patch file extension %q", filepath.Ext(path))
	}
}

func interactivePatch() (*profile.Patch, error) {
	paths := make([]string, 0, profile.FieldCount()+1)
	paths = append(paths, PromptDone)
	for _, f := range profile.Fields() {
		paths = append(paths, f.Path())
	}

	values := make(map[profile.Field]any)
	for {
		fieldPrompt := promptui.Select{
			Label: "Choose a field and press ENTER",
			Items: paths,
			Size:  15,
			Searcher: func(input string, index int) bool {
				return strings.Contains(paths[index], strings.ToLower(strings.TrimSpace(input)))
			},
		}

		_, selected, err := fieldPrompt.Run()
		if err != nil {
			return nil, err
		}
		if selected == PromptDone {
			break
		}

		f, ok := profile.FieldByPath(selected)
		if !ok {
			return nil, fmt.Errorf("there is no such field %s", selected)
		}

		value, err := promptValue(f.Describe())
		if err != nil {
			return nil, err
		}
		values[f] = value
	}

	return profile.PatchFor(values)
}

// promptValue asks for a single value of the described field. A nil result
// clears a nullable field.
func promptValue(d profile.Descriptor) (any, error) {
	label := d.Path()

	switch d.Kind {
	case profile.KindEnum:
		items := profile.EnumValues(d.Field)
		if d.Nullable {
			items = append(items, PromptClear)
		}
		_, choice, err := (&promptui.Select{Label: label, Items: items}).Run()
		if err != nil || choice == PromptClear {
			return nil, err
		}
		return choice, nil
	case profile.KindBool:
		_, choice, err := (&promptui.Select{Label: label, Items: []string{PromptTrue, PromptFalse}}).Run()
		if err != nil {
			return nil, err
		}
		return choice == PromptTrue, nil
	case profile.KindNumber, profile.KindBudget:
		input, err := (&promptui.Prompt{Label: label, Validate: numberValidator(d.Nullable)}).Run()
		if err != nil {
			return nil, err
		}
		return parseNumber(input)
	case profile.KindList:
		input, err := (&promptui.Prompt{Label: label + " (comma separated)"}).Run()
		if err != nil {
			return nil, err
		}
		return splitList(input), nil
	default:
		input, err := (&promptui.Prompt{Label: label}).Run()
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		if input == "" && d.Nullable {
			return nil, nil
		}
		return input, nil
	}
}

func numberValidator(nullable bool) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			if nullable {
				return nil
			}
			return errors.New("a number is required")
		}
		_, err := parseNumber(input)
		return err
	}
}

// parseNumber returns nil for empty input.
func parseNumber(input string) (any, error) {
	input = strings.TrimSpace(strings.ReplaceAll(input, "_", ""))
	if input == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", input)
	}
	return v, nil
}

func splitList(input string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
