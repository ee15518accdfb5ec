package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Suggest a matching import template",
	Long: `Analyses a file and scores its detected columns against every saved
import template, reporting the best match above the confidence floor.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output the suggestion as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if parseService == nil {
		return errors.New("parse service not configured")
	}
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := cmd.Context()
	outcome, err := readOutcome(ctx, args[0])
	if err != nil {
		return err
	}

	suggestion, err := templateService.Suggest(ctx, outcome.Fields)
	if err != nil {
		return fmt.Errorf("suggestion failed: %w", err)
	}

	if suggestJSON {
		return outputJSON(cmd, suggestion)
	}

	if suggestion == nil {
		cmd.Println("No template matches this file.")
		return nil
	}

	tpl, err := templateService.Get(ctx, suggestion.TemplateID)
	if err != nil {
		return fmt.Errorf("loading suggested template: %w", err)
	}
	cmd.Printf("Best match: %s (%s) at %d%% confidence\n", tpl.Name, tpl.ID, suggestion.Confidence)
	return nil
}
