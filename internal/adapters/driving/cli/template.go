package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

var (
	templateListJSON bool
	templateShowJSON bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage import templates",
	Long:  `List, view, rename, duplicate, or delete saved import templates.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show [template-id]",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename [template-id] [new-name]",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateRename,
}

var templateDuplicateCmd = &cobra.Command{
	Use:   "duplicate [template-id]",
	Short: "Duplicate a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDuplicate,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [template-id]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

func init() {
	templateListCmd.Flags().BoolVar(&templateListJSON, "json", false, "output templates as JSON")
	templateShowCmd.Flags().BoolVar(&templateShowJSON, "json", false, "output the template as JSON")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateDuplicateCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

func requireTemplateService() error {
	if templateService == nil {
		return errors.New("template service not configured")
	}
	return nil
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if err := requireTemplateService(); err != nil {
		return err
	}

	templates, err := templateService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if templateListJSON {
		return outputJSON(cmd, templates)
	}

	if len(templates) == 0 {
		cmd.Println("No templates saved.")
		return nil
	}
	for _, tpl := range templates {
		cmd.Printf("  %s  %-30s %d mappings, %d combinations\n",
			tpl.ID, tpl.Name, len(tpl.FieldMappings), len(tpl.Combinations))
	}
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	if err := requireTemplateService(); err != nil {
		return err
	}

	tpl, err := templateService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}

	if templateShowJSON {
		return outputJSON(cmd, tpl)
	}

	outputTemplate(cmd, tpl)
	return nil
}

func runTemplateRename(cmd *cobra.Command, args []string) error {
	if err := requireTemplateService(); err != nil {
		return err
	}

	name := args[1]
	tpl, err := templateService.Update(cmd.Context(), args[0], domain.TemplateUpdate{Name: &name})
	if err != nil {
		return fmt.Errorf("renaming template: %w", err)
	}
	cmd.Printf("Renamed template %s to %q\n", tpl.ID, tpl.Name)
	return nil
}

func runTemplateDuplicate(cmd *cobra.Command, args []string) error {
	if err := requireTemplateService(); err != nil {
		return err
	}

	dup, err := templateService.Duplicate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("duplicating template: %w", err)
	}
	cmd.Printf("Created %q (%s)\n", dup.Name, dup.ID)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	if err := requireTemplateService(); err != nil {
		return err
	}

	if err := templateService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	cmd.Printf("Deleted template %s\n", args[0])
	return nil
}

func outputTemplate(cmd *cobra.Command, tpl *domain.ImportTemplate) {
	cmd.Printf("%s (%s)\n", tpl.Name, tpl.ID)
	if tpl.AccountID != "" {
		cmd.Printf("  Account: %s\n", tpl.AccountID)
	}
	cmd.Printf("  Created: %s\n", tpl.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("  Updated: %s\n", tpl.UpdatedAt.Format("2006-01-02 15:04"))

	if len(tpl.FieldMappings) > 0 {
		cmd.Println()
		cmd.Println("Mappings:")
		for _, m := range tpl.FieldMappings {
			line := fmt.Sprintf("  %-24s -> %s", m.SourceField, m.TargetField)
			if m.DataType != "" {
				line += fmt.Sprintf(" (%s)", m.DataType)
			}
			if m.Required {
				line += " required"
			}
			cmd.Println(line)
		}
	}

	if len(tpl.Combinations) > 0 {
		cmd.Println()
		cmd.Println("Combinations:")
		for _, c := range tpl.Combinations {
			cmd.Printf("  %-24s <- %s\n", c.TargetField, c.Preview())
		}
	}
}
