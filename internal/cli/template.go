package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipkit/internal/errors"
	"github.com/ariel-frischer/shipkit/internal/output"
	"github.com/ariel-frischer/shipkit/internal/prompt"
	"github.com/ariel-frischer/shipkit/internal/registry"
)

var templateDestFlag string

var templateCmd = &cobra.Command{
	Use:          "template [category] [template]",
	Short:        "Copy project instructions into .github/instructions.md",
	Long:         `Pick an instruction template from the built-in catalog and copy it into the destination project as .github/instructions.md. Category and template may be given as arguments; anything omitted is prompted interactively.`,
	Example: `  # Interactive category and template selection
  shipkit template

  # Copy the backend Node.js instructions without prompting
  shipkit template be node

  # Copy into another project
  shipkit template fe react --dest ../webapp`,
	GroupID:      GroupTemplates,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplate(cmd, args, prompt.NewTerminal())
	},
}

var templateListCmd = &cobra.Command{
	Use:          "list [category]",
	Short:        "List available templates",
	Long:         `List the template catalog. Without a category, every template is shown in category/template form; with a category, only that category's templates are listed.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateList(cmd, args)
	},
}

func init() {
	templateCmd.Flags().StringVar(&templateDestFlag, "dest", ".", "destination project root")
	templateCmd.AddCommand(templateListCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string, prompter prompt.Prompter) error {
	reg := registry.Default()

	categoryID, templateID, err := resolveTemplateArgs(reg, args, prompter)
	if err != nil {
		return err
	}

	dest, err := reg.Materialize(categoryID, templateID, templateDestFlag)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.WrapWithMessage(err, errors.Argument,
				fmt.Sprintf("unknown template %s/%s", categoryID, templateID),
				"Run 'shipkit template list' to see available templates")
		}
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Instructions written to %s", dest))
	return nil
}

// resolveTemplateArgs fills in whichever of the (category, template) pair
// was not supplied on the command line by prompting.
func resolveTemplateArgs(reg *registry.Registry, args []string, prompter prompt.Prompter) (string, string, error) {
	var categoryID string
	if len(args) >= 1 {
		categoryID = args[0]
	} else {
		options := reg.Categories()
		labels := make([]string, len(options))
		for i, id := range options {
			cat := reg.Category(id)
			labels[i] = fmt.Sprintf("%s (%s)", cat.Name, id)
		}
		idx, err := prompter.ChooseOne("Select a category", labels)
		if err != nil {
			return "", "", err
		}
		categoryID = options[idx]
	}

	if len(args) == 2 {
		return categoryID, args[1], nil
	}

	templateIDs, err := reg.Templates(categoryID)
	if err != nil {
		return "", "", errors.WrapWithMessage(err, errors.Argument,
			fmt.Sprintf("unknown category %q", categoryID),
			"Run 'shipkit template list' to see available categories")
	}
	labels := make([]string, len(templateIDs))
	for i, id := range templateIDs {
		entry := reg.Describe(categoryID, id)
		labels[i] = fmt.Sprintf("%s (%s)", entry.Name, id)
	}
	idx, err := prompter.ChooseOne("Select a template", labels)
	if err != nil {
		return "", "", err
	}
	return categoryID, templateIDs[idx], nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	reg := registry.Default()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, composite := range reg.AllTemplates() {
			fmt.Fprintln(out, composite)
		}
		return nil
	}

	ids, err := reg.Templates(args[0])
	if err != nil {
		return errors.WrapWithMessage(err, errors.Argument,
			fmt.Sprintf("unknown category %q", args[0]),
			"Run 'shipkit template list' to see available categories")
	}
	for _, id := range ids {
		entry := reg.Describe(args[0], id)
		fmt.Fprintf(out, "%-12s %s\n", id, entry.Description)
	}
	return nil
}
