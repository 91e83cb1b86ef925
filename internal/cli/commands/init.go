package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	intconfig "github.com/leapstack-labs/examsched/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an examsched.yaml configuration",
		Long: `Create an examsched.yaml with the default settings and a .gitignore for
the state directory.

Use --example to also write a small sample schedule (locations.csv,
courses.csv and time.csv) to try the other commands on.`,
		Example: `  # Initialize in current directory
  examsched init

  # Initialize a new directory with sample data
  examsched init winter2024 --example

  # Overwrite an existing config
  examsched init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(cmd, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Also write a sample schedule")

	return cmd
}

func runInit(cmd *cobra.Command, dir, template string, force bool) error {
	r := NewCommandContextWithoutStore(cmd).Renderer

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, err := listTemplateFiles(template)
	if err != nil {
		return err
	}
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("examsched project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if template == "minimal" {
		r.Println("  1. Put locations.csv, courses.csv and time.csv next to examsched.yaml")
		r.Println("  2. Run 'examsched seed' to load them")
	} else {
		r.Println("  1. Run 'examsched seed' to load the sample schedule")
		r.Println("  2. Run 'examsched exam CS101' to look up an exam")
	}
	return nil
}
