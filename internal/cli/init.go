package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/admonish/internal/logging"
	"github.com/yaklabco/admonish/pkg/admonition"
	"github.com/yaklabco/admonish/pkg/config"
	"github.com/yaklabco/admonish/pkg/fsutil"
)

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an admonish configuration file",
		Long: `Create a .admonish.yml configuration file in the current directory.

Examples:
  admonish init                      Create a minimal .admonish.yml
  admonish init --full               List the built-in alert types too
  admonish init --format json        Create .admonish.json instead
  admonish init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "include every built-in alert type")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default: .admonish.yml or .admonish.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: format %q must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".admonish.yml"
		if flags.format == "json" {
			outputPath = ".admonish.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Types:  builtinTypes(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'admonish markers' to see the resolved marker table")

	return nil
}

func builtinTypes() []config.TypeInfo {
	defaults := admonition.DefaultConfig()
	types := make([]config.TypeInfo, 0, len(defaults.Types))
	for _, marker := range defaults.Markers() {
		alert := defaults.Types[marker]
		types = append(types, config.TypeInfo{
			Name:     strings.ToUpper(admonition.TypeName(marker)),
			Title:    alert.Title,
			CSSClass: alert.CSSClass,
		})
	}
	return types
}
