package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/admonish/internal/logging"
	"github.com/yaklabco/admonish/internal/ui/pretty"
	"github.com/yaklabco/admonish/pkg/config"
	"github.com/yaklabco/admonish/pkg/convert"
	"github.com/yaklabco/admonish/pkg/fsutil"
	"github.com/yaklabco/admonish/pkg/runner"
)

// stdinPath is the argument that makes render read standard input.
const stdinPath = "-"

type renderFlags struct {
	outDir      string
	flavor      string
	standalone  bool
	detectLang  bool
	allowNested bool
	safe        bool
	watch       bool
	jobs        int
	ignore      []string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write <name>.html files under this directory")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "wrap output in a complete HTML page")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "guess the language of unlabeled code blocks")
	cmd.Flags().BoolVar(&flags.allowNested, "allow-nested", false, "recognize alerts inside other blockquotes")
	cmd.Flags().BoolVar(&flags.safe, "safe", false, "escape raw HTML from the document")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render files when they change")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML, turning alert blockquotes into admonitions.

With a single file and no --out-dir the HTML is written to stdout; "-"
reads the document from stdin. Otherwise every .md and .markdown file under
the given paths is rendered to <out-dir>/<relative path>.html.

Examples:
  admonish render README.md                  # HTML on stdout
  cat notes.md | admonish render -           # Render stdin
  admonish render docs -o site               # Render a tree
  admonish render docs -o site --standalone  # Full HTML pages
  admonish render docs -o site --watch       # Re-render on change`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(cmd, renderCLIConfig(cmd, flags))
	if err != nil {
		return err
	}
	cfg.Ignore = append(slices.Clone(cfg.Ignore), flags.ignore...)

	conv, err := convert.New(convert.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldStandalone, config.BoolValue(cfg.Render.Standalone, false),
		logging.FieldWatch, cfg.Watch,
	)

	if slices.Equal(args, []string{stdinPath}) {
		if cfg.Watch {
			return fmt.Errorf("%w: --watch cannot be used with stdin", ErrUsage)
		}
		return renderStdin(ctx, cmd, conv)
	}

	if cfg.OutDir == "" {
		single, err := singleFile(workDir, args)
		if err != nil {
			return err
		}
		if single == "" {
			return fmt.Errorf("%w: --out-dir is required unless a single file is rendered", ErrUsage)
		}
		return renderToStdout(ctx, cmd, conv, single, cfg.Watch)
	}

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutDir:       cfg.OutDir,
	}

	logger.Debug("starting render",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldOutput, opts.OutDir,
	)

	renderRunner := runner.New(conv)

	// The watcher starts before the initial render so edits made while it
	// runs are queued rather than missed.
	var watcher *runner.Watcher
	if cfg.Watch {
		watcher, err = renderRunner.NewWatcher(ctx, opts)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	result, err := renderRunner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("render run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	reporter := newReporter(cmd, workDir)
	for _, file := range result.Files {
		fmt.Fprintln(out, reporter.Outcome(file))
	}
	fmt.Fprintln(out, reporter.Summary(result.Stats))

	logger.Debug("render finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldAdmonitions, result.Stats.Admonitions,
		logging.FieldDuration, result.Stats.Duration,
	)

	if watcher != nil {
		ctx = logging.WithInteractive(ctx)
		logging.FromContext(ctx).Info("watching for changes", logging.FieldPaths, opts.Paths)
		return watcher.Run(ctx, func(outcome runner.FileOutcome) {
			fmt.Fprintln(out, reporter.Outcome(outcome))
		})
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}
	return nil
}

// renderCLIConfig keeps only the flags the user set, so unset flags do not
// override configuration files.
func renderCLIConfig(cmd *cobra.Command, flags *renderFlags) *config.Config {
	cliCfg := &config.Config{
		OutDir: flags.outDir,
		Jobs:   flags.jobs,
		Watch:  flags.watch,
	}

	changed := cmd.Flags().Changed
	if changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("standalone") {
		cliCfg.Render.Standalone = config.Bool(flags.standalone)
	}
	if changed("detect-lang") {
		cliCfg.Render.DetectLanguage = config.Bool(flags.detectLang)
	}
	if changed("safe") {
		cliCfg.Render.RawHTML = config.Bool(!flags.safe)
	}
	if changed("allow-nested") {
		cliCfg.Admonitions.AllowNested = config.Bool(flags.allowNested)
	}

	return cliCfg
}

// singleFile returns the absolute path when args name exactly one regular
// file, and "" otherwise.
func singleFile(workDir string, args []string) (string, error) {
	if len(args) != 1 {
		return "", nil
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", args[0], err)
	}
	if info.IsDir() {
		return "", nil
	}
	return path, nil
}

func renderStdin(ctx context.Context, cmd *cobra.Command, conv *convert.Converter) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := conv.Convert(ctx, "stdin", content)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(result.HTML)
	return err
}

func renderToStdout(ctx context.Context, cmd *cobra.Command, conv *convert.Converter, path string, watch bool) error {
	var watcher *runner.Watcher
	if watch {
		var err error
		watcher, err = runner.New(conv).NewWatcher(ctx, runner.Options{Paths: []string{path}, WorkingDir: filepath.Dir(path)})
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	content, _, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, path, content)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := out.Write(result.HTML); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if watcher == nil {
		return nil
	}

	ctx = logging.WithInteractive(ctx)
	logging.FromContext(ctx).Info("watching for changes", logging.FieldPath, path)

	reporter := newReporter(cmd, filepath.Dir(path))
	errOut := cmd.ErrOrStderr()
	return watcher.Run(ctx,
		func(outcome runner.FileOutcome) {
			if outcome.Error != nil {
				fmt.Fprintln(errOut, reporter.Outcome(outcome))
				return
			}
			_, _ = out.Write(outcome.HTML())
		})
}

func newReporter(cmd *cobra.Command, workDir string) *pretty.Reporter {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
	return pretty.NewReporter(styles, workDir)
}
