package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/weeklyreport/internal/clipboard"
	"github.com/bryan-cox/weeklyreport/internal/config"
	"github.com/bryan-cox/weeklyreport/internal/git"
	"github.com/bryan-cox/weeklyreport/internal/model"
	"github.com/bryan-cox/weeklyreport/internal/prompt"
	"github.com/bryan-cox/weeklyreport/internal/render"
	"github.com/bryan-cox/weeklyreport/internal/report"
	"github.com/bryan-cox/weeklyreport/internal/taskfile"
	"github.com/bryan-cox/weeklyreport/internal/tracker"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	repoPath      string
	configPath    string
	tasksPath     string
	author        string
	weekStart     string
	weekEnd       string
	blockers      []string
	inProgress    []string
	noTaskFile    bool
	noInteractive bool
	verbose       bool

	outputPath   string
	printHTML    bool
	copyHTML     bool
	exportFormat string

	logLevel = new(slog.LevelVar)

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "weeklyreport",
		Short: "Generate a weekly status report from a task file or git history.",
		Long: `WeeklyReport builds a weekly status report from a tasks.txt file or, when none exists,
from your git commits for the week. The report can be saved as HTML, SVG slides, plain text or YAML/JSON.
Running weeklyreport without a subcommand generates the HTML report.`,
		PersistentPreRun: setupLogging,
		Run:              runHTMLCommand,
	}

	// htmlCmd represents the html command
	htmlCmd = &cobra.Command{
		Use:   "html",
		Short: "Generate the HTML report.",
		Long:  `Generates a standalone HTML report for the week and saves it to the output directory, or prints it with --print. --copy also places it on the clipboard.`,
		Run:   runHTMLCommand,
	}

	// slidesCmd represents the slides command
	slidesCmd = &cobra.Command{
		Use:   "slides",
		Short: "Generate SVG presentation slides.",
		Long:  `Generates a summary slide plus one SVG slide per task, in section order.`,
		Run:   runSlidesCommand,
	}

	// textCmd represents the text command
	textCmd = &cobra.Command{
		Use:   "text",
		Short: "Print the report as plain text.",
		Long:  `Prints a chat-friendly plain-text report to standard output.`,
		Run:   runTextCommand,
	}

	// exportCmd represents the export command
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export the report as YAML or JSON.",
		Long:  `Serializes the generated report, including commit and PR provenance, as YAML or JSON.`,
		Run:   runExportCommand,
	}

	// initCmd represents the init command
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a tasks.txt template and default configuration.",
		Long:  `Writes a tasks.txt template and .weeklyreport/config.yaml into the repository unless they already exist.`,
		Run:   runInitCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Errors from commands are handled by slog, so we just exit.
		os.Exit(1)
	}
}

func init() {
	// Add persistent flags to the root command (available to all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&repoPath, "repo", "r", ".", "Path to the git repository.")
	pf.StringVar(&configPath, "config", "", "Path to a config file (default: .weeklyreport/config.yaml found from --repo upwards).")
	pf.StringVar(&tasksPath, "tasks", "", "Path to the task file (default: tasks_file from config, relative to --repo).")
	pf.StringVar(&author, "author", "", "Report author; also filters git history (default: git user.name).")
	pf.StringVar(&weekStart, "week-start", "", "First day of the week (YYYY-MM-DD).")
	pf.StringVar(&weekEnd, "week-end", "", "Last day of the week, inclusive (YYYY-MM-DD).")
	pf.StringArrayVarP(&blockers, "blocker", "b", nil, "Blocker to add to the report (repeatable).")
	pf.StringArrayVarP(&inProgress, "in-progress", "p", nil, "In-progress item to add to the report (repeatable).")
	pf.BoolVar(&noTaskFile, "no-task-file", false, "Ignore the task file and use git history.")
	pf.BoolVar(&noInteractive, "no-interactive", false, "Do not prompt for in-progress items or blockers.")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")

	// Add local flags to the 'html' command and the root default action
	for _, cmd := range []*cobra.Command{rootCmd, htmlCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output HTML file (default: <output_dir>/status_report_YYYYMMDD.html).")
		cmd.Flags().BoolVar(&printHTML, "print", false, "Print the HTML to standard output instead of saving it.")
		cmd.Flags().BoolVar(&copyHTML, "copy", false, "Copy the HTML to the clipboard.")
	}

	// Add local flags to the 'slides' command
	slidesCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory (default: <output_dir>/slides_YYYYMMDD).")

	// Add local flags to the 'export' command
	exportCmd.Flags().StringVar(&exportFormat, "format", formatYAML, "Export format: yaml or json.")
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: standard output).")

	// Add subcommands to the root command
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(slidesCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(initCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	Execute()
}

func setupLogging(cmd *cobra.Command, args []string) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// --- Command Execution Logic ---

func runHTMLCommand(cmd *cobra.Command, args []string) {
	r, cfg := mustGenerate(cmd)
	page := render.Page{Tickets: tracker.NewLinker(cfg.TrackerURL)}
	content := page.HTML(r)

	if copyHTML {
		if err := clipboard.CopyHTML(content); err != nil {
			slog.Warn("could not copy report to clipboard", "error", err)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Report copied to clipboard.")
		}
	}

	// --print replaces saving so stdout holds only the document.
	if printHTML {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return
	}

	path := outputPath
	if path == "" {
		path = render.DefaultHTMLPath(cfg.OutputDir, r)
	}
	absPath, err := page.Save(r, path)
	if err != nil {
		slog.Error("failed to save HTML report", "error", err, "path", path)
		os.Exit(1)
	}

	printSummary(cmd.OutOrStdout(), r, absPath)
}

func runSlidesCommand(cmd *cobra.Command, args []string) {
	r, cfg := mustGenerate(cmd)

	dir := outputPath
	if dir == "" {
		dir = render.DefaultSlidesDir(cfg.OutputDir, r)
	}

	deck := render.NewDeck()
	deck.Options = render.SlideOptions{
		CharsPerLine: cfg.Slides.CharsPerLine,
		MaxLines:     cfg.Slides.MaxLines,
	}
	paths, err := deck.SaveSlides(r, dir)
	if err != nil {
		slog.Error("failed to save slides", "error", err, "dir", dir)
		os.Exit(1)
	}

	printSlidesSummary(cmd.OutOrStdout(), r, dir, paths)
}

func runTextCommand(cmd *cobra.Command, args []string) {
	r, _ := mustGenerate(cmd)
	report.PrintText(cmd.OutOrStdout(), r)
}

func runExportCommand(cmd *cobra.Command, args []string) {
	if err := validateFormat(exportFormat); err != nil {
		slog.Error("invalid export format", "error", err, "format", exportFormat)
		os.Exit(1)
	}

	r, _ := mustGenerate(cmd)
	data, err := marshalReport(exportFormat, r)
	if err != nil {
		slog.Error("failed to serialize report", "error", err, "format", exportFormat)
		os.Exit(1)
	}

	if outputPath == "" {
		cmd.OutOrStdout().Write(data)
		return
	}
	if err := render.WriteFile(outputPath, string(data)); err != nil {
		slog.Error("failed to write export", "error", err, "path", outputPath)
		os.Exit(1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report exported to %s\n", outputPath)
}

func runInitCommand(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path := resolveTasksPath(cfg)
	if taskfile.Exists(path) {
		fmt.Fprintf(out, "Task file already exists: %s\n", path)
	} else if err := taskfile.WriteTemplate(path); err != nil {
		slog.Error("failed to write task file", "error", err, "path", path)
		os.Exit(1)
	} else {
		fmt.Fprintf(out, "Created task file: %s\n", path)
	}

	if dir, err := config.FindConfigDir(repoPath); err == nil {
		fmt.Fprintf(out, "Config already exists: %s\n", filepath.Join(dir, config.ConfigFileName))
		return
	}
	saved, err := config.SaveDefault(repoPath)
	if err != nil {
		slog.Error("failed to write config", "error", err, "repo", repoPath)
		os.Exit(1)
	}
	fmt.Fprintf(out, "Created config: %s\n", saved)
}

// --- Helper Functions ---

// mustGenerate builds the report from flags and config, exiting on failure.
func mustGenerate(cmd *cobra.Command) (*model.Report, *config.Config) {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", configPath)
		os.Exit(1)
	}

	opts := report.Options{
		Author:     author,
		InProgress: inProgress,
		Blockers:   blockers,
		NoTaskFile: noTaskFile || !cfg.UsesTaskFile(),
	}
	if opts.Author == "" {
		opts.Author = cfg.Author
	}
	opts.WeekStart, opts.WeekEnd = parseWeek(weekStart, weekEnd)

	if !noInteractive && cfg.IsInteractive() && prompt.IsInteractive(os.Stdin) {
		if err := collectInteractive(cmd, &opts); err != nil {
			slog.Error("interactive input failed", "error", err)
			os.Exit(1)
		}
	}

	gen := report.NewGenerator(git.NewRepo(repoPath), resolveTasksPath(cfg))
	r, err := gen.Generate(opts)
	if err != nil {
		slog.Error("failed to generate report", "error", err, "repo", repoPath)
		os.Exit(1)
	}
	return r, cfg
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(repoPath)
}

// resolveTasksPath returns --tasks as given, or the configured task file
// relative to the repository.
func resolveTasksPath(cfg *config.Config) string {
	if tasksPath != "" {
		return tasksPath
	}
	if filepath.IsAbs(cfg.TasksFile) {
		return cfg.TasksFile
	}
	return filepath.Join(repoPath, cfg.TasksFile)
}

// collectInteractive prompts for the lists not already given as flags.
func collectInteractive(cmd *cobra.Command, opts *report.Options) error {
	flags := cmd.Flags()
	if !flags.Changed("in-progress") {
		items, err := prompt.Collect(model.SectionInProgress, os.Stdin, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		opts.InProgress = items
	}
	if !flags.Changed("blocker") {
		items, err := prompt.Collect(model.SectionBlockers, os.Stdin, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		opts.Blockers = items
	}
	return nil
}

// parseWeek parses the --week-start/--week-end flags. The end day is
// inclusive. A missing or unparseable date falls back to the current week.
func parseWeek(startStr, endStr string) (time.Time, time.Time) {
	if startStr == "" && endStr == "" {
		return time.Time{}, time.Time{}
	}
	if startStr == "" || endStr == "" {
		slog.Warn("both --week-start and --week-end are needed, using current week",
			"week_start", startStr, "week_end", endStr)
		return time.Time{}, time.Time{}
	}

	start, err := time.ParseInLocation(time.DateOnly, startStr, time.Local)
	if err != nil {
		slog.Warn("could not parse week start, using current week", "week_start", startStr, "error", err)
		return time.Time{}, time.Time{}
	}
	end, err := time.ParseInLocation(time.DateOnly, endStr, time.Local)
	if err != nil {
		slog.Warn("could not parse week end, using current week", "week_end", endStr, "error", err)
		return time.Time{}, time.Time{}
	}

	y, m, d := end.Date()
	return start, time.Date(y, m, d, 23, 59, 59, 0, time.Local)
}
