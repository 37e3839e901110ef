package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/turing/internal/config"
	"github.com/san-kum/turing/internal/export"
	"github.com/san-kum/turing/internal/loader"
	"github.com/san-kum/turing/internal/logging"
	"github.com/san-kum/turing/internal/manual"
	"github.com/san-kum/turing/internal/metrics"
	"github.com/san-kum/turing/internal/storage"
	"github.com/san-kum/turing/internal/tm"
	"github.com/san-kum/turing/internal/trace"
	"github.com/san-kum/turing/internal/viz"
)

// Exit codes.
const (
	exitOK       = 0
	exitLoad     = 1
	exitOverflow = 2
	exitLimit    = 3
)

var (
	configFile string
	dataDir    string
	debug      bool
	logFile    string

	tapeSize   int
	maxSteps   int
	descFile   string
	presetName string
	word       string
	saveRun    bool
	colorMode  string
	themeName  string
	frameRate  int

	svgCell     int
	svgOut      string
	svgHeadPath bool

	settings *config.Config
	logger   = logging.NewNop()
	logClose io.Closer
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "turing: %v\n", err)
	}
	closeLog(os.Stderr)
	os.Exit(exitCode(err))
}

// closeLog closes the JSON log file, if one was opened, and reports a failed close to w.
func closeLog(w io.Writer) {
	if logClose == nil {
		return
	}
	if err := logClose.Close(); err != nil {
		fmt.Fprintf(w, "turing: close log file: %v\n", err)
	}
	logClose = nil
}

// exitCode maps a command error to the process status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case loader.IsLoadError(err):
		return exitLoad
	case errors.Is(err, tm.ErrTapeOverflow):
		return exitOverflow
	case errors.Is(err, tm.ErrStepLimit), errors.Is(err, context.Canceled):
		// both end with verdict loop
		return exitLimit
	}
	return exitLoad
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "turing",
		Short: "deterministic single-tape Turing machine simulator",
		Long: "Reads a machine description (stdin, -f file or --preset) and prints every\n" +
			"configuration from the start state to the verdict.\n\n" +
			"Run `turing manual` for the description format and trace layout.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runMachine,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for saved runs")
	pf.BoolVar(&debug, "debug", false, "log at debug level")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	pf.IntVarP(&tapeSize, "tape-size", "s", config.DefaultTapeSize, "tape size in cells")
	pf.IntVarP(&maxSteps, "max-steps", "n", 0, "step budget, 0 for unbounded")
	pf.StringVarP(&descFile, "file", "f", "", "read the description from a file instead of stdin")
	pf.StringVar(&presetName, "preset", "", "use a built-in machine (see `turing presets`)")
	pf.StringVar(&word, "word", "", "replace the description's input word")
	pf.StringVar(&colorMode, "color", config.ColorAuto, "color the trace: auto, always or never")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	rootCmd.MarkFlagsMutuallyExclusive("file", "preset")

	rootCmd.Flags().BoolVar(&saveRun, "save", false, "save the run under the data directory")

	manualCmd := &cobra.Command{
		Use:   "manual",
		Short: "show the full manual",
		Args:  cobra.NoArgs,
		RunE:  showManual,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in machines",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "print the normalised description",
		Args:  cobra.NoArgs,
		RunE:  dumpDescription,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [word...]",
		Short: "run several words concurrently and print one verdict per word",
		RunE:  runBatch,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the machine interactively",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "steps per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run's metadata and trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot head position over a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's steps as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a saved run as a space-time diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgCell, "cell", 12, "cell size in pixels")
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&svgHeadPath, "head-path", false, "draw the head position path instead of the tape")

	rootCmd.AddCommand(manualCmd, presetsCmd, dumpCmd, batchCmd, liveCmd, listCmd, showCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd)
	return rootCmd
}

// setup loads the config file, applies changed flags over it and builds the
// logger. Flags win over the file only when set explicitly.
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tape-size") {
		cfg.TapeSize = tapeSize
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("color") {
		cfg.Color = colorMode
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("save") {
		cfg.Save = saveRun
	}
	if flags.Changed("fps") {
		cfg.Live.FPS = frameRate
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !viz.HasTheme(cfg.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(viz.ThemeNames(), ", "))
	}
	settings = cfg
	viz.SetTheme(cfg.Theme)

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	var jsonOut io.Writer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		jsonOut, logClose = f, f
	}
	logger = logging.New(level, jsonOut)
	logger.Debug("configuration loaded", "config", configFile, "tape_size", cfg.TapeSize, "max_steps", cfg.MaxSteps)
	return nil
}

// loadDescription reads the machine from --preset, -f or stdin, in that
// order, and applies --word.
func loadDescription(cmd *cobra.Command) (*loader.Description, string, error) {
	var (
		d    *loader.Description
		name string
		err  error
	)
	switch {
	case presetName != "":
		p, ok := config.GetPreset(presetName)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		name = presetName
		d, err = p.Load()
	case descFile != "":
		f, openErr := os.Open(descFile)
		if openErr != nil {
			return nil, "", openErr
		}
		defer f.Close()
		name = strings.TrimSuffix(filepath.Base(descFile), filepath.Ext(descFile))
		d, err = loader.Parse(f)
		if err != nil {
			err = fmt.Errorf("%s: %w", descFile, err)
		}
	default:
		name = "stdin"
		d, err = loader.Parse(cmd.InOrStdin())
	}
	if err != nil {
		return nil, "", err
	}

	if cmd.Flags().Changed("word") {
		if d, err = d.WithWord(word); err != nil {
			return nil, "", err
		}
	}
	logger.Debug("description loaded", "source", name, "start", d.Start, "transitions", d.Table.Len(), "word", d.Word)
	return d, name, nil
}

// useColor resolves the color mode against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func runMachine(cmd *cobra.Command, args []string) error {
	d, name, err := loadDescription(cmd)
	if err != nil {
		return err
	}
	m, err := d.Machine(settings.Machine())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	painter := viz.NewPainter(out, viz.CurrentTheme, useColor(settings.Color, out))
	tracer := trace.NewTracer(out, painter)
	m.AddObserver(tracer)
	for _, mt := range metrics.Defaults() {
		m.AddMetric(mt)
	}
	var rec *storage.Recorder
	if settings.Save {
		rec = storage.NewRecorder()
		m.AddObserver(rec)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	start := time.Now()
	res, runErr := m.Run(ctx)
	if err := tracer.Err(); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	logger.Info("run finished",
		"machine", name,
		"verdict", res.Verdict.String(),
		"steps", res.Steps,
		"lines", tracer.Lines(),
		"elapsed", time.Since(start),
	)

	if rec != nil {
		st := storage.New(settings.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.Metadata(name, d.Start, d.Word, d.Table.Len(), settings.Machine(), res, runErr)
		runID, err := st.Save(meta, rec.Steps())
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "run id: %s\n", runID)
	}

	return runErr
}

func showManual(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	width := 80
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	text, err := manual.Render(width, useColor(settings.Color, out))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWORDS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Words), p.Summary)
	}
	return w.Flush()
}

func dumpDescription(cmd *cobra.Command, args []string) error {
	d, _, err := loadDescription(cmd)
	if err != nil {
		return err
	}
	return loader.Write(cmd.OutOrStdout(), d)
}

func runBatch(cmd *cobra.Command, args []string) error {
	d, name, err := loadDescription(cmd)
	if err != nil {
		return err
	}
	words := args
	if len(words) == 0 && presetName != "" {
		p, _ := config.GetPreset(presetName)
		words = p.Words
	}
	if len(words) == 0 {
		return errors.New("batch needs at least one word")
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	results := tm.RunBatch(ctx, d.Table, d.Start, words, settings.Machine(), metrics.Defaults)
	logger.Info("batch finished", "machine", name, "words", len(words))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tVERDICT\tSTEPS\tMAX HEAD\tERROR")
	for _, r := range results {
		verdict, steps, maxHead, msg := "-", 0, 0.0, ""
		if r.Result != nil {
			verdict, steps, maxHead = r.Result.Verdict.String(), r.Result.Steps, r.Result.Metrics["max_head"]
		}
		if r.Err != nil {
			msg = r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%s\n", displayWord(r.Word), verdict, steps, maxHead, msg)
	}
	return w.Flush()
}

func displayWord(w string) string {
	if w == "" {
		return "(empty)"
	}
	return w
}

func runLive(cmd *cobra.Command, args []string) error {
	d, name, err := loadDescription(cmd)
	if err != nil {
		return err
	}
	m, err := d.Machine(settings.Machine())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	model := viz.NewLiveModel(m, name, d.Word, settings.Live.FPS, settings.MaxSteps)
	final, err := viz.RunLive(ctx, model)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debug("live view closed", "status", final.Status(), "steps", m.Steps())
	return nil
}

func openStore() *storage.Store {
	return storage.New(settings.DataDir)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMACHINE\tTIME\tWORD\tVERDICT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			displayWord(run.Word),
			run.Verdict,
			run.Steps,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "machine: %s (start Q%d, %d transitions)\n", meta.Name, meta.Start, meta.Transitions)
	fmt.Fprintf(out, "word: %s\n", displayWord(meta.Word))
	fmt.Fprintf(out, "verdict: %s after %d steps\n", meta.Verdict, meta.Steps)
	if meta.Error != "" {
		fmt.Fprintf(out, "error: %s\n", meta.Error)
	}
	if len(meta.Metrics) > 0 {
		fmt.Fprintln(out, "\nmetrics:")
		for _, k := range sortedKeys(meta.Metrics) {
			fmt.Fprintf(out, "  %s: %.0f\n", k, meta.Metrics[k])
		}
	}
	fmt.Fprintln(out)
	for _, s := range steps {
		fmt.Fprintln(out, s.Line())
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}
	if len(steps) < 2 {
		return fmt.Errorf("no data to plot")
	}

	heads := make([]int, len(steps))
	for i, s := range steps {
		heads[i] = s.Head
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n\n%s\n", meta.ID,
		viz.HeadPlot(heads, 80, 10, "head position vs step"))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, steps)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	steps, err := openStore().LoadSteps(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(cmd.OutOrStdout(), steps)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	steps, err := openStore().LoadSteps(args[0])
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("run %s has no recorded steps", args[0])
	}

	rows := make([]string, len(steps))
	heads := make([]int, len(steps))
	for i, s := range steps {
		rows[i], heads[i] = s.Tape, s.Head
	}
	var svg string
	if svgHeadPath {
		svg = export.HeadPathSVG(heads, 640, 480, string(viz.CurrentTheme.Accept))
	} else {
		svg = export.SpaceTimeSVG(rows, heads, svgCell)
	}

	if svgOut == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", "path", svgOut, "rows", len(rows))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
