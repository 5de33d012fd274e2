package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/server"
	"github.com/san-kum/orrery/internal/store"
	"github.com/san-kum/orrery/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	speed      float64
	fps        int
	span       float64
	aspect     float64
	noSun      bool
	noOrbits   bool
	status     bool
	debugLog   string
	// root, run
	metricsAddr string
	// tui
	theme string
	// plot
	periods float64
	samples int
	// export-svg, export-trail
	at           float64
	size         int
	trailSamples int
	// snapshot
	width  int
	height int
	// ephemeris
	dt     float64
	steps  int
	format string
	// serve
	addr         string
	allowOrigins []string
	accessLog    bool
	rateLimit    float64
	burst        int
	// init-config
	force bool
)

// main builds the orrery CLI and exits with status 1 if a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "animated ascii solar system",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrrery(cmd, nil)
		},
	}
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "time multiplier")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&span, "span", config.DefaultSpan, "world units from center to the nearer screen edge")
	pf.Float64Var(&aspect, "aspect", config.DefaultFontAspect, "character width divided by height")
	pf.BoolVar(&noSun, "no-sun", false, "hide the sun")
	pf.BoolVar(&noOrbits, "no-orbits", false, "hide orbit rings")
	pf.BoolVar(&status, "status", false, "show a status line")
	pf.StringVar(&debugLog, "debug-log", "", "write diagnostics to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate the solar system",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := orrery.Animated
			return runOrrery(cmd, &mode)
		},
	}
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	staticCmd := &cobra.Command{
		Use:   "static",
		Short: "draw the initial positions and wait for a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := orrery.Static
			return runOrrery(cmd, &mode)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive view with legend panel",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list the bodies of the current configuration",
		RunE:  listCatalog,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [body]",
		Short: "plot a body's coordinates over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotBody,
	}
	plotCmd.Flags().Float64Var(&periods, "periods", 2, "number of orbital periods")
	plotCmd.Flags().IntVar(&samples, "samples", 120, "number of samples")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "export a snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&at, "at", 0, "simulated time of the snapshot")
	exportSVGCmd.Flags().IntVar(&size, "size", 600, "image size in pixels")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "print one uncolored frame as plain text",
		RunE:  printSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&at, "at", 0, "simulated time of the snapshot")
	snapshotCmd.Flags().IntVar(&width, "width", 80, "frame width in columns")
	snapshotCmd.Flags().IntVar(&height, "height", 24, "frame height in rows")

	exportTrailCmd := &cobra.Command{
		Use:   "export-trail [body] [file]",
		Short: "export one orbit of a body to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportTrail,
	}
	exportTrailCmd.Flags().IntVar(&size, "size", 600, "image size in pixels")
	exportTrailCmd.Flags().IntVar(&trailSamples, "samples", 360, "number of samples")

	ephemerisCmd := &cobra.Command{
		Use:   "ephemeris [file]",
		Short: "export body positions over time (csv or json, - for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportEphemeris,
	}
	ephemerisCmd.Flags().Float64Var(&dt, "dt", 0.1, "timestep")
	ephemerisCmd.Flags().IntVar(&steps, "steps", 100, "number of steps")
	ephemerisCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the catalog and positions as a JSON API",
		RunE:  serveAPI,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringSliceVar(&allowOrigins, "allow-origin", nil, "CORS allowed origins")
	serveCmd.Flags().BoolVar(&accessLog, "access-log", true, "log every request")
	serveCmd.Flags().Float64Var(&rateLimit, "rate-limit", 20, "requests per second per client (0 disables)")
	serveCmd.Flags().IntVar(&burst, "burst", 40, "rate limit burst")

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, staticCmd, tuiCmd, catalogCmd, presetsCmd, plotCmd, exportSVGCmd, snapshotCmd, exportTrailCmd, ephemerisCmd, serveCmd, initConfigCmd)
	return rootCmd
}

// loadConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("span") {
		cfg.Span = span
	}
	if flags.Changed("aspect") {
		cfg.FontAspect = aspect
	}
	if flags.Changed("no-sun") {
		cfg.ShowSun = !noSun
	}
	if flags.Changed("no-orbits") {
		cfg.ShowOrbits = !noOrbits
	}
	if flags.Changed("status") {
		cfg.ShowStatus = status
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog returns the diagnostics logger. Without --debug-log the
// output is discarded since the terminal belongs to the renderer.
func openLog() (*log.Logger, io.Closer, error) {
	if debugLog == "" {
		return log.New(io.Discard, "", 0), nopCloser{}, nil
	}
	f, err := tea.LogToFile(debugLog, "orrery")
	if err != nil {
		return nil, nil, fmt.Errorf("debug log: %w", err)
	}
	return log.Default(), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func runOrrery(cmd *cobra.Command, mode *orrery.RenderMode) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if mode != nil {
		cfg.Mode = mode.String()
	}

	logger, logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	if r := cfg.MaxRadius(); r > cfg.Span {
		logger.Printf("outermost orbit %.1f extends past span %.1f and will be clipped", r, cfg.Span)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := render.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer t.Close()

	w, h := t.Size()
	s, err := scene.New(cfg, w, h)
	if err != nil {
		return err
	}

	loop := &scene.Loop{
		Scene:    s,
		Display:  t,
		Renderer: render.NewRenderer(t.Writer()),
		Stats:    metrics.NewFrameStats(),
		Log:      logger,
	}

	if metricsAddr != "" {
		loop.Metrics = metrics.NewCollector()
		srv := &http.Server{Addr: metricsAddr, Handler: loop.Metrics.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("metrics server: %v", err)
			}
		}()
		defer srv.Close()
	}

	return loop.Run(ctx)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	// resized by the first WindowSizeMsg
	s, err := scene.New(cfg, render.DefaultWidth, render.DefaultHeight)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(viz.NewModel(s, theme).WithLogger(logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGLYPH\tCOLOR\tRADIUS\tPERIOD\tPHASE")
	for _, b := range bodies {
		fmt.Fprintf(w, "%s\t%c\t%s\t%.1f\t%.2f\t%.2f\n",
			b.Name,
			b.Glyph,
			b.Color,
			b.Radius,
			b.Period,
			b.Phase,
		)
	}
	return w.Flush()
}

func findBody(cmd *cobra.Command, name string) (orrery.Body, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return orrery.Body{}, err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return orrery.Body{}, err
	}
	anim, err := orbit.NewAnimator(bodies)
	if err != nil {
		return orrery.Body{}, err
	}
	o, err := anim.Lookup(name)
	if err != nil {
		return orrery.Body{}, err
	}
	return o.Body, nil
}

func plotBody(cmd *cobra.Command, args []string) error {
	b, err := findBody(cmd, args[0])
	if err != nil {
		return err
	}
	if b.Radius == 0 {
		return fmt.Errorf("%s does not orbit", b.Name)
	}
	if periods <= 0 {
		return orrery.Invalid("periods", periods)
	}

	trail := export.Trail(b, 0, periods*b.Period, 1, samples)
	xs := make([]float64, len(trail))
	ys := make([]float64, len(trail))
	for i, p := range trail {
		xs[i] = p.X
		ys[i] = p.Y
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "body: %s\n", b.Name)
	fmt.Fprintf(out, "period: %.2f\n", b.Period)
	fmt.Fprintf(out, "samples: %d\n\n", len(trail))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, "x vs time"},
		{ys, "y vs time"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return err
	}
	if size <= 0 {
		return orrery.Invalid("size", size)
	}

	svg := export.OrreryToSVG(bodies, at, 1, size)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s (t=%.1f)\n", args[0], at)
	return nil
}

func printSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := scene.New(cfg, width, height)
	if err != nil {
		return err
	}
	s.SetSpeed(1)
	s.Step(at)
	fmt.Fprint(cmd.OutOrStdout(), s.Frame().String())
	return nil
}

func exportTrail(cmd *cobra.Command, args []string) error {
	b, err := findBody(cmd, args[0])
	if err != nil {
		return err
	}
	if b.Radius == 0 {
		return fmt.Errorf("%s does not orbit", b.Name)
	}
	if size <= 0 {
		return orrery.Invalid("size", size)
	}

	trail := export.Trail(b, 0, b.Period, 1, trailSamples)
	svg := export.TrajectoryToSVG(trail, size, size, export.HexColor(b.Color))
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d points to %s\n", len(trail), args[1])
	return nil
}

func exportEphemeris(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return err
	}

	e, err := store.Record(bodies, dt, cfg.Speed, steps)
	if err != nil {
		return err
	}

	if args[0] == "-" {
		return store.Write(cmd.OutOrStdout(), format, e)
	}

	switch format {
	case "csv":
		err = store.ExportCSV(args[0], e)
	case "json":
		err = store.ExportJSON(args[0], e)
	default:
		err = fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d steps to %s\n", e.Steps, args[0])
	return nil
}

func serveAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bodies, err := cfg.Catalog()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := server.NewRouter(bodies, server.Options{
		AllowOrigins: allowOrigins,
		Speed:        cfg.Speed,
		AccessLog:    accessLog,
		RateLimit:    rateLimit,
		Burst:        burst,
		Metrics:      metrics.NewCollector(),
	})

	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fmt.Fprintf(cmd.OutOrStdout(), "orrery API running on http://%s\n", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "orrery.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
