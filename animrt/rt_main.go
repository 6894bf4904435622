package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/ambient"
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

func init() {
	runtime.LockOSThread()
}

var (
	configFile  string
	presetName  string
	arrangement string
	shape       string
	count       int
	speed       float64
	metallic    float64
	seed        int64
	software    bool
	debug       bool

	terminal  bool
	frames    int
	every     int
	outDir    string
	probeWait time.Duration
	benchAll  bool
	savePath  string
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	hwStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	swStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(16)
	capStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(8).Align(lipgloss.Right)
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ambient",
		Short:        "procedural arrangement animations",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "", "named preset for the arrangement")
	pf.StringVarP(&arrangement, "arrangement", "a", "", "arrangement name")
	pf.StringVarP(&shape, "shape", "s", "", "cube, sphere or pyramid")
	pf.IntVarP(&count, "count", "n", 0, "instance count (clamped per arrangement)")
	pf.Float64Var(&speed, "speed", 0, "camera and simulation speed")
	pf.Float64Var(&metallic, "metallic", -1, "metallic factor 0..1")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.BoolVar(&software, "software", false, "never use the hardware renderer")
	pf.BoolVar(&debug, "debug", false, "debug logging")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "show the animation in a window, or in the terminal",
		RunE:  runView,
	}
	viewCmd.Flags().BoolVar(&terminal, "term", false, "draw in the terminal")
	viewCmd.Flags().DurationVar(&probeWait, "probe-timeout", 3*time.Second, "how long to wait for the hardware probe")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render software frames to PNG files",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 120, "frames to simulate")
	renderCmd.Flags().IntVar(&every, "every", 30, "write every nth frame")
	renderCmd.Flags().StringVarP(&outDir, "out", "o", "frames", "output directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list arrangements, caps and renderer support",
		Run:   runList,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [arrangement]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time software frames",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 240, "frames to time")
	benchCmd.Flags().BoolVar(&benchAll, "all", false, "time every arrangement")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the effective configuration as yaml",
		RunE:  runConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "ambient.yaml", "output path")

	rootCmd.AddCommand(viewCmd, renderCmd, listCmd, presetsCmd, benchCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *ambient.DefaultLogger {
	return ambient.NewDefaultLogger("ambient", debug)
}

// loadConfig merges the config file, the preset and the flags, in that order.
func loadConfig() (*ambient.Config, ambient.Params, error) {
	cfg := ambient.DefaultConfig()
	if configFile != "" {
		loaded, err := ambient.LoadConfig(configFile)
		if err != nil {
			return nil, ambient.Params{}, err
		}
		cfg = loaded
	}
	if arrangement != "" {
		cfg.Arrangement = arrangement
	}
	if presetName != "" {
		a, err := core.ParseArrangement(cfg.Arrangement)
		if err != nil {
			return nil, ambient.Params{}, err
		}
		p, err := ambient.GetPreset(a, presetName)
		if err != nil {
			return nil, ambient.Params{}, fmt.Errorf("%w: %s/%s", err, a, presetName)
		}
		host := *cfg
		cfg = ambient.ConfigFromParams(p)
		cfg.Width, cfg.Height, cfg.DevicePixelRatio = host.Width, host.Height, host.DevicePixelRatio
		cfg.ForceSoftware, cfg.Debug, cfg.Seed = host.ForceSoftware, host.Debug, host.Seed
	}
	if shape != "" {
		cfg.Shape = shape
	}
	if count > 0 {
		cfg.InstanceCount = count
	}
	if speed > 0 {
		cfg.CameraSpeed = speed
	}
	if metallic >= 0 {
		cfg.Metallic = metallic
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.ForceSoftware = cfg.ForceSoftware || software
	cfg.Debug = cfg.Debug || debug

	p, err := cfg.Params()
	if err != nil {
		return nil, ambient.Params{}, err
	}
	return cfg, p, nil
}

func builder(cfg *ambient.Config, p ambient.Params, log ambient.Logger) *ambient.EngineBuilder {
	w, h, dpr := cfg.Size()
	b := ambient.NewEngineBuilder().
		UseLogger(log).
		UseParams(p).
		UseSize(float64(w), float64(h), dpr).
		ForceSoftware(cfg.ForceSoftware)
	if cfg.Seed != 0 {
		b.UseSeed(cfg.Seed)
	}
	return b
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	log.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	b := builder(cfg, p, log)
	var window *ambient.GlfwHost
	if !terminal && !cfg.ForceSoftware {
		w, h, _ := cfg.Size()
		window, err = ambient.NewGlfwHost(w, h, "ambient", log)
		if err != nil {
			log.Warnf("no window: %v", err)
		} else {
			defer window.Close()
			b.UseHardware(window.Factory())
		}
	}

	engine := b.Build()
	defer engine.Stop()

	waitCtx, cancel := context.WithTimeout(ctx, probeWait)
	err = engine.WaitReady(waitCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("hardware probe: %w", err)
	}

	if window != nil && engine.Mode() == ambient.ModeHardware {
		err := ambient.Drive(ctx, window, engine)
		if !errors.Is(err, ambient.ErrHostMismatch) {
			return err
		}
		log.Infof("continuing in the terminal: %s", engine.FallbackReason())
	}
	if window != nil {
		window.Hide()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	term, err := ambient.NewTermPresenter(screen, log)
	if err != nil {
		return err
	}
	defer term.Close()
	return ambient.Drive(ctx, term, engine)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadConfig()
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	log := newLogger()
	log.SetDebug(cfg.Debug)

	engine := builder(cfg, p, log).ForceSoftware(true).Build()
	defer engine.Stop()
	if err := engine.WaitReady(cmd.Context()); err != nil {
		return err
	}

	w, h, dpr := cfg.Size()
	host := ambient.NewHeadlessHost(w, h, frames)
	host.DPR = dpr
	written := 0
	host.Capture = func(i int, img image.Image, status string) error {
		if (i+1)%every != 0 {
			return nil
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_%04d.png", p.Arrangement, i+1))
		if err := gg.NewContextForImage(img).SavePNG(path); err != nil {
			return err
		}
		written++
		log.Debugf("wrote %s (%s)", path, status)
		return nil
	}
	if err := ambient.Drive(cmd.Context(), host, engine); err != nil {
		return err
	}
	fmt.Printf("%d frames of %s, %d written to %s\n", host.Presented(), p.Arrangement, written, outDir)
	return nil
}

func runList(cmd *cobra.Command, args []string) {
	fmt.Println(titleStyle.Render("arrangements"))
	for _, a := range core.Arrangements() {
		mode := swStyle.Render("software")
		if a.HardwareCapable() {
			mode = hwStyle.Render("hardware + software")
		}
		fmt.Println(nameStyle.Render(a.String()) + capStyle.Render(fmt.Sprint(a.Cap())) + "  " + mode)
	}
}

func runPresets(cmd *cobra.Command, args []string) error {
	var targets []core.Arrangement
	if len(args) == 1 {
		a, err := core.ParseArrangement(args[0])
		if err != nil {
			return err
		}
		targets = []core.Arrangement{a}
	} else {
		for a := range ambient.Presets {
			targets = append(targets, a)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	}
	for _, a := range targets {
		names := ambient.ListPresets(a)
		if len(names) == 0 {
			continue
		}
		fmt.Println(nameStyle.Render(a.String()) + strings.Join(names, ", "))
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, p, err := loadConfig()
	if err != nil {
		return err
	}
	targets := []core.Arrangement{p.Arrangement}
	if benchAll {
		targets = core.Arrangements()
	}
	w, h, dpr := cfg.Size()
	for _, a := range targets {
		q := p
		q.Arrangement = a
		engine := builder(cfg, q, ambient.NewNopLogger()).ForceSoftware(true).Build()
		if err := engine.WaitReady(cmd.Context()); err != nil {
			return err
		}

		samples := make([]float64, 0, frames)
		host := ambient.NewHeadlessHost(w, h, frames)
		host.DPR = dpr
		host.Capture = func(int, image.Image, string) error {
			samples = append(samples, float64(engine.Stats().LastFrame.Microseconds())/1000)
			return nil
		}
		start := time.Now()
		err := ambient.Drive(cmd.Context(), host, engine)
		total := time.Since(start)
		stats := engine.Stats()
		engine.Stop()
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			continue
		}
		caption := fmt.Sprintf("%s n=%d  %.2f ms/frame", a, stats.Population, mean(samples))
		if benchAll {
			fmt.Println(nameStyle.Render(a.String()) + capStyle.Render(fmt.Sprint(stats.Population)) +
				fmt.Sprintf("  %6.2f ms/frame  %s total", mean(samples), total.Round(time.Millisecond)))
			continue
		}
		fmt.Println(asciigraph.Plot(samples,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		))
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := ambient.SaveConfig(savePath, cfg); err != nil {
		return err
	}
	fmt.Println("saved", savePath)
	return nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
