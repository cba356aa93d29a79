package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitday/app"
	"bitday/core/render"
	"bitday/hal"
	"bitday/internal/buildinfo"
	"bitday/internal/config"
	"bitday/internal/logging"
	"bitday/internal/prefs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	snapshotPath string

	renderHour    int
	renderWidth   int
	renderHeight  int
	renderOffsetX float32
	renderOffsetY float32
	renderOut     string
)

var rootCmd = &cobra.Command{
	Use:           "bitday",
	Short:         "BitDay time-of-day wallpaper engine",
	Long:          `BitDay draws a pixel-art landscape matching the current hour, scaled to fill the screen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the wallpaper window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow()
	},
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the engine without a window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one frame for a given hour to a PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderOnce()
	},
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Print the hour to scene table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printBuckets(cmd)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the last drawn hour and surface size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkStatus(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/bitday/bitday.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")

	headlessCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write the last posted frame to this PNG file")

	renderCmd.Flags().IntVar(&renderHour, "hour", -1, "hour of day 0-23 (default: now)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1080, "surface width")
	renderCmd.Flags().IntVar(&renderHeight, "height", 1920, "surface height")
	renderCmd.Flags().Float32Var(&renderOffsetX, "offset-x", 0.5, "horizontal page offset 0..1")
	renderCmd.Flags().Float32Var(&renderOffsetY, "offset-y", 0.5, "vertical page offset 0..1")
	renderCmd.Flags().StringVar(&renderOut, "out", "bitday.png", "output PNG path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(bucketsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads and validates the config and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFlags(cfgFile, rootCmd.PersistentFlags())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	res := cfg.Validate()

	level := cfg.Log.Level
	if _, err := logging.ParseLevel(level); err != nil {
		level = "info"
	}
	format := cfg.Log.Format
	if format != "json" {
		format = "console"
	}
	log, err := logging.New(level, format)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		log.Warn("config", zap.Error(w))
	}
	if res.HasFatals() {
		for _, f := range res.Fatals {
			log.Error("config", zap.Error(f))
		}
		return nil, nil, errors.Join(res.Fatals...)
	}
	return cfg, log, nil
}

func runWindow() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	appCfg, err := app.FromConfig(log, cfg)
	if err != nil {
		return err
	}
	host := hal.HostConfig{
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Preview: cfg.Render.Preview,
	}
	return hal.RunWindow(log, host, app.Factory(appCfg))
}

func runHeadless() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	appCfg, err := app.FromConfig(log, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var frame *image.RGBA
	hc := hal.HeadlessConfig{
		Hz:    cfg.Headless.Hz,
		Ticks: cfg.Headless.Ticks,
		Host: hal.HostConfig{
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Preview: cfg.Render.Preview,
		},
	}
	if snapshotPath != "" {
		hc.Frame = func(img *image.RGBA) { frame = img }
	}

	err = hal.RunHeadless(ctx, log, hc, app.Factory(appCfg))
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}
	if snapshotPath != "" {
		if frame == nil {
			return fmt.Errorf("snapshot: no frame was posted")
		}
		if err := writePNG(snapshotPath, frame); err != nil {
			return err
		}
		log.Info("snapshot written", zap.String("path", snapshotPath))
	}
	return nil
}

func renderOnce() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	hour := renderHour
	if hour < 0 {
		hour = time.Now().Hour()
	}
	if hour > 23 {
		return fmt.Errorf("render: hour %d out of range 0-23", hour)
	}
	appCfg, err := app.FromConfig(log, cfg)
	if err != nil {
		return err
	}

	off := render.Offsets{X: renderOffsetX, Y: renderOffsetY}
	img, err := renderFrame(log, appCfg, fixedHour(hour), renderWidth, renderHeight, off)
	if err != nil {
		return err
	}
	if err := writePNG(renderOut, img); err != nil {
		return err
	}
	log.Info("frame rendered",
		zap.Int("hour", hour),
		zap.Stringer("bucket", render.BucketFor(hour)),
		zap.Int("width", renderWidth),
		zap.Int("height", renderHeight),
		zap.String("out", renderOut),
	)
	return nil
}

func printBuckets(cmd *cobra.Command) {
	for _, b := range render.Buckets() {
		hours := b.Hours()
		parts := make([]string, len(hours))
		for i, h := range hours {
			parts[i] = fmt.Sprintf("%02d", h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", b, strings.Join(parts, " "))
	}
}

func checkStatus(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := app.PrefsStore(cfg.Prefs)
	if err != nil {
		return err
	}
	p, err := store.Load()
	if errors.Is(err, prefs.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "Status: nothing drawn yet")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Bucket:  %s\n", p.Bucket)
	fmt.Fprintf(cmd.OutOrStdout(), "Hour:    %02d\n", p.Hour)
	fmt.Fprintf(cmd.OutOrStdout(), "Surface: %dx%d\n", p.Width, p.Height)
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
