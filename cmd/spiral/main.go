// Command spiral renders a helical stack of model clones with a keyboard and
// scroll driven camera. W/S move the camera, the wheel zooms, A/D spin the stack.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-spiral/demo"
	"github.com/Carmen-Shannon/oxy-spiral/engine"
	"github.com/Carmen-Shannon/oxy-spiral/engine/config"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spiral/engine/window"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	modelPath  string
	logLevel   string
	profile    bool
	watch      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "spiral",
		Short:         "Render a spiral stack of model clones",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts, cmd.Flags().Changed("log-level"))
			if err != nil {
				return err
			}
			return run(cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "scene file (.yaml, .yml or .toml)")
	flags.StringVarP(&opts.modelPath, "model", "m", "", "glTF/GLB model to stack (default "+config.DefaultModelPath+")")
	flags.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flags.BoolVar(&opts.profile, "profile", false, "log frame rate and memory statistics")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "reload the scene file when it changes")
	return cmd
}

// loadConfig reads the scene file, if any, and applies flag overrides.
func loadConfig(opts *options, logLevelSet bool) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if opts.watch {
		return nil, fmt.Errorf("--watch requires --config")
	}

	if opts.modelPath != "" {
		cfg.Model.Path = opts.modelPath
	}
	if logLevelSet {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

func run(cfg *config.Config, opts *options) error {
	sink := diag.NewTextSink(os.Stderr, diag.ParseLevel(cfg.Log.Level))

	appOptions := []demo.AppBuilderOption{demo.WithDiagnostics(sink)}
	if opts.watch {
		w, err := config.NewWatcher(opts.configPath)
		if err != nil {
			return err
		}
		defer w.Close()
		appOptions = append(appOptions, demo.WithWatcher(w))
	}
	app := demo.NewApp(cfg, appOptions...)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.Window.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithDiagnostics(sink),
	)
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(app.Camera()),
		engine.WithScene(app.Scene()),
		engine.WithInputHandlers(app.Handlers()...),
		engine.WithTickCallback(app.Tick),
		engine.WithProfiling(opts.profile),
		engine.WithDiagnostics(sink),
	)

	app.Start()
	eng.Run()
	return nil
}
