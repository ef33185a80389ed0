// Command phosphor renders a retro terminal boot screen and exports it as an animated GIF
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/phosphor/audio"
	"github.com/lixenwraith/phosphor/config"
	"github.com/lixenwraith/phosphor/export"
	"github.com/lixenwraith/phosphor/preview"
	"github.com/lixenwraith/phosphor/render/effects"
	"github.com/lixenwraith/phosphor/sequence"
	"github.com/lixenwraith/phosphor/sysinfo"
)

var (
	configFlag      = flag.String("config", "", "Config file path (default ./"+config.DefaultConfigPath+")")
	envFlag         = flag.String("env", ".env", "Environment file with PHOSPHOR_* overrides")
	debugFlag       = flag.Bool("debug", false, "Write debug log to logs/phosphor.log")
	noPreviewFlag   = flag.Bool("no-preview", false, "Render headless without the terminal preview")
	noPaceFlag      = flag.Bool("no-pace", false, "Show preview frames as fast as they render")
	outputFlag      = flag.String("output", "", "Output GIF path, overrides config")
	seedFlag        = flag.Uint64("seed", 0, "Noise seed, overrides config; 0 keeps config")
	audioFlag       = flag.Bool("audio", false, "Also write the WAV soundtrack")
	writeConfigFlag = flag.Bool("write-config", false, "Write the effective config and exit")
)

// activePreview is restored on panic so the terminal is never left in raw mode
var activePreview *preview.Preview

func main() {
	// Panic Recovery: restore terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			if activePreview != nil {
				activePreview.Close()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPHOSPHOR CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	err := run()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "phosphor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *writeConfigFlag {
		path := *configFlag
		if path == "" {
			path = config.DefaultConfigPath
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Output.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("Noise seed %d", seed)

	params, fontSource := cfg.EffectParameters()
	log.Printf("Font source: %s", fontSource)

	info := sysinfo.Collect(ctx)
	text := sysinfo.Compose(info, textOptions(cfg.Text))

	builder, err := effects.NewStandardBuilder(params, text, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	acfg := audioConfig(cfg.Audio)
	recorder := audio.NewRecorder()
	observers := []sequence.Observer{recorder}

	if acfg.Live {
		player := audio.NewPlayer(acfg)
		if err := player.Initialize(); err != nil {
			log.Printf("Audio playback unavailable: %v", err)
		} else {
			defer player.Cleanup()
			observers = append(observers, player)
		}
	}

	if !*noPreviewFlag {
		p, err := preview.Open(cancel, !*noPaceFlag)
		if err != nil {
			log.Printf("Preview unavailable, rendering headless: %v", err)
		} else {
			activePreview = p
			defer p.Close()
			observers = append(observers, p)
		}
	}
	if activePreview == nil {
		observers = append(observers, sequence.ObserverFunc(func(ev sequence.FrameEvent) {
			fmt.Fprintf(os.Stderr, "\rRendering frame %d/%d", ev.Index+1, ev.Total)
		}))
	}

	seqr, err := sequence.New(builder, text, cfg.Timing(), observers...)
	if err != nil {
		return err
	}
	seq, err := seqr.Run(runCtx)
	if err != nil {
		return err
	}

	if activePreview != nil {
		activePreview.Close()
	} else {
		fmt.Fprintln(os.Stderr)
	}

	if seq.Cancelled && len(seq.Frames) == 0 {
		fmt.Fprintln(os.Stderr, "Cancelled before the first frame, nothing written")
		return nil
	}
	if err := seq.Validate(); err != nil {
		return err
	}

	// A cancelled run still exports what it produced
	jobs := artifactJobs(cfg, acfg, seq, recorder)
	if err := export.WriteAll(context.WithoutCancel(ctx), jobs...); err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, renderSummary(summary{
		Frames:    len(seq.Frames),
		Planned:   cfg.Timing().TotalFrames(),
		Delay:     seq.Delay,
		Cancelled: seq.Cancelled,
		Seed:      seed,
		Font:      fontSource.String(),
		Artifacts: jobPaths(jobs),
	}))
	return nil
}

// loadConfig applies file, .env, environment and flags in increasing priority
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(*envFlag); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", *envFlag, err)
	}

	cfg, src, err := config.LoadAuto(*configFlag, config.DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Config loaded from %s", src)

	config.ApplyEnv(cfg)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if *outputFlag != "" {
		cfg.Output.GIF = *outputFlag
	}
	if *seedFlag != 0 {
		cfg.Output.Seed = *seedFlag
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}
}

func textOptions(t config.TextConfig) sysinfo.Options {
	return sysinfo.Options{
		Tab:       t.Tab,
		TabLength: t.TabLength,
		PadLines:  t.PadLines,
		ShowCPU:   t.ShowCPU,
		Overrides: sysinfo.Overrides{
			OS:      t.OverrideOS,
			Kernel:  t.OverrideKernel,
			Desktop: t.OverrideDE,
			Shell:   t.OverrideShell,
			Memory:  t.OverrideMemory,
		},
	}
}

func audioConfig(a config.AudioConfig) *audio.Config {
	return &audio.Config{
		Enabled:    a.Enabled,
		Live:       a.Live,
		Volume:     a.Volume,
		SampleRate: a.SampleRate,
	}
}

// artifactJobs returns the GIF job and, when audio is enabled, the WAV job
func artifactJobs(cfg *config.Config, acfg *audio.Config, seq *sequence.Sequence, rec *audio.Recorder) []export.Job {
	pal := export.PhosphorPalette(cfg.FontColor().Opaque(), cfg.Render.Quality)
	jobs := []export.Job{{
		Path: cfg.Output.GIF,
		Write: func(ctx context.Context, w io.WriteSeeker) error {
			return export.EncodeGIF(ctx, w, seq.Frames, seq.Delay, pal)
		},
	}}

	if !acfg.Enabled {
		return jobs
	}
	st, err := rec.Soundtrack(acfg)
	if err != nil {
		if !errors.Is(err, audio.ErrNoSamples) {
			log.Printf("Soundtrack unavailable: %v", err)
		}
		return jobs
	}
	return append(jobs, export.Job{
		Path: cfg.Output.WAV,
		Write: func(_ context.Context, w io.WriteSeeker) error {
			return st.EncodeWAV(w)
		},
	})
}

func jobPaths(jobs []export.Job) []string {
	paths := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if j.Path != "" {
			paths = append(paths, j.Path)
		}
	}
	return paths
}
