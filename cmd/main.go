package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/quadcollide/collision"
	"github.com/aukilabs/quadcollide/featureflag"
	qchttp "github.com/aukilabs/quadcollide/http"
	"github.com/aukilabs/quadcollide/models"
	"github.com/aukilabs/quadcollide/render"
	"github.com/aukilabs/quadcollide/simulation"
	"github.com/aukilabs/quadcollide/smoketest"
	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/encoding/json"
)

var (
	// The quadcollide version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "quadcollide_info",
		Help:        "Quadcollide information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	AdminAddr          string        `cli:""        env:"QUADCOLLIDE_ADMIN_ADDR"           help:"Admin listening address. Empty disables the admin server."`
	LogLevel           string        `cli:""        env:"QUADCOLLIDE_LOG_LEVEL"            help:"Log level (debug|info|warning|error)."`
	LogIndent          bool          `cli:""        env:"QUADCOLLIDE_LOG_INDENT"           help:"Indent logs."`
	Size               int           `cli:""        env:"QUADCOLLIDE_SIZE"                 help:"The width and height of the universe."`
	Squares            int           `cli:""        env:"QUADCOLLIDE_SQUARES"              help:"The number of squares placed at start."`
	SquareSize         int           `cli:""        env:"QUADCOLLIDE_SQUARE_SIZE"          help:"The side of a square."`
	Animate            string        `cli:""        env:"QUADCOLLIDE_ANIMATE"              help:"Tick rate (60|slow|none)."`
	Mode               string        `cli:""        env:"QUADCOLLIDE_MODE"                 help:"Collision detection mode (qtree|grid|all|none)."`
	MaxObjects         int           `cli:",hidden" env:"QUADCOLLIDE_MAX_OBJECTS"          help:"The number of items a quadtree node holds before splitting."`
	MaxLevels          int           `cli:",hidden" env:"QUADCOLLIDE_MAX_LEVELS"           help:"The maximum depth of the quadtree."`
	GridCellSize       int           `cli:",hidden" env:"QUADCOLLIDE_GRID_CELL_SIZE"       help:"The cell side of the uniform grid."`
	Headless           bool          `cli:""        env:"QUADCOLLIDE_HEADLESS"             help:"Runs without the terminal renderer."`
	Ticks              int           `cli:""        env:"QUADCOLLIDE_TICKS"                help:"Stops after the given number of ticks. 0 runs until interrupted."`
	Seed               int           `cli:""        env:"QUADCOLLIDE_SEED"                 help:"Random seed. 0 picks a time based seed."`
	LogSummaryInterval time.Duration `cli:",hidden" env:"QUADCOLLIDE_LOG_SUMMARY_INTERVAL" help:"The duration between each tick summary log."`
	Events             eventsConfig  `cli:",hidden" env:"-"                                help:"Event pusher configuration."`
	FeatureFlags       []string      `cli:",hidden" env:"QUADCOLLIDE_FEATURE_FLAGS"        help:"Comma separated feature flags (DISABLE_JITTER|DISABLE_TREE_OVERLAY|SHOW_IDS)."`
	Version            bool          `cli:""        env:"-"                                help:"Show version."`
	Help               bool          `cli:""        env:"-"                                help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"QUADCOLLIDE_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed. Empty disables event pushing."`
	FlushInterval time.Duration `cli:",hidden" env:"QUADCOLLIDE_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"QUADCOLLIDE_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"QUADCOLLIDE_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		AdminAddr:          ":18190",
		LogLevel:           logs.InfoLevel.String(),
		Size:               700,
		Squares:            1500,
		SquareSize:         5,
		Animate:            string(simulation.Animation60),
		Mode:               string(collision.ModeQuadtree),
		MaxObjects:         4,
		MaxLevels:          5,
		GridCellSize:       25,
		LogSummaryInterval: time.Minute,
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs a collision detection simulation of moving squares.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     metrics.HTTPTransport(http.DefaultTransport),
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "quadcollide",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	} else if !conf.Headless {
		// Log lines would tear the terminal drawing.
		logs.SetLogger(func(logs.Entry) {})
	}

	flags := featureflag.New(conf.FeatureFlags)
	if unknown := flags.Unknown(); len(unknown) != 0 {
		logs.WithTag("feature_flags", unknown).Warn("ignoring unknown feature flags")
	}

	mode, _ := collision.ParseMode(conf.Mode)
	animation, _ := simulation.ParseAnimation(conf.Animate)

	seed := uint64(conf.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	world := simulation.NewWorld(worldConfig(conf, flags, mode, seed))
	world.Populate(conf.Squares, float64(conf.SquareSize))

	logs.WithTag("version", version).
		WithTag("run_id", world.RunID).
		WithTag("log_level", conf.LogLevel).
		WithTag("mode", mode).
		WithTag("animate", animation).
		WithTag("size", conf.Size).
		WithTag("squares", conf.Squares).
		WithTag("seed", seed).
		WithTag("feature_flags", conf.FeatureFlags).
		Info("starting quadcollide")

	var wg sync.WaitGroup
	if conf.AdminAddr != "" {
		admin := qchttp.NewAdminHandler(qchttp.AdminOptions{
			Version: version,
			Source:  world,
			Ready: func() bool {
				return world.Frame().Tick > 0
			},
			SmokeTest: smoketest.HandleSmokeTest(ctx, world, smoketest.Options{}),
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			qchttp.ListenAndServe(ctx, &http.Server{Addr: conf.AdminAddr, Handler: admin})
		}()
	}

	runOpts := simulation.RunOptions{
		Interval:        animation.Interval(),
		MaxTicks:        uint64(conf.Ticks),
		SummaryInterval: conf.LogSummaryInterval,
	}

	var err error
	if conf.Headless {
		err = runHeadless(ctx, world, runOpts)
	} else {
		err = runTerminal(ctx, world, runOpts, renderOptions(flags, animation))
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logs.Error(err)
	}

	cancel()
	wg.Wait()
}

func worldConfig(conf config, flags featureflag.FeatureFlag, mode collision.Mode, seed uint64) simulation.Config {
	worldConf := simulation.Config{
		Universe:       models.Bounds{W: float64(conf.Size), H: float64(conf.Size)},
		Mode:           mode,
		MaxObjects:     conf.MaxObjects,
		MaxLevels:      conf.MaxLevels,
		GridResolution: float64(conf.GridCellSize),
		Jitter:         true,
		Seed:           seed,
	}

	flags.IfSet(featureflag.FlagDisableJitter, func() {
		worldConf.Jitter = false
	})
	return worldConf
}

func renderOptions(flags featureflag.FeatureFlag, animation simulation.Animation) render.Options {
	opts := render.Options{
		TickOnInput: animation == simulation.AnimationNone,
	}

	flags.IfNotSet(featureflag.FlagDisableTreeOverlay, func() {
		opts.Overlay = true
	})
	flags.IfSet(featureflag.FlagShowIDs, func() {
		opts.ShowIDs = true
	})
	return opts
}

func runHeadless(ctx context.Context, world *simulation.World, opts simulation.RunOptions) error {
	if opts.MaxTicks == 0 && opts.Interval == 0 {
		opts.MaxTicks = 1
	}

	if err := world.Run(ctx, opts); err != nil {
		return err
	}

	f := world.Frame()
	res := smoketest.Run(world, f.Mode)
	logs.WithTag("run_id", world.RunID).
		WithTag("tick", f.Tick).
		WithTag("mode", f.Mode).
		WithTag("rectangles", len(f.Rectangles)).
		WithTag("colliding", f.Report.Colliding).
		WithTag("comparisons", f.Report.Comparisons).
		WithTag("tick_duration", f.Duration).
		WithTag("smoke_test", res.Status).
		WithTag("missed", len(res.Missed)).
		Info("simulation done")
	return nil
}

func runTerminal(ctx context.Context, world *simulation.World, runOpts simulation.RunOptions, renderOpts render.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.New("creating terminal screen failed").Wrap(err)
	}
	if err := screen.Init(); err != nil {
		return errors.New("initializing terminal screen failed").Wrap(err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := render.New(screen, renderOpts)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		if err := world.Run(ctx, runOpts); err != nil && !errors.Is(err, context.Canceled) {
			logs.Warn(errors.New("simulation stopped").Wrap(err))
		}
	}()

	err = r.Run(ctx, world)
	cancel()
	wg.Wait()
	return err
}

func validateConfig(conf config) error {
	if _, err := collision.ParseMode(conf.Mode); err != nil {
		return errors.New("invalid mode").Wrap(err)
	}

	if _, err := simulation.ParseAnimation(conf.Animate); err != nil {
		return errors.New("invalid animate value").Wrap(err)
	}

	if conf.Size <= 0 {
		return errors.New("size must be positive").WithTag("size", conf.Size)
	}

	if conf.SquareSize <= 0 {
		return errors.New("square size must be positive").WithTag("square_size", conf.SquareSize)
	}

	if conf.Squares < 0 {
		return errors.New("number of squares cannot be negative").WithTag("squares", conf.Squares)
	}

	if conf.Ticks < 0 {
		return errors.New("number of ticks cannot be negative").WithTag("ticks", conf.Ticks)
	}

	if conf.MaxObjects < 0 || conf.MaxLevels < 0 || conf.GridCellSize < 0 {
		return errors.New("index limits cannot be negative").
			WithTag("max_objects", conf.MaxObjects).
			WithTag("max_levels", conf.MaxLevels).
			WithTag("grid_cell_size", conf.GridCellSize)
	}

	return nil
}
