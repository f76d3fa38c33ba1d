package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/loop"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

var (
	flagSimTicks    uint64
	flagSimWidth    int
	flagSimHeight   int
	flagSimRealtime bool
	flagSimRecord   bool
	flagSimRender   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless with no input",
	Long: `Run a game without a terminal UI. The game receives an empty input
frame every tick until the run ends or --ticks is reached.

Useful for checking determinism: the same --seed always produces the same
result.

Examples:
  arcade sim snake --seed 42
  arcade sim invaders --ticks 3600 --render
  arcade sim pong --realtime --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 36000, "Stop after this many ticks (0 = until the run ends)")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Screen width in cells")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Screen height in cells")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick at the configured rate instead of as fast as possible")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Commit the final score to the high-score table")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final frame")
}

// SimResult is the outcome of a headless run.
type SimResult struct {
	Info  registry.Info
	State core.GameState
	Ticks uint64
}

func runSim(cmd *cobra.Command, args []string) error {
	info, err := resolveGame(args[0])
	if err != nil {
		return err
	}

	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	}
	deps := registry.Deps{Settings: svc.Settings}
	if flagSimRecord {
		deps.Scores = svc.Scores
	}
	game, err := registry.Create(info.ID, deps)
	if err != nil {
		return err
	}

	cfg := runtimeConfig(flagSimWidth, flagSimHeight)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	opts := []loop.Option{
		loop.WithTickRate(cfg.TicksPerSecond()),
		loop.WithLogger(logger.WithPrefix("loop")),
		loop.WithObserver(svc.Metrics.ObserveTick),
	}
	if !flagSimRealtime {
		opts = append(opts, loop.WithTicker(newBurstTicker))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := simulate(ctx, game, cfg, flagSimTicks, opts...)
	if err != nil {
		return err
	}
	if flagSimRecord && res.State.GameOver() {
		svc.RecordRun(info, res.State)
	}
	logger.Debug("simulation finished", "game", info.Slug, "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	if flagSimRender {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Fprintln(out, screen.String())
	}
	fmt.Fprintf(out, "game=%s seed=%d ticks=%d phase=%s score=%d lives=%d new_best=%t\n",
		info.Slug, cfg.Seed, res.Ticks, res.State.Phase, res.State.Score, res.State.Lives, res.State.NewBest)
	return nil
}

// simulate resets game and drives it with empty input until the run ends,
// maxTicks steps were taken or ctx is cancelled.
func simulate(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, maxTicks uint64, opts ...loop.Option) (SimResult, error) {
	game.Reset(cfg)

	var ticks uint64
	var state core.GameState
	step := func() bool {
		res := game.Step(core.NewInputFrame())
		ticks++
		state = res.State
		if state.GameOver() {
			return false
		}
		return maxTicks == 0 || ticks < maxTicks
	}

	driver := loop.New(step, opts...)
	if err := driver.Start(ctx); err != nil {
		return SimResult{}, err
	}
	<-driver.Done()

	return SimResult{
		Info:  registry.Info{ID: game.ID(), Slug: game.Slug(), Title: game.Title()},
		State: state,
		Ticks: ticks,
	}, nil
}

// burstTicker delivers ticks as fast as the consumer takes them.
type burstTicker struct {
	c    chan time.Time
	stop chan struct{}
}

func newBurstTicker(time.Duration) loop.Ticker {
	t := &burstTicker{c: make(chan time.Time), stop: make(chan struct{})}
	go func() {
		for {
			select {
			case t.c <- time.Now():
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

func (t *burstTicker) C() <-chan time.Time { return t.c }
func (t *burstTicker) Stop()               { close(t.stop) }
