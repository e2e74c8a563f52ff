// Package session runs the tick loop shared by every frontend: it turns
// polled input and a clock into game ticks, restarts finished games and
// hands completed recordings back to the caller.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Config holds everything a Driver needs to run games.
type Config struct {
	Board        core.Board
	Mode         registry.Mode
	Policy       snake.SpeedPolicy
	RestartDelay time.Duration
	Seed         int64  // Master seed; each game draws its own seed from it
	Player       string // Stored on recordings
	Logger       *log.Logger
}

// Event reports what happened during one Poll.
type Event struct {
	Ticked    bool
	Result    snake.TickResult
	Restarted bool
	Quit      bool

	// Finished is set when a game ended or was abandoned this poll.
	Finished *replay.Recording
}

// Driver owns the current game and decides when it ticks.
type Driver struct {
	cfg    Config
	clock  core.Clock
	master *rand.Rand
	logger *log.Logger

	game     *snake.Game
	rec      *replay.Recorder
	gameSeed int64
	games    int

	lastTick int64
	overAt   int64
	quit     bool
}

// New creates a driver and starts the first game.
func New(cfg Config, clock core.Clock) *Driver {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Driver{
		cfg:    cfg,
		clock:  clock,
		master: rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
	}
	d.start(clock.NowMillis())
	return d
}

func (d *Driver) start(now int64) {
	d.gameSeed = d.master.Int63()
	d.game = snake.New(d.cfg.Board, rand.New(rand.NewSource(d.gameSeed)))
	d.rec = replay.NewRecorder(d.cfg.Mode.ID, d.gameSeed, d.cfg.Board, time.Now())
	d.games++
	d.lastTick = now
	d.overAt = 0
	d.logger.Debug("game started", "mode", d.cfg.Mode.ID, "seed", d.gameSeed, "game", d.games)
}

// Poll consumes one frame of input and advances the game if a tick is due.
func (d *Driver) Poll(in core.InputFrame) Event {
	var ev Event
	if d.quit {
		ev.Quit = true
		return ev
	}

	if in.Has(core.ActionQuit) {
		d.quit = true
		ev.Quit = true
		if !d.game.Over() && d.game.Tick() > 0 {
			// A turn made since the last tick has not been recorded yet.
			d.rec.Record(d.game.Tick()+1, d.game.Heading())
			ev.Finished = d.finish()
			d.logger.Debug("game abandoned", "tick", d.game.Tick(), "eaten", d.game.Eaten())
		}
		return ev
	}

	now := d.clock.NowMillis()

	if d.game.Over() {
		if in.Has(core.ActionRestart) || now-d.overAt >= d.cfg.RestartDelay.Milliseconds() {
			d.start(now)
			ev.Restarted = true
		}
		return ev
	}

	if h, ok := in.Heading(); ok {
		d.game.SetHeading(h)
	}

	if now-d.lastTick <= d.Interval().Milliseconds() {
		return ev
	}

	next := d.game.Tick() + 1
	d.rec.Record(next, d.game.Heading())
	ev.Result = d.game.Advance()
	ev.Ticked = true
	d.lastTick = now

	if ev.Result.Over {
		d.overAt = now
		ev.Finished = d.finish()
		d.logger.Info("game over",
			"mode", d.cfg.Mode.ID,
			"eaten", d.game.Eaten(),
			"ticks", d.game.Tick(),
			"cause", ev.Result.Cause,
		)
	}
	return ev
}

func (d *Driver) finish() *replay.Recording {
	rec := d.rec.Finish(d.game.Snapshot(), time.Now())
	rec.Player = d.cfg.Player
	return &rec
}

// Interval returns the tick interval for the current score.
func (d *Driver) Interval() time.Duration {
	return d.cfg.Policy.Interval(d.game.Eaten())
}

// RestartIn returns how long until the next game starts, or zero while playing.
func (d *Driver) RestartIn() time.Duration {
	if !d.game.Over() {
		return 0
	}
	left := d.cfg.RestartDelay.Milliseconds() - (d.clock.NowMillis() - d.overAt)
	if left < 0 {
		return 0
	}
	return time.Duration(left) * time.Millisecond
}

// Snapshot returns the state of the current game.
func (d *Driver) Snapshot() snake.Snapshot {
	return d.game.Snapshot()
}

// Board returns the board games are played on.
func (d *Driver) Board() core.Board {
	return d.cfg.Board
}

// Mode returns the mode the driver runs.
func (d *Driver) Mode() registry.Mode {
	return d.cfg.Mode
}

// Games returns how many games have been started, including the current one.
func (d *Driver) Games() int {
	return d.games
}

// Seed returns the seed of the current game.
func (d *Driver) Seed() int64 {
	return d.gameSeed
}

// Quit reports whether the player asked to leave.
func (d *Driver) Quit() bool {
	return d.quit
}
