// snake is a terminal snake game with a desktop window, an SSH server and
// a replay journal.
//
// Usage:
//
//	snake list                  - List available modes
//	snake play [mode]           - Play in the terminal (menu when no mode is given)
//	snake window [mode]         - Play in a desktop window
//	snake serve                 - Start SSH server for remote play
//	snake replays list          - Browse recorded games
//	snake replays show <id>     - Print one recorded game
//	snake replays verify [id]   - Re-simulate recorded games
//	snake replays delete <id>   - Remove a recorded game
//	snake config                - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path
//	--speed <preset>    - Speed preset: easy, normal, hard
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Log file (the terminal frontend always logs to a file)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagSpeed    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - steer, eat, grow, don't hit anything",
	Long: `Snake is the classic game: steer the snake onto the food to grow and
avoid the walls and your own body. Finished games are recorded and can be
replayed and verified.

Available commands:
  list     - Show all available modes
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  replays  - Browse, verify and delete recorded games
  config   - Print the effective configuration

Examples:
  snake play
  snake play ramp --speed hard
  snake window --seed 42
  snake serve --ssh :2222 --spectate :8080
  snake replays list`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}
