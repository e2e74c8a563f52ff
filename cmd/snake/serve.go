package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSpectate    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with a mode picker menu and its own
random seed. Finished games from every connection go to the same replay
database.

With --spectate, every session's frames are also published as JSON over a
WebSocket at ws://<addr>/ws (add ?session=<id> to follow one player) and
counters are served at http://<addr>/stats.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --spectate :8080          # Also publish a spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
	serveCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Spectator feed address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	e := setup(false)
	defer e.Close()

	serve := e.cfg.Serve
	if flagSSHAddr != "" {
		serve.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		serve.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serve.IdleTimeoutMin = flagIdleTimeout
	}
	if flagSpectate != "" {
		serve.SpectateAddr = flagSpectate
	}

	// The template mode is replaced by the menu choice in each session.
	mode, _ := registry.Get(snake.ModeClassic)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:      serve.SSHAddr,
		HostKeyPath:  serve.HostKey,
		IdleTimeout:  time.Duration(serve.IdleTimeoutMin) * time.Minute,
		SpectateAddr: serve.SpectateAddr,
		Play: tui.Options{
			Session: e.sessionConfig(mode, 0),
			Store:   e.openStore(),
			Logger:  e.logger,
		},
	})
	if err != nil {
		fatal("Error creating server: %v", err)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("Server error: %v", err)
	}
}
