package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own game. The high score is shared by
everyone connected to the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23235 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --idle-timeout 5m         # Drop idle players sooner

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23235)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config, 30m)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	logger := newLogger(cfg.Log, os.Stderr, "snake-ssh")

	st, store := openStore(cfg.Storage.Path, logger)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Theme:       loadTheme(cfg.Theme, logger),
	}, store, logger)
	if err != nil {
		if st != nil {
			st.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	serveErr := server.ListenAndServe(ctx)
	stop()

	if st != nil {
		st.Close()
	}

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
