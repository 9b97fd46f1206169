package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybound/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Host Skybound over SSH",
	Long: `Start an SSH server that lets anyone with an SSH client play.

Every connection gets its own game. All players share one leaderboard:
the scoring service when it is reachable, this host's database otherwise.
The SSH user name is offered as the player name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skybound/ssh_host_ed25519

Examples:
  skybound ssh
  skybound ssh --addr :2222
  skybound ssh --offline

Players connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "addr", "", "SSH listen address (host:port)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runSSH(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	dev, err := openDevice(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer dev.Close()

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Game:        cfg.Game,
	}, dev.service, dev.kv, dev.logger)
	if err != nil {
		return err
	}

	fmt.Printf("Skybound SSH server on %s\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return srv.ListenAndServe(ctx)
}
