package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/granary-io/granary/pkg/config"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/scheduler"
	"github.com/spf13/cobra"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the scheduler process",
	Long: `Run the scheduler: the HTTP ingress for uploads and downloads, the
heartbeat and placement RPC surface, and the worker reaper.

Configuration comes from environment variables (SCHEDULER_HTTP_PORT,
SCHEDULER_RPC_PORT, DATA_DIR, BROKER_URL), optionally overlaid by a
YAML file.`,
	RunE: runScheduler,
}

func init() {
	schedulerCmd.Flags().String("config", "", "YAML config file")
	schedulerCmd.Flags().Int("http-port", 0, "HTTP ingress port (overrides env)")
	schedulerCmd.Flags().Int("rpc-port", 0, "RPC port (overrides env)")
	schedulerCmd.Flags().String("data-dir", "", "Metadata directory (overrides env)")
	schedulerCmd.Flags().String("broker-url", "", "Broker URL (overrides env)")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadScheduler(cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("http-port") {
		cfg.HTTPPort, _ = cmd.Flags().GetInt("http-port")
	}
	if cmd.Flags().Changed("rpc-port") {
		cfg.RPCPort, _ = cmd.Flags().GetInt("rpc-port")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("broker-url") {
		cfg.BrokerURL, _ = cmd.Flags().GetString("broker-url")
	}

	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})
	metrics.SetVersion(Version)

	sched, err := scheduler.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	return sched.Run(ctx)
}
