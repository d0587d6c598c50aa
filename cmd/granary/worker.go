package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/granary-io/granary/pkg/config"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/worker"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a storage worker process",
	Long: `Run a storage worker: it heartbeats the scheduler, consumes the chunk
queue, stores chunk files under its storage root and serves them back
over the worker RPC surface.

Configuration comes from environment variables (WORKER_ID, HOST, PORT,
SCHEDULER_HOST, SCHEDULER_PORT, STORAGE_ROOT, BROKER_URL), optionally
overlaid by a YAML file.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().String("config", "", "YAML config file")
	workerCmd.Flags().String("worker-id", "", "Worker identity (overrides env)")
	workerCmd.Flags().String("host", "", "Advertised host (overrides env)")
	workerCmd.Flags().Int("port", 0, "RPC port (overrides env)")
	workerCmd.Flags().String("scheduler", "", "Scheduler host:port (overrides env)")
	workerCmd.Flags().String("storage-root", "", "Chunk storage root (overrides env)")
	workerCmd.Flags().String("broker-url", "", "Broker URL (overrides env)")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	if id, _ := cmd.Flags().GetString("worker-id"); id != "" {
		// LoadWorker requires an identity; the flag must win over env.
		os.Setenv("WORKER_ID", id)
	}
	cfg, err := config.LoadWorker(cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("scheduler") {
		addr, _ := cmd.Flags().GetString("scheduler")
		host, port, err := splitHostPort(addr)
		if err != nil {
			return fmt.Errorf("invalid --scheduler address %q: %w", addr, err)
		}
		cfg.SchedulerHost, cfg.SchedulerPort = host, port
	}
	if cmd.Flags().Changed("storage-root") {
		cfg.StorageRoot, _ = cmd.Flags().GetString("storage-root")
	}
	if cmd.Flags().Changed("broker-url") {
		cfg.BrokerURL, _ = cmd.Flags().GetString("broker-url")
	}

	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})
	metrics.SetVersion(Version)

	w, err := worker.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
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

	return w.Run(ctx)
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
