package worker

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/broker"
	"github.com/granary-io/granary/pkg/chunkstore"
	"github.com/granary-io/granary/pkg/config"
	"github.com/granary-io/granary/pkg/consumer"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/peers"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Worker is a storage node: it serves the WorkerService RPC surface,
// consumes the chunk queue, heartbeats the scheduler and writes chunks
// to its local disk engine.
type Worker struct {
	proto.UnimplementedWorkerServiceServer

	cfg       *config.WorkerConfig
	store     *chunkstore.Store
	pool      *peers.Pool
	queue     broker.Consumer
	consumer  *consumer.Consumer
	schedConn *grpc.ClientConn
	grpc      *grpc.Server
	logger    zerolog.Logger
}

// New wires a worker from its config. The broker must be reachable at
// startup; the scheduler connection is lazy and may come up later.
func New(cfg *config.WorkerConfig) (*Worker, error) {
	store, err := chunkstore.New(cfg.StorageRoot, cfg.WorkerID)
	if err != nil {
		return nil, err
	}

	queue, err := broker.DialAMQP(broker.AMQPConfig{URL: cfg.BrokerURL, Queue: cfg.Queue})
	if err != nil {
		return nil, err
	}
	metrics.UpdateComponent("broker", true, "")

	schedConn, err := grpc.NewClient(cfg.SchedulerAddress(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		queue.Close()
		return nil, fmt.Errorf("failed to dial scheduler %s: %w", cfg.SchedulerAddress(), err)
	}

	pool := peers.NewPool()
	w := &Worker{
		cfg:       cfg,
		store:     store,
		pool:      pool,
		queue:     queue,
		schedConn: schedConn,
		grpc:      grpc.NewServer(),
		logger:    log.WithComponent("worker").With().Str("worker_id", cfg.WorkerID).Logger(),
	}
	w.consumer = consumer.New(cfg.WorkerID,
		consumer.NewRemoteAssigner(schedConn, cfg.WorkerID), store, pool)

	proto.RegisterWorkerServiceServer(w.grpc, w)
	return w, nil
}

// Run serves until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	rpcAddr := fmt.Sprintf(":%d", w.cfg.Port)
	lis, err := net.Listen("tcp", rpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", rpcAddr, err)
	}

	w.logger.Info().Str("addr", rpcAddr).Str("storage", w.store.Dir()).Msg("Worker RPC server listening")
	grpcErr := make(chan error, 1)
	go func() {
		if err := w.grpc.Serve(lis); err != nil {
			grpcErr <- err
		}
	}()

	go w.runHeartbeat(ctx)

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- w.consumer.Run(ctx, w.queue)
	}()

	metricsSrv := w.startMetricsServer()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-grpcErr:
	case err := <-consumeErr:
		if ctx.Err() == nil {
			runErr = err
		}
	}

	w.logger.Info().Msg("Worker shutting down")
	w.grpc.GracefulStop()
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	w.pool.Close()
	w.schedConn.Close()
	if err := w.queue.Close(); err != nil {
		w.logger.Warn().Err(err).Msg("Broker close failed")
	}
	return runErr
}

// startMetricsServer exposes /metrics and /healthz on a side listener.
func (w *Worker) startMetricsServer() *http.Server {
	if w.cfg.MetricsPort <= 0 {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", metrics.HealthHandler())
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", w.cfg.MetricsPort),
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			w.logger.Warn().Err(err).Msg("Metrics server error")
		}
	}()
	return srv
}
