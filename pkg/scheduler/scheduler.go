package scheduler

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/broker"
	"github.com/granary-io/granary/pkg/config"
	"github.com/granary-io/granary/pkg/ingest"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metadata"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/peers"
	"github.com/granary-io/granary/pkg/placement"
	"github.com/granary-io/granary/pkg/registry"
	"github.com/granary-io/granary/pkg/types"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// Scheduler is the control-plane process: it serves the HTTP ingress,
// the SchedulerService RPC surface, and runs the registry reaper.
type Scheduler struct {
	proto.UnimplementedSchedulerServiceServer

	cfg      *config.SchedulerConfig
	registry *registry.Registry
	store    metadata.Store
	oracle   *placement.Oracle
	pub      broker.Publisher
	pool     *peers.Pool
	ingress  *ingest.Server
	grpc     *grpc.Server
	stopCh   chan struct{}
	logger   zerolog.Logger

	reaperPeriod time.Duration
}

// New wires a scheduler from its config. The broker and the metadata
// store must be reachable; failing either is fatal at startup.
func New(cfg *config.SchedulerConfig) (*Scheduler, error) {
	store, err := metadata.NewBoltStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata store: %w", err)
	}
	metrics.UpdateComponent("metadata", true, "")

	pub, err := broker.DialAMQP(broker.AMQPConfig{URL: cfg.BrokerURL, Queue: cfg.Queue})
	if err != nil {
		store.Close()
		return nil, err
	}
	metrics.UpdateComponent("broker", true, "")

	reg := registry.New(cfg.LivenessTimeout)
	pool := peers.NewPool()

	s := &Scheduler{
		cfg:      cfg,
		registry: reg,
		store:    store,
		oracle:   placement.NewOracle(reg, store),
		pub:      pub,
		pool:     pool,
		ingress:  ingest.NewServer(store, pub, pool),
		grpc:     grpc.NewServer(),
		stopCh:   make(chan struct{}),
		logger:   log.WithComponent("scheduler"),

		reaperPeriod: cfg.ReaperPeriod,
	}
	proto.RegisterSchedulerServiceServer(s.grpc, s)
	return s, nil
}

// Run serves until ctx is canceled, then shuts everything down in
// reverse order of startup.
func (s *Scheduler) Run(ctx context.Context) error {
	rpcAddr := fmt.Sprintf(":%d", s.cfg.RPCPort)
	lis, err := net.Listen("tcp", rpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", rpcAddr, err)
	}

	s.logger.Info().Str("addr", rpcAddr).Msg("Scheduler RPC server listening")
	grpcErr := make(chan error, 1)
	go func() {
		if err := s.grpc.Serve(lis); err != nil {
			grpcErr <- err
		}
	}()

	go s.runReaper()

	httpErr := make(chan error, 1)
	httpCtx, cancelHTTP := context.WithCancel(ctx)
	defer cancelHTTP()
	go func() {
		httpErr <- s.ingress.Start(httpCtx, fmt.Sprintf(":%d", s.cfg.HTTPPort))
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-grpcErr:
	case runErr = <-httpErr:
	}

	s.logger.Info().Msg("Scheduler shutting down")
	close(s.stopCh)
	cancelHTTP()
	s.grpc.GracefulStop()
	s.pool.Close()
	if err := s.pub.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Broker close failed")
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Metadata store close failed")
	}
	return runErr
}

// runReaper drops workers whose heartbeats went stale. Placements made
// to a reaped worker are left alone; reads against them fail until the
// worker returns.
func (s *Scheduler) runReaper() {
	period := s.reaperPeriod
	if period <= 0 {
		period = types.ReaperPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			reaped := s.registry.Reap(now)
			for _, id := range reaped {
				s.logger.Warn().Str("worker_id", id).Msg("Worker reaped after missed heartbeats")
			}
			if len(reaped) > 0 {
				metrics.WorkersReaped.Add(float64(len(reaped)))
			}
			metrics.WorkersActive.Set(float64(len(s.registry.Active(now))))
		case <-s.stopCh:
			return
		}
	}
}
