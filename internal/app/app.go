package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"slot_kiosk/internal/config"
	"slot_kiosk/internal/metrics"
	"slot_kiosk/internal/reactor"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// reactorSpec - one bus subscriber started at boot
type reactorSpec struct {
	name string
	run  func(ctx context.Context) error
}

// Run boots the kiosk and blocks until ctx is cancelled or a signal arrives
func (s *App) Run(ctx context.Context) error {
	envErr := config.Load(".env")
	s.initServiceProvider()
	sp := s.ServiceProvider
	defer sp.Close()

	log := sp.Logger()
	if envErr != nil {
		log.Info("no .env file loaded", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.bootLedger(ctx); err != nil {
		return err
	}

	// every reactor subscribes before the first button is accepted
	reactors, err := s.subscribe(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range reactors {
		g.Go(func() error {
			if err := r.run(gctx); err != nil {
				return fmt.Errorf("reactor %s: %w", r.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return sp.InputService().Run(gctx)
	})

	srv := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		log.Info("starting console", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("console server: %w", err)
		}
		return nil
	})

	var metricsSrv *http.Server
	if sp.MetricsCfg().Enabled() {
		metricsSrv = metrics.StartMetricsServer(sp.MetricsCfg().Address(), sp.Registry(), sp.Health, log)
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("console shutdown", zap.Error(err))
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				log.Warn("metrics shutdown", zap.Error(err))
			}
		}
		sp.Bus().Close()
		return nil
	})

	return g.Wait()
}

// bootLedger loads the card table and writes the factory cards onto a blank medium
func (s *App) bootLedger(ctx context.Context) error {
	sp := s.ServiceProvider
	l := sp.LedgerService(ctx)
	if l == nil {
		sp.Logger().Info("card ledger disabled")
		return nil
	}
	if err := l.LoadAll(ctx); err != nil {
		return fmt.Errorf("load card table: %w", err)
	}
	provisioned, err := l.Provision(ctx, sp.FactoryCards())
	if err != nil {
		return fmt.Errorf("provision cards: %w", err)
	}
	if provisioned {
		sp.Logger().Info("factory cards written", zap.Int("cards", len(l.Records())))
	}
	return nil
}

func (s *App) subscribe(ctx context.Context) ([]reactorSpec, error) {
	sp := s.ServiceProvider
	log := sp.Logger()
	m := sp.Metrics()
	b := sp.Bus()

	var out []reactorSpec
	add := func(name string, h reactor.Handler) error {
		sub, err := b.Subscribe()
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", name, err)
		}
		out = append(out, reactorSpec{name: name, run: func(ctx context.Context) error {
			return reactor.Run(ctx, name, sub, h, log, m)
		}})
		return nil
	}

	if l := sp.LedgerService(ctx); l != nil {
		sub, err := b.Subscribe()
		if err != nil {
			return nil, fmt.Errorf("subscribe ledger: %w", err)
		}
		out = append(out, reactorSpec{name: "ledger", run: func(ctx context.Context) error {
			return l.Run(ctx, sub)
		}})
	}
	if err := add("stats", reactor.Stats(sp.StatsRepository())); err != nil {
		return nil, err
	}
	if err := add("metrics", m); err != nil {
		return nil, err
	}
	if sp.KioskCfg().Feedback() {
		feedback := reactor.Multi(
			reactor.NewLEDFeedback(reactor.LogDriver{Log: log, Name: "led"}),
			reactor.NewToneFeedback(reactor.LogDriver{Log: log, Name: "tone"}),
		)
		if err := add("feedback", feedback); err != nil {
			return nil, err
		}
	}
	if w := sp.KafkaWriter(); w != nil {
		if err := add("export", reactor.NewExport(w, sp.State().ID(), sp.PayoutTable())); err != nil {
			return nil, err
		}
	}
	return out, nil
}
