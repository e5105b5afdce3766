package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/BalanceHunter/internal/config"
	"github.com/Amr-9/BalanceHunter/internal/logging"
	"github.com/Amr-9/BalanceHunter/internal/metrics"
	"github.com/Amr-9/BalanceHunter/internal/pipeline"
	"github.com/Amr-9/BalanceHunter/internal/store"
	"github.com/Amr-9/BalanceHunter/internal/ui"
	"github.com/Amr-9/BalanceHunter/pkg/balance"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/generator/cpu"
	"github.com/Amr-9/BalanceHunter/pkg/targets"
)

func runHunt(cmd *cobra.Command, cfg config.Config) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	ctx, log := logging.WithAttrs(logging.Inject(cmd.Context(), logger), zap.String("run_id", runID))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// a second signal kills the process instead of waiting for the drain
		stop()
	}()

	network := cfg.NetworkValue()
	codec, err := cpu.CodecFor(network)
	if err != nil {
		return err
	}
	console := ui.NewConsole(cmd.OutOrStdout(), codec, cfg.Quiet)
	cmd.SilenceErrors = true
	defer func() {
		if err != nil {
			console.Error(err)
		}
	}()

	idx, strategy, err := buildIndex(console, cfg, network, codec)
	if err != nil {
		return err
	}

	gen, err := cpu.NewCPUGenerator(network)
	if err != nil {
		return err
	}
	console.Notice("Generating %s keys on %s with %d lookup workers.", network, gen.Name(), cfg.Workers)

	fetcher, err := balance.New(ctx, network, cfg.Balance())
	if err != nil {
		return err
	}
	defer balance.Close(fetcher)
	if cfg.RPC == "" {
		log.Warn("no balance endpoint configured, every balance counts as zero")
	}

	p, err := pipeline.New(cfg.Pipeline(), gen, idx, fetcher, console)
	if err != nil {
		return err
	}

	if addr := cfg.MetricsAddr(); addr != "" {
		srv := metrics.NewServer(addr, p, metrics.NewRegistry(p, network.String()))
		srv.Set("run_id", runID)
		srv.Set("network", network.String())
		srv.Set("strategy", string(strategy))
		srv.Set("generator", gen.Name())
		srv.Set("fps", cfg.FPS)
		srv.Set("start_time", time.Now().Format(time.ANSIC))
		if cfg.Timeout > 0 {
			srv.Set("timeout", cfg.Timeout.String())
		} else {
			srv.Set("timeout", "forever")
		}
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	console.Header()
	summary, runErr := p.Run(ctx)
	console.Summary(summary, idx.Len())

	if err := saveFunded(ctx, console, cfg, runID, network, codec, summary); err != nil {
		log.Error("failed to save funded keys", zap.Error(err))
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

func buildIndex(console *ui.Console, cfg config.Config, network generator.Network, codec generator.Codec) (targets.Index, targets.Strategy, error) {
	var (
		ids []string
		err error
	)
	start := time.Now()
	if len(cfg.Targets) > 0 {
		console.Notice("Attacking specific %s addresses:", network)
		ids, err = targets.Normalize(cfg.Targets, codec)
	} else {
		console.Notice("Loading known public %s addresses:", network)
		ids, err = targets.LoadFile(cfg.Addresses, codec)
	}
	if err != nil {
		return nil, "", err
	}

	strategy := targets.Pick(cfg.Strategy)
	idx, err := targets.New(strategy, ids)
	if err != nil {
		return nil, "", err
	}
	console.Loaded(idx.Len(), time.Since(start), string(strategy), idx.SizeBytes())
	return idx, strategy, nil
}

func saveFunded(ctx context.Context, console *ui.Console, cfg config.Config, runID string, network generator.Network, codec generator.Codec, summary pipeline.Summary) error {
	found := store.FromSummary(runID, network, codec, summary, time.Now())
	if len(found) == 0 {
		return nil
	}

	var writers store.Multi
	var dests []string
	if cfg.FoundFile != "" {
		w, err := store.OpenFile(cfg.FoundFile)
		if err != nil {
			return err
		}
		writers = append(writers, w)
		dests = append(dests, cfg.FoundFile)
	}
	if cfg.FoundDB != "" {
		w, err := store.OpenSQLite(context.WithoutCancel(ctx), cfg.FoundDB)
		if err != nil {
			return errors.Join(err, writers.Close())
		}
		writers = append(writers, w)
		dests = append(dests, cfg.FoundDB)
	}
	if len(writers) == 0 {
		return nil
	}

	n, err := store.Save(context.WithoutCancel(ctx), writers, found)
	if cerr := writers.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	for _, dest := range dests {
		console.Saved(dest, n)
	}
	return err
}
