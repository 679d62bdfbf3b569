package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"veilchain/config"
	"veilchain/core"
	"veilchain/core/privacy"
	"veilchain/core/protocol"
	"veilchain/core/state"
	"veilchain/observability/logging"
	"veilchain/observability/otel"
	"veilchain/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	otelEndpoint := flag.String("otel-endpoint", "", "OTLP endpoint for traces and metrics (empty disables export)")
	otelInsecure := flag.Bool("otel-insecure", false, "Use plain HTTP for the OTLP endpoint")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("VEIL_ENV"))
	logger := logging.Setup("veild", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()
	if *otelEndpoint != "" {
		shutdown, err := otel.Init(ctx, otel.Config{
			ServiceName: "veild",
			Environment: cfg.Environment,
			Endpoint:    *otelEndpoint,
			Insecure:    *otelInsecure,
			Headers:     otel.ParseHeaders(os.Getenv("VEIL_OTEL_HEADERS")),
			Traces:      true,
			Metrics:     true,
		})
		if err != nil {
			panic(fmt.Sprintf("Failed to initialise telemetry: %v", err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("Telemetry shutdown failed", slog.Any("error", err))
			}
		}()
	}

	publicDB, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open public database: %v", err))
	}
	defer publicDB.Close()

	privateDB, err := storage.NewLevelDB(cfg.PrivateDataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open private database: %v", err))
	}
	defer privateDB.Close()

	chain, err := core.NewBlockchain(publicDB)
	if err != nil {
		panic(fmt.Sprintf("Failed to open header chain: %v", err))
	}

	groups := make([]*privacy.PrivacyGroup, 0, len(cfg.PrivacyGroups))
	for _, group := range cfg.PrivacyGroups {
		groups = append(groups, &privacy.PrivacyGroup{
			ID:      group.ID,
			Name:    group.Name,
			Members: append([]string(nil), group.Members...),
		})
	}

	schedule := protocol.NewSchedule(cfg, protocol.NewTransferProcessor)
	simulator := privacy.NewSimulator(
		chain,
		state.NewArchive(publicDB),
		schedule,
		privacy.PrivacyParameters{
			Directory:      privacy.NewMemoryDirectory(groups...),
			PrivateArchive: state.NewArchive(privateDB),
			Ledger:         privacy.NewLedger(privateDB),
		},
		logger,
	)

	selfCheck(ctx, logger, simulator, groups)

	logger.Info("veild ready",
		"network", cfg.NetworkName,
		"tip", chain.Tip().Hex(),
		"groups", len(groups))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
}

// selfCheck simulates an empty call against each configured group at the
// chain tip. Simulation never commits anything, so this exercises the whole
// private read path without touching state.
func selfCheck(ctx context.Context, logger *slog.Logger, simulator *privacy.Simulator, groups []*privacy.PrivacyGroup) {
	for _, group := range groups {
		if len(group.Members) == 0 {
			continue
		}
		result, err := simulator.Simulate(ctx, group.ID, group.Members[0],
			privacy.CallParameter{}, privacy.BlockSelector{})
		switch {
		case err != nil:
			logger.Warn("group self-check failed",
				logging.MaskField("group", group.ID), slog.Any("error", err))
		case result == nil:
			logger.Debug("group self-check skipped, no anchor block",
				logging.MaskField("group", group.ID))
		default:
			logger.Debug("group self-check complete",
				logging.MaskField("group", group.ID), "status", result.Status.String())
		}
	}
}
