package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"dollhouse-lurker/internal/adapters/discord"
	"dollhouse-lurker/internal/adapters/discord/commands"
	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/adapters/storage"
	"dollhouse-lurker/internal/adapters/storage/jsonfile"
	"dollhouse-lurker/internal/adapters/storage/postgres"
	"dollhouse-lurker/internal/config"
	"dollhouse-lurker/internal/core/ports"
	"dollhouse-lurker/internal/core/services"
	"dollhouse-lurker/internal/core/services/cooldown"
	"dollhouse-lurker/internal/core/services/pipeline"
	"dollhouse-lurker/internal/core/services/progression"
	"dollhouse-lurker/internal/core/services/triggers"
	"dollhouse-lurker/internal/core/services/welcome"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type closer interface {
	Close()
}

type App struct {
	config             *config.Config
	store              closer
	session            *discordgo.Session
	queue              *discord.EventQueue
	cooldowns          map[string]*cooldown.Tracker
	metricsServer      *http.Server
	runCancel          context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

// globalRand draws from the goroutine-safe top-level source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	backend, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	docs, err := storage.Open(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("open documents: %w", err)
	}

	xpCooldowns := cooldown.NewTracker(cfg.XPCooldown)
	divaCooldowns := cooldown.NewTracker(cfg.DivaCooldown)
	rnd := globalRand{}

	levels := progression.NewEngine(docs, xpCooldowns, rnd)
	triggerEngine := triggers.NewEngine(triggers.DefaultTables(), divaCooldowns, rnd)

	session, err := discord.NewSession(cfg)
	if err != nil {
		docs.Close()
		return nil, err
	}

	notifier := discord.NewAdapter(session)
	directory := discord.NewDirectory(session.State, session)
	queue := discord.NewEventQueue(cfg.EventQueueSize)

	welcomer := welcome.NewService(docs, directory, notifier)
	messages := pipeline.NewService(triggerEngine, discord.NewSerialLevels(queue, levels), docs, directory, notifier)

	router := commands.NewRouter()
	botHandler := &commands.BotHandler{
		Service: services.NewConfigurationService(discord.NewSerialConfigs(queue, docs)),
		Levels:  levels,
		Members: directory,
	}
	botHandler.Routes(router)

	discord.NewEventHandlers(messages, welcomer, router, directory).Register(session)

	return &App{
		config:  cfg,
		store:   docs,
		session: session,
		queue:   queue,
		cooldowns: map[string]*cooldown.Tracker{
			"xp":   xpCooldowns,
			"diva": divaCooldowns,
		},
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.DocumentStore, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return store, nil
	default:
		store, err := jsonfile.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		return store, nil
	}
}

func (a *App) Run() error {
	runCtx, cancel := context.WithCancel(context.Background())
	a.runCancel = cancel

	// The queue must be draining before the gateway starts delivering.
	go a.queue.Run(runCtx)

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	a.registeredCommands = commands.RegisterCommands(
		a.session,
		commands.GetApplicationCommands(),
		a.session.State.User.ID,
		a.config.GuildID,
	)

	go a.pruneCooldowns(runCtx)

	if a.config.MetricsAddr != "" {
		a.startMetricsServer()
	}

	return nil
}

func (a *App) pruneCooldowns(ctx context.Context) {
	ticker := time.NewTicker(a.config.CooldownPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.pruneOnce(now)
		}
	}
}

func (a *App) pruneOnce(now time.Time) {
	for table, tracker := range a.cooldowns {
		if removed := tracker.Prune(now); removed > 0 {
			slog.Debug("Pruned cooldown entries", "table", table, "removed", removed)
		}
		metrics.CooldownEntries.WithLabelValues(table).Set(float64(tracker.Len()))
	}
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	// Close the gateway first so new events stop arriving before the queue stops.
	if a.session != nil {
		if a.config.GuildID != "" && a.session.State != nil && a.session.State.User != nil {
			commands.CleanupCommands(a.session, a.registeredCommands, a.session.State.User.ID, a.config.GuildID)
		}
		if err := a.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}

	if a.runCancel != nil {
		a.runCancel()
		select {
		case <-a.queue.Done():
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("wait for event queue: %w", ctx.Err()))
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}

	return errors.Join(errs...)
}
