package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitecal/internal/app/commands"
	"gitecal/internal/app/dto"
	adminapp "gitecal/internal/app/handlers/admin"
	availabilityapp "gitecal/internal/app/handlers/availability"
	calendarapp "gitecal/internal/app/handlers/calendar"
	quotesapp "gitecal/internal/app/handlers/quotes"
	"gitecal/internal/app/policies"
	"gitecal/internal/app/queries"
	"gitecal/internal/domain/pricing"
	"gitecal/internal/infra/broker/kafka"
	"gitecal/internal/infra/cache"
	"gitecal/internal/infra/config"
	mongodb "gitecal/internal/infra/db/mongo"
	ginserver "gitecal/internal/infra/http/gin"
	"gitecal/internal/infra/obs"
	"gitecal/internal/infra/sources/icalfeed"
	"gitecal/internal/infra/sources/lodgify"
	"gitecal/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StoreMode = "memory"
		cfg.SourceCacheTTL = time.Hour
		cfg.HTTPClientTimeout = 15 * time.Second
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
	closers  []func() error
}

func (a application) close(logger *slog.Logger) {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	app := application{ready: func() error { return nil }}

	var (
		overrides     pricing.OverrideRepository
		periods       pricing.PeriodRepository
		blockedRanges pricing.BlockedRangeRepository
		rules         pricing.RulesRepository
	)
	switch cfg.StoreMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		overrides = mongodb.NewOverrideRepository(client.DB)
		periods = mongodb.NewPeriodRepository(client.DB)
		blockedRanges = mongodb.NewBlockedRangeRepository(client.DB)
		rules = mongodb.NewRulesRepository(client.DB)
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		overrides = memory.NewOverrideStore()
		periods = memory.NewPeriodStore()
		blockedRanges = memory.NewBlockedRangeStore()
		rules = memory.NewRulesStore()
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	bookingSource := &lodgify.Client{
		Client:     httpClient,
		BaseURL:    cfg.LodgifyAPIURL,
		APIKey:     cfg.LodgifyAPIKey,
		PropertyID: cfg.LodgifyPropertyID,
		Logger:     logger,
	}
	var feed policies.EventSource
	if cfg.ICalFeedURL != "" {
		feed = &icalfeed.Feed{Client: httpClient, URL: cfg.ICalFeedURL, Logger: logger}
	}

	sources := cache.NewSourceCache(bookingSource, feed, cfg.SourceCacheTTL)
	var eventSource policies.EventSource
	if feed != nil {
		eventSource = sources
	}

	var publisher policies.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		topic := cfg.KafkaTopicPrefix + "calendar.updated"
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, topic, nil)
		if err != nil {
			logger.Warn("kafka producer unavailable, calendar events disabled", "error", err)
		} else {
			publisher = producer
			app.closers = append(app.closers, producer.Close)
		}

		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, "gitecal-cache", nil, &kafka.Invalidator{
			Cache:  sources,
			Logger: logger,
		})
		if err != nil {
			logger.Warn("kafka consumer unavailable, cache relies on TTL alone", "error", err)
		} else {
			app.closers = append(app.closers, consumer.Close)
			go func() {
				if err := consumer.Run(ctx, []string{topic}); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("kafka consumer stopped", "error", err)
				}
			}()
		}
	}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(),
		queries.Handler[availabilityapp.GetCalendarQuery, dto.Calendar](&availabilityapp.GetCalendarHandler{
			PeriodSource:  sources,
			EventSource:   eventSource,
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blockedRanges,
			Rules:         rules,
			Logger:        logger,
		}))
	queries.RegisterHandler(queryBus, availabilityapp.CheckStayQuery{}.Key(),
		queries.Handler[availabilityapp.CheckStayQuery, dto.Verdict](&availabilityapp.CheckStayHandler{
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blockedRanges,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, quotesapp.GetQuoteQuery{}.Key(),
		queries.Handler[quotesapp.GetQuoteQuery, dto.Quote](&quotesapp.GetQuoteHandler{
			Overrides:     overrides,
			Periods:       periods,
			BlockedRanges: blockedRanges,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, calendarapp.GetOverviewQuery{}.Key(),
		queries.Handler[calendarapp.GetOverviewQuery, dto.CalendarOverview](&calendarapp.GetOverviewHandler{
			Periods:       periods,
			BlockedRanges: blockedRanges,
			Rules:         rules,
		}))
	queries.RegisterHandler(queryBus, adminapp.ListDaysQuery{}.Key(),
		queries.Handler[adminapp.ListDaysQuery, []dto.DayOverride](&adminapp.ListDaysHandler{
			Overrides: overrides,
		}))

	commandBus := commands.NewInMemoryBus()
	manageDays := &adminapp.ManageDaysHandler{
		Overrides: overrides,
		Publisher: publisher,
		Logger:    logger,
	}
	manageDays.Register(commandBus)

	app.handlers = ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Quote:        ginserver.QuoteHandler{Queries: queryBus},
		Overview:     ginserver.OverviewHandler{Queries: queryBus},
		AdminDays:    ginserver.AdminDaysHandler{Queries: queryBus, Commands: commandBus},
	}
	return app, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
