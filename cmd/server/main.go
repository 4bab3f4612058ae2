package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	// Application
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/binding"
	applicationPort "github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
	"github.com/dreschagin/spacex-launch-dashboard/internal/application/usecase"

	// Domain
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/service"

	// Infrastructure
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/dataset"
	natsInfra "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/messaging/nats"
	wsInfra "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/observability/cloudwatch"
	obsprom "github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/observability/prometheus"
	"github.com/dreschagin/spacex-launch-dashboard/internal/infrastructure/render/gochart"

	// Interfaces
	httpInterface "github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/handler"
	"github.com/dreschagin/spacex-launch-dashboard/internal/interfaces/http/middleware"

	// Shared
	"github.com/dreschagin/spacex-launch-dashboard/pkg/config"
	"github.com/dreschagin/spacex-launch-dashboard/pkg/logger"
)

func main() {
	// 1. Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализируем logger
	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.Info("Starting SpaceX Launch Records Dashboard")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. CloudWatch Logs
	var logsPublisher *cloudwatch.LogsPublisher
	if cfg.CloudWatch.Enabled && cfg.CloudWatch.LogGroupName != "" {
		logsPublisher, err = cloudwatch.NewLogsPublisher(ctx, cloudwatch.LogsPublisherConfig{
			LogGroupName:    cfg.CloudWatch.LogGroupName,
			LogStreamName:   cfg.CloudWatch.LogStreamName,
			Region:          cfg.CloudWatch.Region,
			Endpoint:        cfg.CloudWatch.Endpoint,
			AccessKeyID:     cfg.CloudWatch.AccessKeyID,
			SecretAccessKey: cfg.CloudWatch.SecretAccessKey,
			FlushInterval:   cfg.CloudWatch.FlushInterval,
			AutoCreate:      true,
		})
		if err != nil {
			log.Error("Failed to initialize CloudWatch logs publisher", err)
			os.Exit(1)
		}
		log.AddHook(logsPublisher.Hook())
		log.Info("CloudWatch logs publisher initialized", "group", cfg.CloudWatch.LogGroupName)
	}

	// 4. Загружаем таблицу запусков. Без данных сервер не стартует
	repo, closeRepo, err := dataset.Open(ctx, cfg.Dataset)
	if err != nil {
		log.Error("Failed to initialize dataset source", err, "source", string(cfg.Dataset.Source))
		os.Exit(1)
	}

	table, err := usecase.NewLoadLaunchTableUseCase(repo, log).Execute(ctx)
	if cerr := closeRepo(); cerr != nil {
		log.Warn("Failed to close dataset source", "error", cerr.Error())
	}
	if err != nil {
		log.Error("Failed to load launch table", err, "source", repo.Source())
		os.Exit(1)
	}

	// 5. Dependency Injection - Domain Layer
	scatterMode, err := service.ParseScatterFilterMode(cfg.Dashboard.ScatterFilterMode)
	if err != nil {
		log.Error("Invalid scatter filter mode", err)
		os.Exit(1)
	}
	aggregator := service.NewLaunchAggregator(scatterMode)

	// 6. Dependency Injection - Application Layer (Use Cases)
	getPieChartUC := usecase.NewGetPieChartUseCase(table, aggregator, log)
	getScatterChartUC := usecase.NewGetScatterChartUseCase(table, aggregator, log)
	getSiteOptionsUC := usecase.NewGetSiteOptionsUseCase(table)

	rules, err := binding.NewDashboardTable(getPieChartUC, getScatterChartUC)
	if err != nil {
		log.Error("Failed to build callback table", err)
		os.Exit(1)
	}

	hub := wsInfra.NewHub(log)

	// 7. Observability: Prometheus, CloudWatch metrics, NATS
	var callbackMetrics []applicationPort.CallbackMetricsPublisher
	var promMetrics *obsprom.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		promMetrics = obsprom.New(registry, hub.ClientCount)
		callbackMetrics = append(callbackMetrics, promMetrics)
		log.Info("Prometheus metrics enabled", "path", cfg.Metrics.Path)
	}

	var cwMetrics *cloudwatch.MetricsPublisher
	if cfg.CloudWatch.Enabled {
		cwMetrics, err = cloudwatch.NewMetricsPublisher(ctx, cloudwatch.MetricsPublisherConfig{
			Namespace:         cfg.CloudWatch.Namespace,
			Region:            cfg.CloudWatch.Region,
			Endpoint:          cfg.CloudWatch.Endpoint,
			AccessKeyID:       cfg.CloudWatch.AccessKeyID,
			SecretAccessKey:   cfg.CloudWatch.SecretAccessKey,
			DefaultDimensions: map[string]string{"Dataset": string(cfg.Dataset.Source)},
			FlushInterval:     cfg.CloudWatch.FlushInterval,
		}, log)
		if err != nil {
			log.Error("Failed to initialize CloudWatch metrics publisher", err)
			os.Exit(1)
		}
		callbackMetrics = append(callbackMetrics, cwMetrics)
		log.Info("CloudWatch metrics publisher initialized", "namespace", cfg.CloudWatch.Namespace)
	} else {
		log.Warn("CloudWatch publishing is disabled")
	}

	var interactionPublisher applicationPort.InteractionPublisher
	if cfg.NATS.Enabled {
		publisherImpl, initErr := natsInfra.NewInteractionPublisher(cfg.NATS.URL, cfg.NATS.Subject, log)
		if initErr != nil {
			log.Warn("Failed to connect to NATS, continuing without interaction events", "error", initErr.Error())
		} else {
			interactionPublisher = publisherImpl
			defer interactionPublisher.Close()
			log.Info("NATS interaction publisher initialized", "url", cfg.NATS.URL, "subject", cfg.NATS.Subject)
		}
	} else {
		log.Warn("NATS interaction publishing is disabled")
	}

	tracker := usecase.NewTrackInteractionUseCase(interactionPublisher, log, callbackMetrics...)
	rules.Observe(tracker)

	// 8. Dependency Injection - Interfaces Layer (HTTP Handlers)
	renderer := gochart.NewRenderer(0, 0)
	initial := binding.InitialState(table)

	limiter := middleware.NewIPRateLimiter(ctx, cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
	if len(cfg.Security.TrustedProxies) > 0 {
		limiter.TrustProxies(cfg.Security.TrustedProxies)
		log.Info("Rate limiter trusts forwarded headers", "proxies", len(cfg.Security.TrustedProxies))
	}

	var instrumentation httpInterface.Instrumentation
	if promMetrics != nil {
		limiter.OnDrop(promMetrics.RateLimitDropped.Inc)
		instrumentation = promMetrics
	}

	router := httpInterface.NewRouter(
		handler.NewDashboardHandler(
			usecase.NewGetDashboardUseCase(table, rules, getSiteOptionsUC, renderer, log),
			getSiteOptionsUC,
			log,
		),
		handler.NewChartAPIHandler(
			getPieChartUC,
			getScatterChartUC,
			getSiteOptionsUC,
			usecase.NewDispatchUpdateUseCase(rules, renderer, log),
			renderer,
			initial,
			log,
		),
		handler.NewWebSocketHandler(hub, rules, initial, renderer, cfg.Security.AllowedOrigins, log),
		limiter,
		instrumentation,
		cfg.Metrics.Path,
		log,
	)

	// 9. Настраиваем HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		log.Info("HTTP server starting", "addr", server.Addr, "launches", table.Len())
		log.Info("Dashboard available at http://" + server.Addr)
		router.SetReady(true)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 10. Graceful shutdown по сигналу или при падении сервера
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutdown signal received, starting graceful shutdown...")
		router.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	tracker.Flush(shutdownCtx)
	if cwMetrics != nil {
		if err := cwMetrics.Close(shutdownCtx); err != nil {
			log.Error("Failed to close CloudWatch metrics publisher", err)
		}
	}
	if logsPublisher != nil {
		log.Info("Flushing CloudWatch logs buffer...")
		if err := logsPublisher.Close(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close CloudWatch logs publisher: %v\n", err)
		}
	}

	if runErr != nil {
		log.Error("Server stopped with error", runErr)
		os.Exit(1)
	}
	log.Info("Server stopped gracefully")
}
