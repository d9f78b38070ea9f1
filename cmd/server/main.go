package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/config"
	"github.com/garyjia/travel-forms/internal/container"
	httpserver "github.com/garyjia/travel-forms/internal/interfaces/http"
	"github.com/garyjia/travel-forms/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting travel forms service",
		zap.String("version", httpserver.Version),
		zap.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create container", zap.Error(err))
	}
	if err := app.Start(ctx); err != nil {
		logger.Fatal("Failed to start container", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close container", zap.Error(err))
		}
	}()

	services := app.Services()
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		Debug:           cfg.Logger.Level == "debug",
	}, httpserver.Services{
		Notification:   services.Notification,
		Approval:       services.Approval,
		InvoiceRequest: services.InvoiceRequest,
		ExpenseReport:  services.ExpenseReport,
		Health:         healthOf(app),
		Metrics:        app.Metrics().Handler(),
	}, container.NewServiceLogger(logger.Named("http")))

	if err := server.Start(ctx); err != nil {
		logger.Error("HTTP server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server exited successfully")
}

// healthOf reports the container's readiness and component status to the
// health check
func healthOf(app *container.Container) httpserver.HealthFunc {
	return func() (bool, map[string]string) {
		status := app.Health()
		components := make(map[string]string, len(status.Components))
		for name, component := range status.Components {
			switch {
			case component.Message != "":
				components[name] = component.Message
			case component.Healthy:
				components[name] = "ok"
			default:
				components[name] = "unhealthy"
			}
		}
		return app.Ready() && status.Overall, components
	}
}
