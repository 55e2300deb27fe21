package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/agenthealth"
	"github.com/baepo-cloud/baepo-wsmaster/internal/apiserver"
	"github.com/baepo-cloud/baepo-wsmaster/internal/dockerexec"
	"github.com/baepo-cloud/baepo-wsmaster/internal/eventbus"
	"github.com/baepo-cloud/baepo-wsmaster/internal/fxlog"
	"github.com/baepo-cloud/baepo-wsmaster/internal/keysinjector"
	"github.com/baepo-cloud/baepo-wsmaster/internal/logmanager"
	"github.com/baepo-cloud/baepo-wsmaster/internal/metrics"
	"github.com/baepo-cloud/baepo-wsmaster/internal/natsbridge"
	"github.com/baepo-cloud/baepo-wsmaster/internal/registryservice"
	"github.com/baepo-cloud/baepo-wsmaster/internal/sshservice"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/docker/docker/client"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

func main() {
	fx.New(
		fxlog.Logger(),
		fx.Provide(provideConfig),
		fx.Provide(provideGORM),
		fx.Provide(providePrometheus),
		fx.Provide(metrics.New),
		fx.Provide(provideEventBus),
		fx.Provide(provideLogManager),
		fx.Provide(provideDockerClient),
		fx.Provide(fx.Annotate(dockerexec.New, fx.As(new(types.ExecClient)))),
		fx.Provide(fx.Annotate(registryservice.New, fx.As(new(types.RegistryService)))),
		fx.Provide(fx.Annotate(sshservice.New, fx.As(new(types.SSHService)))),
		fx.Provide(func(registry types.RegistryService) types.MachineRegistry { return registry }),
		fx.Provide(func(service types.SSHService) types.SSHManager { return service }),
		fx.Provide(provideHealthService),
		fx.Provide(provideMetricsHandler),
		fx.Provide(apiserver.New),
		fx.Provide(keysinjector.New),
		fx.Provide(natsbridge.New),
		fx.Invoke(func(lc fx.Lifecycle, injector *keysinjector.Injector) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return injector.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return injector.Stop(ctx)
				},
			})
		}),
		fx.Invoke(func(lc fx.Lifecycle, bridge *natsbridge.Bridge) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return bridge.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return bridge.Stop(ctx)
				},
			})
		}),
		fx.Invoke(func(lc fx.Lifecycle, server *apiserver.Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return server.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return server.Stop(ctx)
				},
			})
		}),
	).Run()
}

func provideConfig() (*types.Config, error) {
	config := types.Config{
		APIAddr:          os.Getenv("WSMASTER_API_ADDR"),
		StorageDirectory: os.Getenv("WSMASTER_STORAGE_DIRECTORY"),
		JWTSecret:        os.Getenv("WSMASTER_JWT_SECRET"),
		NatsURL:          os.Getenv("WSMASTER_NATS_URL"),
		NatsSubject:      os.Getenv("WSMASTER_NATS_SUBJECT"),
	}
	if config.APIAddr == "" {
		config.APIAddr = ":8080"
	}
	if config.StorageDirectory == "" {
		config.StorageDirectory = "/var/lib/wsmaster"
	}
	if config.NatsSubject == "" {
		config.NatsSubject = "machines.events"
	}
	if config.JWTSecret == "" {
		return nil, errors.New("WSMASTER_JWT_SECRET env variable required")
	}

	var err error
	if config.AgentPingTimeout, err = getDurationMs("WSMASTER_AGENT_PING_TIMEOUT_MS", 1000); err != nil {
		return nil, err
	} else if config.AgentPingTimeout <= 0 {
		return nil, errors.New("WSMASTER_AGENT_PING_TIMEOUT_MS env variable must be positive")
	}
	if config.KeysInjectionTimeout, err = getDurationMs("WSMASTER_KEYS_INJECTION_TIMEOUT_MS", 60000); err != nil {
		return nil, err
	}
	if config.EventWorkers, err = getInt("WSMASTER_EVENT_WORKERS", 16); err != nil {
		return nil, err
	}
	if config.HealthRateLimit, err = getFloat("WSMASTER_HEALTH_RATE_LIMIT", 10); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(config.StorageDirectory) {
		absPath, err := filepath.Abs(config.StorageDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of the storage directory: %w", err)
		}
		config.StorageDirectory = absPath
	}
	if err = os.MkdirAll(config.StorageDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &config, nil
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s env variable must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s env variable must be a number: %w", key, err)
	}
	return parsed, nil
}

func getDurationMs(key string, fallback int) (time.Duration, error) {
	ms, err := getInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func provideGORM(config *types.Config) (*gorm.DB, error) {
	dbName := "wsmaster.db?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
	db, err := gorm.Open(sqlite.Open(path.Join(config.StorageDirectory, dbName)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&types.Workspace{},
		&types.Machine{},
		&types.SSHPair{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func providePrometheus() (*prometheus.Registry, prometheus.Registerer) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry, registry
}

func provideMetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func provideEventBus(lc fx.Lifecycle, config *types.Config) types.MachineEventBus {
	bus := eventbus.NewBus[*types.MachineStatusEvent](config.EventWorkers)

	var cancelDispatcher context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcherCtx, cancel := context.WithCancel(context.Background())
			cancelDispatcher = cancel
			go bus.StartDispatcher(dispatcherCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancelDispatcher != nil {
				cancelDispatcher()
			}
			return nil
		},
	})
	return bus
}

func provideLogManager(lc fx.Lifecycle, config *types.Config) (types.MachineLogManager, error) {
	manager, err := logmanager.New(config)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return manager.Close()
		},
	})
	return manager, nil
}

func provideDockerClient(lc fx.Lifecycle) (dockerexec.DockerAPI, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := dockerClient.Ping(ctx); err != nil {
				slog.Warn("docker engine is not reachable, ssh keys injection will fail", slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dockerClient.Close()
		},
	})
	return dockerClient, nil
}

func provideHealthService(registry types.RegistryService, config *types.Config, m *metrics.Metrics) types.AgentHealthService {
	checkers := []types.AgentHealthChecker{
		agenthealth.NewWsAgentChecker(agenthealth.NewProber(nil), config, m),
	}
	return agenthealth.NewService(registry, checkers)
}
