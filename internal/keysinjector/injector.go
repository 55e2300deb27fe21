package keysinjector

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/metrics"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/sourcegraph/conc/panics"
	"log/slog"
	"sync"
	"time"
)

type Injector struct {
	log         *slog.Logger
	eventBus    types.MachineEventBus
	registry    types.MachineRegistry
	sshManager  types.SSHManager
	execClient  types.ExecClient
	metrics     *metrics.Metrics
	execTimeout time.Duration
	unsubscribe func()
	lock        sync.Mutex
}

func New(
	eventBus types.MachineEventBus,
	registry types.MachineRegistry,
	sshManager types.SSHManager,
	execClient types.ExecClient,
	config *types.Config,
	m *metrics.Metrics,
) *Injector {
	return &Injector{
		log:         slog.With(slog.String("component", "keysinjector")),
		eventBus:    eventBus,
		registry:    registry,
		sshManager:  sshManager,
		execClient:  execClient,
		metrics:     m,
		execTimeout: config.KeysInjectionTimeout,
	}
}

func (i *Injector) Start(ctx context.Context) error {
	i.lock.Lock()
	defer i.lock.Unlock()

	if i.unsubscribe == nil {
		i.unsubscribe = i.eventBus.SubscribeToEvents(i.HandleEvent)
	}
	return nil
}

func (i *Injector) Stop(ctx context.Context) error {
	i.lock.Lock()
	defer i.lock.Unlock()

	if i.unsubscribe != nil {
		i.unsubscribe()
		i.unsubscribe = nil
	}
	return nil
}

// HandleEvent injects the owner's public ssh keys into a machine that just
// became running. Failures are logged and never escape the handler.
func (i *Injector) HandleEvent(ctx context.Context, event *types.MachineStatusEvent) {
	i.metrics.ObserveMachineEvent(string(event.EventType))
	if event.EventType != types.MachineStatusEventTypeRunning {
		return
	}

	log := i.log.With(
		slog.String("workspace-id", event.WorkspaceID),
		slog.String("machine-id", event.MachineID))
	recovered := panics.Try(func() {
		if err := i.injectKeys(ctx, log, event); err != nil {
			i.metrics.ObserveKeysInjection(metrics.InjectionResultFailed)
			log.Error("failed to inject ssh keys", slog.Any("error", err))
		}
	})
	if recovered != nil {
		i.metrics.ObserveKeysInjection(metrics.InjectionResultFailed)
		log.Error("ssh keys injection panicked", slog.Any("error", recovered.AsError()))
	}
}
