package registryservice

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
	"log/slog"
)

type Service struct {
	log        *slog.Logger
	db         *gorm.DB
	logManager types.MachineLogManager
	eventBus   types.MachineEventBus
}

var _ types.RegistryService = (*Service)(nil)

func New(db *gorm.DB, logManager types.MachineLogManager, eventBus types.MachineEventBus) *Service {
	return &Service{
		log:        slog.With(slog.String("component", "registryservice")),
		db:         db,
		logManager: logManager,
		eventBus:   eventBus,
	}
}
