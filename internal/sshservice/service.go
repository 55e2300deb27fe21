package sshservice

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
	"log/slog"
)

type Service struct {
	log *slog.Logger
	db  *gorm.DB
}

var _ types.SSHService = (*Service)(nil)

func New(db *gorm.DB) *Service {
	return &Service{
		log: slog.With(slog.String("component", "sshservice")),
		db:  db,
	}
}
