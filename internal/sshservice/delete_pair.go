package sshservice

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"log/slog"
)

func (s *Service) DeletePair(ctx context.Context, owner string, service string, name string) error {
	result := s.db.WithContext(ctx).
		Where("owner = ? AND service = ? AND name = ?", owner, service, name).
		Delete(&types.SSHPair{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete ssh pair: %w", result.Error)
	} else if result.RowsAffected == 0 {
		return types.ErrSSHPairNotFound
	}

	s.log.Info("ssh pair deleted",
		slog.String("owner", owner),
		slog.String("service", service),
		slog.String("name", name))
	return nil
}
