package sshservice

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
)

func (s *Service) GetPairs(ctx context.Context, owner string, service string) ([]*types.SSHPair, error) {
	var pairs []*types.SSHPair
	err := s.db.WithContext(ctx).
		Where("owner = ? AND service = ?", owner, service).
		Order("created_at, name").
		Find(&pairs).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ssh pairs: %w", err)
	}

	return pairs, nil
}
