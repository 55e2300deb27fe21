package registryservice

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"log/slog"
)

func (s *Service) SaveWorkspace(ctx context.Context, opts types.WorkspaceSaveOptions) (*types.Workspace, error) {
	var workspace *types.Workspace
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&workspace, "id = ?", opts.WorkspaceID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			workspace = &types.Workspace{ID: opts.WorkspaceID, Owner: opts.Owner}
		} else if err != nil {
			return fmt.Errorf("failed to find workspace: %w", err)
		} else if workspace.Owner != opts.Owner {
			return types.ErrForbidden
		}

		workspace.Namespace = opts.Namespace
		if workspace.Namespace == "" {
			workspace.Namespace = opts.Owner
		}
		workspace.Name = opts.Name
		workspace.Status = opts.Status

		if err = tx.Omit(clause.Associations).Save(workspace).Error; err != nil {
			return fmt.Errorf("failed to save workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("workspace saved",
		slog.String("workspace-id", workspace.ID),
		slog.String("status", string(workspace.Status)))
	return workspace, nil
}
