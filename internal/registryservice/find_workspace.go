package registryservice

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
)

// FindWorkspace looks a workspace up by id or by namespace and name. A key
// without namespace resolves in the namespace named after the subject.
func (s *Service) FindWorkspace(ctx context.Context, subject string, key types.WorkspaceKey) (*types.Workspace, error) {
	query := s.db.WithContext(ctx).
		Preload("Machines", func(db *gorm.DB) *gorm.DB {
			return db.Order("machines.created_at")
		})
	if key.IsID() {
		query = query.Where("workspaces.id = ?", key.ID)
	} else {
		namespace := key.Namespace
		if namespace == "" {
			namespace = subject
		}
		query = query.Where("workspaces.namespace = ? AND workspaces.name = ?", namespace, key.Name)
	}

	var workspace *types.Workspace
	err := query.First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrWorkspaceNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.Owner != subject {
		return nil, types.ErrForbidden
	}

	return workspace, nil
}
