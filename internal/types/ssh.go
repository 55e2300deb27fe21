package types

import (
	"context"
	"time"
)

type (
	SSHPair struct {
		ID         string `gorm:"primaryKey"`
		Owner      string `gorm:"uniqueIndex:idx_ssh_pair_owner_service_name"`
		Service    string `gorm:"uniqueIndex:idx_ssh_pair_owner_service_name"`
		Name       string `gorm:"uniqueIndex:idx_ssh_pair_owner_service_name"`
		PublicKey  *string
		PrivateKey *string
		CreatedAt  time.Time
	}

	SSHPairCreateOptions struct {
		Owner      string
		Service    string
		Name       string
		PublicKey  *string
		PrivateKey *string
	}

	SSHManager interface {
		GetPairs(ctx context.Context, owner string, service string) ([]*SSHPair, error)
	}
)

const SSHServiceMachine = "machine"

func (p *SSHPair) HasPublicKey() bool {
	return p.PublicKey != nil && *p.PublicKey != ""
}

type SSHService interface {
	SSHManager

	CreatePair(ctx context.Context, opts SSHPairCreateOptions) (*SSHPair, error)

	GeneratePair(ctx context.Context, owner string, service string, name string) (*SSHPair, error)

	DeletePair(ctx context.Context, owner string, service string, name string) error
}
