package sshservice

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/nrednav/cuid2"
	"golang.org/x/crypto/ssh"
	"gorm.io/gorm"
	"log/slog"
	"strings"
)

func (s *Service) CreatePair(ctx context.Context, opts types.SSHPairCreateOptions) (*types.SSHPair, error) {
	pair := &types.SSHPair{
		ID:         cuid2.Generate(),
		Owner:      opts.Owner,
		Service:    opts.Service,
		Name:       opts.Name,
		PrivateKey: opts.PrivateKey,
	}
	if opts.PublicKey != nil {
		publicKey, err := normalizePublicKey(*opts.PublicKey)
		if err != nil {
			return nil, err
		}
		pair.PublicKey = &publicKey
	}

	err := s.db.WithContext(ctx).Create(pair).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, types.ErrSSHPairAlreadyExists
	} else if err != nil {
		return nil, fmt.Errorf("failed to create ssh pair: %w", err)
	}

	s.log.Info("ssh pair created",
		slog.String("owner", pair.Owner),
		slog.String("service", pair.Service),
		slog.String("name", pair.Name))
	return pair, nil
}

// normalizePublicKey checks an authorized_keys formatted key and returns it on a
// single line, so it can be safely appended to an authorized_keys file.
func normalizePublicKey(value string) (string, error) {
	publicKey, comment, _, rest, err := ssh.ParseAuthorizedKey([]byte(value))
	if err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidPublicKey, err)
	}
	if len(strings.TrimSpace(string(rest))) > 0 {
		return "", fmt.Errorf("%w: expected a single key", types.ErrInvalidPublicKey)
	}

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(publicKey)))
	if comment != "" {
		line += " " + comment
	}
	return line, nil
}
