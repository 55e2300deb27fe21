package sshservice

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/baepo-cloud/baepo-wsmaster/internal/typeutil"
	"golang.org/x/crypto/ssh"
	"strings"
)

// GeneratePair creates an ed25519 key pair and stores it under the given name.
func (s *Service) GeneratePair(ctx context.Context, owner string, service string, name string) (*types.SSHPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ssh key: %w", err)
	}

	sshPublicKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ssh public key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(privateKey, name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ssh private key: %w", err)
	}

	return s.CreatePair(ctx, types.SSHPairCreateOptions{
		Owner:      owner,
		Service:    service,
		Name:       name,
		PublicKey:  typeutil.Ptr(strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPublicKey))) + " " + name),
		PrivateKey: typeutil.Ptr(string(pem.EncodeToMemory(block))),
	})
}
