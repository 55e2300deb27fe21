package types

import "errors"

var (
	ErrInvalidKeyFormat     = errors.New("invalid composite key format")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrMachineNotFound      = errors.New("machine not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrAgentCheckerNotFound = errors.New("agent health checker not found")
	ErrSSHPairNotFound      = errors.New("ssh pair not found")
	ErrSSHPairAlreadyExists = errors.New("ssh pair already exists")
	ErrInvalidPublicKey     = errors.New("invalid public key")
)
