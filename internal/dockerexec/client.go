package dockerexec

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"log/slog"
)

// DockerAPI is the subset of the docker engine client used to run execs.
type DockerAPI interface {
	ContainerExecCreate(ctx context.Context, container string, options container.ExecOptions) (dockertypes.IDResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, config container.ExecAttachOptions) (dockertypes.HijackedResponse, error)
	ContainerExecInspect(ctx context.Context, execID string) (container.ExecInspect, error)
}

type Client struct {
	log    *slog.Logger
	docker DockerAPI
}

var _ types.ExecClient = (*Client)(nil)

func New(docker DockerAPI) *Client {
	return &Client{
		log:    slog.With(slog.String("component", "dockerexec")),
		docker: docker,
	}
}

func (c *Client) CreateExec(ctx context.Context, opts types.ExecCreateOptions) (*types.Exec, error) {
	if opts.ContainerID == "" {
		return nil, fmt.Errorf("failed to create exec: container id is empty")
	}

	res, err := c.docker.ContainerExecCreate(ctx, opts.ContainerID, container.ExecOptions{
		AttachStdout: true,
		AttachStderr: true,
		Cmd:          opts.Cmd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exec: %w", err)
	}

	return &types.Exec{ID: res.ID}, nil
}

// StartExec runs the exec and blocks until its output streams close. Output is
// split into lines and handed to the processor. A non-zero exit code is
// returned as an error.
func (c *Client) StartExec(ctx context.Context, execID string, processor types.LogMessageProcessor) error {
	hijacked, err := c.docker.ContainerExecAttach(ctx, execID, container.ExecAttachOptions{})
	if err != nil {
		return fmt.Errorf("failed to attach exec: %w", err)
	}
	defer hijacked.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			hijacked.Close()
		case <-done:
		}
	}()

	stdout := newLineWriter(types.LogMessageTypeStdout, processor)
	stderr := newLineWriter(types.LogMessageTypeStderr, processor)
	_, err = stdcopy.StdCopy(stdout, stderr, hijacked.Reader)
	stdout.Flush()
	stderr.Flush()
	if ctx.Err() != nil {
		return fmt.Errorf("failed to read exec output: %w", ctx.Err())
	} else if err != nil {
		return fmt.Errorf("failed to read exec output: %w", err)
	}

	inspect, err := c.docker.ContainerExecInspect(ctx, execID)
	if err != nil {
		return fmt.Errorf("failed to inspect exec: %w", err)
	}

	c.log.Debug("exec finished", slog.String("exec-id", execID), slog.Int("exit-code", inspect.ExitCode))
	if inspect.ExitCode != 0 {
		return fmt.Errorf("exec %s exited with code %d", execID, inspect.ExitCode)
	}

	return nil
}
