package types

import "context"

type (
	LogMessageType string

	LogMessage struct {
		Type    LogMessageType
		Content string
	}

	LogMessageProcessor func(message *LogMessage)

	// LineConsumer is an append-only line sink.
	LineConsumer interface {
		WriteLine(line string) error
	}

	Exec struct {
		ID string
	}

	ExecCreateOptions struct {
		ContainerID string
		Cmd         []string
	}

	ExecClient interface {
		CreateExec(ctx context.Context, opts ExecCreateOptions) (*Exec, error)

		StartExec(ctx context.Context, execID string, processor LogMessageProcessor) error
	}
)

const (
	LogMessageTypeStdout LogMessageType = "STDOUT"
	LogMessageTypeStderr LogMessageType = "STDERR"
)
