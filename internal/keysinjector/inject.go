package keysinjector

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/metrics"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"log/slog"
	"strings"
)

const ErrorLinePrefix = "Error of injection public ssh keys. "

func (i *Injector) injectKeys(ctx context.Context, log *slog.Logger, event *types.MachineStatusEvent) error {
	machine, err := i.registry.GetMachine(ctx, event.WorkspaceID, event.MachineID)
	if err != nil {
		return fmt.Errorf("failed to find machine: %w", err)
	}

	pairs, err := i.sshManager.GetPairs(ctx, machine.Owner, types.SSHServiceMachine)
	if err != nil {
		return fmt.Errorf("failed to get ssh pairs: %w", err)
	}

	var publicKeys []string
	for _, pair := range pairs {
		if pair.HasPublicKey() {
			publicKeys = append(publicKeys, *pair.PublicKey)
		}
	}
	if len(publicKeys) == 0 {
		i.metrics.ObserveKeysInjection(metrics.InjectionResultSkipped)
		return nil
	}

	if i.execTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.execTimeout)
		defer cancel()
	}

	exec, err := i.execClient.CreateExec(ctx, types.ExecCreateOptions{
		ContainerID: machine.Runtime.ContainerID(),
		Cmd:         []string{"/bin/bash", "-c", BuildInjectionCommand(publicKeys)},
	})
	if err != nil {
		return fmt.Errorf("failed to create exec: %w", err)
	}

	log.Debug("injecting ssh keys", slog.Int("keys", len(publicKeys)), slog.String("exec-id", exec.ID))
	err = i.execClient.StartExec(ctx, exec.ID, newErrorLogProcessor(log, machine.Logger))
	if err != nil {
		return fmt.Errorf("failed to start exec: %w", err)
	}

	i.metrics.ObserveKeysInjection(metrics.InjectionResultSucceeded)
	return nil
}

// BuildInjectionCommand returns a shell command appending every public key to
// ~/.ssh/authorized_keys. Appending an already present key is harmless.
func BuildInjectionCommand(publicKeys []string) string {
	var command strings.Builder
	command.WriteString("mkdir ~/.ssh/ -p")
	for _, publicKey := range publicKeys {
		command.WriteString("&& echo '")
		command.WriteString(quote(strings.TrimSpace(publicKey)))
		command.WriteString("' >> ~/.ssh/authorized_keys")
	}
	return command.String()
}

func quote(value string) string {
	return strings.ReplaceAll(value, "'", `'\''`)
}

func newErrorLogProcessor(log *slog.Logger, machineLogger types.LineConsumer) types.LogMessageProcessor {
	return func(message *types.LogMessage) {
		if message.Type != types.LogMessageTypeStderr {
			return
		}
		if machineLogger == nil {
			log.Warn("ssh keys injection reported an error", slog.String("content", message.Content))
			return
		}
		if err := machineLogger.WriteLine(ErrorLinePrefix + message.Content); err != nil {
			log.Error("failed to write machine log line", slog.Any("error", err))
		}
	}
}
