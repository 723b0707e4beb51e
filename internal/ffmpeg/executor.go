package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// StreamConsumer reads a process's diagnostic stream until EOF. The
// progress monitor implements it; keeping the interface this narrow means
// the parsing strategy can be swapped without touching the executor.
type StreamConsumer interface {
	Consume(r io.Reader)
}

// Execute runs the prepared argument slice, feeding stderr to consume (if
// non-nil) from the calling goroutine while the process runs. It returns
// nil iff the process exits with status zero.
//
// There is no timeout: a hung ffmpeg blocks until the context is
// cancelled. Inherited behavior, known weakness.
func Execute(ctx context.Context, args []string, consume StreamConsumer) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}

	// Blocking read until the process closes its stderr. The process is
	// the producer, this goroutine the consumer; no further coordination
	// is needed.
	if consume != nil {
		consume.Consume(stderr)
	} else {
		_, _ = io.Copy(io.Discard, stderr)
	}

	return cmd.Wait()
}
