package jpegrot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single jpegtran run.
const DefaultTimeout = 30 * time.Second

// Jpegtran rotates by piping the file through the jpegtran program.
type Jpegtran struct {
	// Path is the jpegtran executable. Empty means unavailable.
	Path string
	// Timeout bounds one run. Zero selects DefaultTimeout.
	Timeout time.Duration
}

// notPerfect is the diagnostic jpegtran -perfect prints before refusing a
// transform that would drop partial MCUs.
const notPerfect = "transformation is not perfect"

// Name implements Rotator.
func (j *Jpegtran) Name() string { return "jpegtran" }

// Rotate implements Rotator.
func (j *Jpegtran) Rotate(ctx context.Context, src *Source, d Direction, perfect bool) ([]byte, error) {
	if len(j.Path) == 0 {
		return nil, ErrJpegtranUnavailable
	}

	timeout := j.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"-copy", "all", "-rotate", d.degrees()}
	if perfect {
		args = append(args, "-perfect")
	} else {
		args = append(args, "-trim")
	}
	cmd := exec.CommandContext(c, j.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	b, err := cmdPipe(cmd, bytes.NewReader(src.Data))
	if err != nil {
		if c.Err() != nil {
			return nil, fmt.Errorf("jpegtran timed out after %s: %w", timeout, c.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if perfect && strings.Contains(msg, notPerfect) {
				return nil, fmt.Errorf("%w: jpegtran: %s", ErrLossyRotationRejected, msg)
			}
			return nil, fmt.Errorf("jpegtran failed: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("failed to run jpegtran: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("jpegtran produced no output: %s", strings.TrimSpace(stderr.String()))
	}
	return b, nil
}

func cmdPipe(cmd *exec.Cmd, input io.Reader) (output []byte, err error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	go func() {
		defer stdin.Close()
		_, _ = io.Copy(stdin, input)
	}()

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	_, _ = io.Copy(b, stdout)

	return b.Bytes(), cmd.Wait()
}
