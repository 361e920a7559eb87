package deploy

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

// Command is an external process invocation.
type Command struct {
	Binary string
	Args   []string
	Dir    string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Binary + " " + strings.Join(c.Args, " "))
}

// Outcome is what a finished process left behind.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

func (o Outcome) Success() bool { return o.ExitCode == 0 }

// Runner runs a command to completion. An error means the process could not
// be run at all; a non-zero exit is reported through Outcome.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Outcome, error)
}

// ExecRunner runs commands on the host. Output is captured and, when Echo is
// set, also streamed there while the process runs.
type ExecRunner struct {
	Echo io.Writer
}

func (r ExecRunner) Run(ctx context.Context, cmd Command) (Outcome, error) {
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	if r.Echo != nil {
		c.Stdout = io.MultiWriter(&stdout, r.Echo)
		c.Stderr = io.MultiWriter(&stderr, r.Echo)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	start := time.Now()
	err := c.Run()
	out := Outcome{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("start %s: %w", cmd.Binary, err)
	}
	return out, nil
}
