// Package sysexec wraps external process invocation behind a small
// capability interface so callers can swap the system binaries for fakes
// in tests.
package sysexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner executes an external command and returns its output. A non-nil
// error covers both spawn failures and non-zero exits.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// System runs commands on the host.
type System struct{}

func (System) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return outBuf.String(), errBuf.String(), fmt.Errorf("%s: %w", name, err)
	}
	return outBuf.String(), errBuf.String(), nil
}

// Available reports whether a binary can be found in PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
