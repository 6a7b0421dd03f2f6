package awscli

/*
 * AWS SSO CLI
 * Copyright (c) 2021-2025 Aaron Turner  <synfinatic at gmail dot com>
 *
 * This program is free software: you can redistribute it
 * and/or modify it under the terms of the GNU General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or with the authors permission any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// AwsCli runs the AWS CLI.  We only need it for the interactive
// SSO login flow and some diagnostics.
type AwsCli struct {
	Binary string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewAwsCli returns an AwsCli attached to our stdin/stdout/stderr
func NewAwsCli(binary string) *AwsCli {
	return &AwsCli{
		Binary: binary,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Login runs `aws sso login --profile <profile>` and waits for it to exit.
// The user interacts with the CLI directly.
func (a *AwsCli) Login(ctx context.Context, profile string) error {
	cmd := exec.CommandContext(ctx, a.Binary, "sso", "login", "--profile", profile) // #nosec
	cmd.Stdin = a.Stdin
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr

	log.Info("Running AWS SSO login", "profile", profile)
	log.Debug("exec", "command", cmd.String())
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s sso login --profile %s failed: %w", a.Binary, profile, err)
	}
	return nil
}

// output runs the AWS CLI with args and returns stdout
func (a *AwsCli) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, a.Binary, args...) // #nosec
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log.Debug("exec", "command", cmd.String())
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", cmd.String(), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Version returns the output of `aws --version`
func (a *AwsCli) Version(ctx context.Context) (string, error) {
	return a.output(ctx, "--version")
}

// ConfigureList returns the output of `aws configure list --profile <profile>`
func (a *AwsCli) ConfigureList(ctx context.Context, profile string) (string, error) {
	return a.output(ctx, "configure", "list", "--profile", profile)
}
