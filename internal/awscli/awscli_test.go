package awscli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCli writes a shell script which records its arguments to a log file
// and exits with exitCode.  Tests using it are not parallel to avoid
// ETXTBSY when another test forks while the script is being written.
func fakeCli(t *testing.T, exitCode int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	dir := t.TempDir()
	argsLog := filepath.Join(dir, "args.log")
	script := filepath.Join(dir, "aws")
	body := heredoc.Docf(`
		#!/bin/sh
		echo "$@" >> %s
		case "$1" in
		  --version) echo "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0 exe/x86_64" ;;
		  configure) echo "profile $4" ;;
		  sso) echo "Successfully logged into Start URL" ;;
		esac
		exit %d
	`, argsLog, exitCode)
	require.NoError(t, os.WriteFile(script, []byte(body), 0700))
	return script, argsLog
}

func readArgs(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func newTestCli(binary string) (*AwsCli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &AwsCli{
		Binary: binary,
		Stdin:  strings.NewReader(""),
		Stdout: out,
		Stderr: out,
	}, out
}

func TestLogin(t *testing.T) {
	script, argsLog := fakeCli(t, 0)
	a, out := newTestCli(script)

	require.NoError(t, a.Login(context.Background(), "my-profile"))
	assert.Equal(t, []string{"sso login --profile my-profile"}, readArgs(t, argsLog))
	assert.Contains(t, out.String(), "Successfully logged into Start URL")
}

func TestLoginFailure(t *testing.T) {
	script, _ := fakeCli(t, 255)
	a, _ := newTestCli(script)

	err := a.Login(context.Background(), "my-profile")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sso login --profile my-profile failed")

	a, _ = newTestCli(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, a.Login(context.Background(), "my-profile"))
}

func TestVersion(t *testing.T) {
	script, _ := fakeCli(t, 0)
	a, _ := newTestCli(script)

	v, err := a.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0 exe/x86_64", v)

	l, err := a.ConfigureList(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "profile foo", l)
}

func TestSysInfo(t *testing.T) {
	script, argsLog := fakeCli(t, 0)
	a, _ := newTestCli(script)

	info := a.SysInfo(context.Background(), "foo")
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0 exe/x86_64", info.CliVersion)
	assert.Equal(t, "profile foo", info.ConfigureList)
	assert.ElementsMatch(t, []string{"--version", "configure list --profile foo"}, readArgs(t, argsLog))
	info.Log()
}

func TestSysInfoNotFound(t *testing.T) {
	for _, exitCode := range []int{1, 2} {
		script, _ := fakeCli(t, exitCode)
		a, _ := newTestCli(script)

		info := a.SysInfo(context.Background(), "foo")
		assert.Equal(t, NOT_FOUND, info.CliVersion, fmt.Sprintf("exit %d", exitCode))
		assert.Equal(t, NOT_FOUND, info.ConfigureList)
	}

	a, _ := newTestCli(filepath.Join(t.TempDir(), "does-not-exist"))
	info := a.SysInfo(context.Background(), "foo")
	assert.Equal(t, NOT_FOUND, info.CliVersion)
}
