package main


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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synfinatic/ssocreds/internal/awscreds"
	"github.com/synfinatic/ssocreds/internal/awssso"
	"github.com/synfinatic/ssocreds/internal/config"
	testlogger "github.com/synfinatic/ssocreds/internal/logger/test"
	"github.com/synfinatic/ssocreds/internal/profile"
	"github.com/synfinatic/ssocreds/internal/ssocache"
)

func TestLogLevelValidate(t *testing.T) {
	t.Parallel()

	for _, l := range VALID_LOG_LEVELS {
		assert.NoError(t, logLevelValidate(l))
	}
	assert.NoError(t, logLevelValidate(""))
	assert.Error(t, logLevelValidate("verbose"))
	assert.Error(t, logLevelValidate("INFO"))
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	cli := CLI{}
	parser, err := newParser(&cli)
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, "default", ctx.Command())
	assert.Equal(t, "default", cli.Profile)
	assert.Equal(t, "console", cli.LogFormat)
	assert.False(t, cli.UseProxy)

	cli = CLI{}
	parser, err = newParser(&cli)
	require.NoError(t, err)
	ctx, err = parser.Parse([]string{"-p", "dev", "-u", "-d", "--verify"})
	require.NoError(t, err)
	assert.Equal(t, "default", ctx.Command())
	assert.Equal(t, "dev", cli.Profile)
	assert.True(t, cli.UseProxy)
	assert.True(t, cli.Debug)
	assert.True(t, cli.Verify)

	cli = CLI{}
	parser, err = newParser(&cli)
	require.NoError(t, err)
	ctx, err = parser.Parse([]string{"--profile", "prod", "run"})
	require.NoError(t, err)
	assert.Equal(t, "run", ctx.Command())
	assert.Equal(t, "prod", cli.Profile)

	cli = CLI{}
	parser, err = newParser(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--log-format", "xml"})
	assert.Error(t, err)
}

type mockExchanger struct {
	creds *awssso.RoleCredentials
	err   error
	calls int
}

func (m *mockExchanger) Exchange(ctx context.Context, p *profile.Profile, login *ssocache.CachedLogin, useProxy bool) (*awssso.RoleCredentials, error) {
	m.calls++
	return m.creds, m.err
}

type mockLogin struct {
	calls int
}

func (m *mockLogin) Login(ctx context.Context, profile string) error {
	m.calls++
	return nil
}

type mockStsApi struct {
	calls int
}

func (m *mockStsApi) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	m.calls++
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:sts::123456789012:assumed-role/Admin/user"),
		UserId:  aws.String("AROAEXAMPLE:user"),
	}, nil
}

// setupRun returns a RunContext with a config file and a valid SSO cache
// entry in a temporary directory
func setupRun(t *testing.T, cli *CLI) *RunContext {
	dir := t.TempDir()
	settings := &config.Settings{
		ConfigFile:      filepath.Join(dir, "config"),
		CredentialsFile: filepath.Join(dir, "credentials"),
		SsoCacheDir:     filepath.Join(dir, "cache"),
		AwsCli:          "aws",
		DefaultRegion:   "us-east-1",
	}

	cfg := heredoc.Doc(`
		[profile dev]
		region = eu-west-1
		sso_account_id = 123456789012
		sso_role_name = Admin
		sso_region = us-east-1
		sso_start_url = https://example.awsapps.com/start
	`)
	require.NoError(t, os.WriteFile(settings.ConfigFile, []byte(cfg), 0600))
	require.NoError(t, os.MkdirAll(settings.SsoCacheDir, 0700))
	cache := `{"accessToken":"token","expiresAt":"2099-01-01T00:00:00Z","region":"us-east-1","startUrl":"https://example.awsapps.com/start"}`
	require.NoError(t, os.WriteFile(filepath.Join(settings.SsoCacheDir, "abc.json"), []byte(cache), 0600))

	return &RunContext{
		Cli:      cli,
		Settings: settings,
	}
}

var goodCreds = &awssso.RoleCredentials{
	AccessKeyId:     "AK",
	SecretAccessKey: "SK",
	SessionToken:    "ST",
	Expiration:      4102444800000,
}

func TestRunCredentials(t *testing.T) {
	tLogger := testlogger.NewTestLogger("DEBUG")
	oldLogger := log
	log = tLogger
	defer func() { log = oldLogger }()

	ctx := setupRun(t, &CLI{Profile: "dev"})
	e := &mockExchanger{creds: goodCreds}
	l := &mockLogin{}
	m := &mockStsApi{}

	err := runCredentials(context.Background(), ctx, e, l, func(cfg aws.Config) awscreds.StsAPI { return m })
	require.NoError(t, err)
	assert.Equal(t, 1, e.calls)
	assert.Equal(t, 0, l.calls)
	assert.Equal(t, 0, m.calls)

	msg := testlogger.LogMessage{}
	require.NoError(t, tLogger.GetNextLevel(slog.LevelInfo, &msg))
	assert.Equal(t, "Getting SSO credentials for profile dev", msg.Message)
	require.NoError(t, tLogger.GetNextLevel(slog.LevelInfo, &msg))
	assert.Equal(t, "Successfully loaded SSO credentials for profile dev", msg.Message)

	b, err := os.ReadFile(ctx.Settings.CredentialsFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[dev]")
	assert.Contains(t, string(b), "aws_access_key_id = AK")
	assert.Contains(t, string(b), "region = eu-west-1")
}

func TestRunCredentialsVerify(t *testing.T) {
	tLogger := testlogger.NewTestLogger("DEBUG")
	oldLogger := log
	log = tLogger
	defer func() { log = oldLogger }()

	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	ctx := setupRun(t, &CLI{Profile: "dev", Verify: true})
	m := &mockStsApi{}

	err := runCredentials(context.Background(), ctx, &mockExchanger{creds: goodCreds}, &mockLogin{},
		func(cfg aws.Config) awscreds.StsAPI {
			assert.Equal(t, "eu-west-1", cfg.Region)
			return m
		})
	require.NoError(t, err)
	assert.Equal(t, 1, m.calls)
}

func TestRunCredentialsFailure(t *testing.T) {
	tLogger := testlogger.NewTestLogger("DEBUG")
	oldLogger := log
	log = tLogger
	defer func() { log = oldLogger }()

	ctx := setupRun(t, &CLI{Profile: "missing"})
	e := &mockExchanger{creds: goodCreds}

	err := runCredentials(context.Background(), ctx, e, &mockLogin{}, nil)
	assert.ErrorContains(t, err, "profile not found: missing")
	assert.Equal(t, 0, e.calls)

	msg := testlogger.LogMessage{}
	require.NoError(t, tLogger.GetNextLevel(slog.LevelError, &msg))
	assert.Equal(t, "Failed to load SSO credentials for missing", msg.Message)
}

func TestVerifyHTTPClient(t *testing.T) {
	c, err := verifyHTTPClient(false)
	assert.NoError(t, err)
	assert.Nil(t, c)

	t.Setenv("https_proxy", "")
	t.Setenv("HTTPS_PROXY", "")
	_, err = verifyHTTPClient(true)
	assert.Error(t, err)

	t.Setenv("HTTPS_PROXY", "http://proxy.example.com:3128")
	c, err = verifyHTTPClient(true)
	assert.NoError(t, err)
	assert.NotNil(t, c)
}

func TestHandleError(t *testing.T) {
	tLogger := testlogger.NewTestLogger("DEBUG")
	oldLogger := log
	log = tLogger
	defer func() { log = oldLogger }()

	handleError(&CLI{}, fmt.Errorf("kaboom"))
	msg := testlogger.LogMessage{}
	require.NoError(t, tLogger.GetNextLevel(slog.LevelError, &msg))
	assert.Equal(t, "kaboom", msg.Message)
	require.NoError(t, tLogger.GetNextLevel(slog.LevelInfo, &msg))
	assert.Equal(t, "Run ssocreds with --debug flag for more details", msg.Message)

	tLogger.Reset()
	handleError(&CLI{Debug: true}, fmt.Errorf("kaboom"))
	require.NoError(t, tLogger.GetNextLevel(slog.LevelError, &msg))
	assert.Equal(t, "kaboom", msg.Message)
	require.NoError(t, tLogger.GetNextLevel(slog.LevelDebug, &msg))
	assert.Contains(t, msg.Message, "kaboom")
}

func TestCompleteCmdNoFlag(t *testing.T) {
	cli := CLI{}
	parser, err := newParser(&cli)
	require.NoError(t, err)
	ctx, err := parser.Parse([]string{"completions"})
	require.NoError(t, err)
	assert.Equal(t, "completions", ctx.Command())

	err = cli.Completions.Run(&RunContext{Kctx: ctx, Cli: &cli})
	assert.ErrorContains(t, err, "please specify a valid flag")
	assert.ErrorContains(t, err, "--install or --uninstall")

	_, err = parser.Parse([]string{"completions", "-I", "-U"})
	assert.Error(t, err)
}

func TestCompleteCmdFlags(t *testing.T) {
	cli := CLI{}
	parser, err := newParser(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"completions", "--install"})
	require.NoError(t, err)
	assert.True(t, cli.Completions.Install)
	assert.False(t, cli.Completions.Uninstall)

	cli = CLI{}
	parser, err = newParser(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"completions", "-U"})
	require.NoError(t, err)
	assert.True(t, cli.Completions.Uninstall)
	assert.False(t, cli.Completions.Install)
}
