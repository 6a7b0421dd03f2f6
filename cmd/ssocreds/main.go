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
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/posener/complete"
	"github.com/synfinatic/ssocreds/internal/config"
	"github.com/synfinatic/ssocreds/internal/fileutils"
	"github.com/synfinatic/ssocreds/internal/logger"
	"github.com/synfinatic/ssocreds/internal/predictor"
	"github.com/willabides/kongplete"
)

// These variables are defined in the Makefile
var Version = "unknown"
var Buildinfos = "unknown"
var Tag = "NO-TAG"
var CommitID = "unknown"
var Delta = ""
var VALID_LOG_LEVELS = []string{"error", "warn", "info", "debug", "trace"}

var log logger.CustomLogger

type RunContext struct {
	Kctx     *kong.Context
	Cli      *CLI
	Settings *config.Settings
}

const (
	COPYRIGHT_YEAR = "2021-2025"
)

type CLI struct {
	// Common Arguments
	Profile   string `kong:"short='p',default='default',help='Profile to use for obtaining SSO credentials',predictor='profile'"`
	Debug     bool   `kong:"short='d',help='Enable verbose logging'"`
	UseProxy  bool   `kong:"short='u',help='Send AWS requests via the proxy found in HTTPS_PROXY'"`
	Verify    bool   `kong:"help='Verify the new credentials via sts:GetCallerIdentity'"`
	LogLevel  string `kong:"short='L',name='level',help='Logging level [error|warn|info|debug|trace] (default: info)'"`
	Lines     bool   `kong:"help='Print line number in logs'"`
	LogFormat string `kong:"name='log-format',default='console',enum='console,json',help='Log format [console|json]'"`

	// Commands
	Default     DefaultCmd  `kong:"cmd,hidden,default='1'"` // run command without args
	Run         RunCmd      `kong:"cmd,help='Write SSO role credentials for the profile (default command)'"`
	Completions CompleteCmd `kong:"cmd,help='Manage shell completions'"`
	Version     VersionCmd  `kong:"cmd,help='Print version and exit'"`
}

func init() {
	log = logger.GetLogger()
}

func main() {
	cli := CLI{}
	var err error

	ctx := parseArgs(&cli)

	if err = configureLogger(&cli); err != nil {
		log.Fatal(err.Error())
	}

	runCtx := RunContext{
		Kctx: ctx,
		Cli:  &cli,
	}

	switch ctx.Command() {
	case "version", "completions":
		if err = ctx.Run(&runCtx); err != nil {
			log.Fatal(err.Error())
		}
		return
	}

	if runCtx.Settings, err = config.LoadSettings(config.DefaultSettings()); err != nil {
		log.Fatal(err.Error())
	}

	if err = ctx.Run(&runCtx); err != nil {
		handleError(&cli, err)
		os.Exit(1)
	}
}

// newParser returns our kong parser
func newParser(cli *CLI) (*kong.Kong, error) {
	vars := kong.Vars{
		"VERSION": Version,
	}

	help := kong.HelpOptions{
		NoExpandSubcommands: true,
	}

	return kong.New(
		cli,
		kong.Name("ssocreds"),
		kong.Description("Write AWS SSO role credentials to the AWS credentials file"),
		kong.ConfigureHelp(help),
		vars,
	)
}

// parseArgs parses our CLI arguments
func parseArgs(cli *CLI) *kong.Context {
	parser, err := newParser(cli)
	if err != nil {
		panic(err)
	}

	settings, err := config.LoadSettings(config.DefaultSettings())
	configFile := fileutils.GetHomePath(config.DEFAULT_CONFIG_FILE)
	if err == nil {
		configFile = settings.ConfigFile
	}
	p := predictor.NewPredictor(configFile)

	kongplete.Complete(parser,
		kongplete.WithPredictors(
			map[string]complete.Predictor{
				"profile":  p.ProfileComplete(),
				"region":   p.RegionComplete(),
				"output":   p.OutputComplete(),
				"allFiles": complete.PredictFiles("*"),
			},
		),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := logLevelValidate(cli.LogLevel); err != nil {
		log.Fatal(err.Error())
	}

	return ctx
}

// configureLogger applies our logging flags to the process wide logger
func configureLogger(cli *CLI) error {
	if cli.LogFormat != "" && cli.LogFormat != "console" {
		if err := logger.SwitchLogger(cli.LogFormat); err != nil {
			return err
		}
	}

	if cli.Debug {
		log.SetLevel(slog.LevelDebug)
	}

	if cli.LogLevel != "" {
		if err := log.SetLevelString(cli.LogLevel); err != nil {
			return err
		}
	}

	if cli.Lines {
		log.SetReportCaller(true)
	}
	return nil
}

// handleError reports a failed run
func handleError(cli *CLI, err error) {
	log.Error(err.Error())
	if cli.Debug {
		log.Debug(spew.Sdump(err))
	} else {
		log.Info("Run ssocreds with --debug flag for more details")
	}
}

type VersionCmd struct{} // takes no arguments

func (cc *VersionCmd) Run(ctx *RunContext) error {
	delta := ""
	if len(Delta) > 0 {
		delta = fmt.Sprintf(" [%s delta]", Delta)
		Tag = "Unknown"
	}
	fmt.Printf("SSO Creds Version %s -- Copyright %s Aaron Turner\n", Version, COPYRIGHT_YEAR)
	fmt.Printf("%s (%s)%s built at %s\n", CommitID, Tag, delta, Buildinfos)
	return nil
}

func logLevelValidate(level string) error {
	if level == "" {
		return nil
	}
	for _, l := range VALID_LOG_LEVELS {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("invalid value for --level: %s", level)
}
