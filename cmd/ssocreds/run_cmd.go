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
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/synfinatic/ssocreds/internal/awscli"
	"github.com/synfinatic/ssocreds/internal/awscreds"
	"github.com/synfinatic/ssocreds/internal/awsparse"
	"github.com/synfinatic/ssocreds/internal/awssso"
	"github.com/synfinatic/ssocreds/internal/ssocreds"
	timeutil "github.com/synfinatic/ssocreds/internal/time"
)

type DefaultCmd struct{} // takes no arguments

func (cc *DefaultCmd) Run(ctx *RunContext) error {
	return ctx.Cli.Run.Run(ctx)
}

type RunCmd struct{} // takes no arguments

func (cc *RunCmd) Run(ctx *RunContext) error {
	c := context.Background()
	cli := awscli.NewAwsCli(ctx.Settings.AwsCli)

	if ctx.Cli.Debug {
		cli.SysInfo(c, ctx.Cli.Profile).Log()
	}

	return runCredentials(c, ctx, awssso.NewExchanger(nil), cli, nil)
}

// runCredentials writes the credentials for the selected profile and
// optionally verifies them with STS
func runCredentials(c context.Context, ctx *RunContext, e ssocreds.Exchanger, l ssocreds.Loginer, newSts awscreds.NewStsAPIFunc) error {
	profileName := ctx.Cli.Profile
	log.Info(fmt.Sprintf("Getting SSO credentials for profile %s", profileName))

	runner := ssocreds.NewRunner(ctx.Settings, e, l)
	result, err := runner.Run(c, profileName, ctx.Cli.UseProxy)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to load SSO credentials for %s", profileName))
		return err
	}

	log.Info(fmt.Sprintf("Successfully loaded SSO credentials for profile %s", profileName))

	remain, err := timeutil.TimeRemain(result.Expiration.Unix(), false)
	if err != nil {
		log.Warn("unable to compute time remaining", "error", err.Error())
	} else {
		log.Info("Credentials expire",
			"expiration", result.Expiration.Local().Format(time.RFC3339),
			"remaining", remain)
	}

	if !ctx.Cli.Verify {
		return nil
	}

	httpClient, err := verifyHTTPClient(ctx.Cli.UseProxy)
	if err != nil {
		return err
	}

	id, err := awscreds.NewVerifier(newSts, httpClient).Verify(c, result.Record)
	if err != nil {
		return fmt.Errorf("unable to verify credentials for %s: %w", profileName, err)
	}
	log.Info("Verified credentials", "arn", id.Arn, "account", id.Account)

	if account, err := awsparse.NormalizeAccountId(result.Profile.AccountId); err == nil && account != id.Account {
		log.Warn("credentials are for a different account", "expected", account, "account", id.Account)
	}
	if id.RoleName != "" && id.RoleName != result.Profile.RoleName {
		log.Warn("credentials are for a different role", "expected", result.Profile.RoleName, "role", id.RoleName)
	}
	return nil
}

// verifyHTTPClient returns the proxy client when --use-proxy is set
func verifyHTTPClient(useProxy bool) (awsconfig.HTTPClient, error) {
	if !useProxy {
		return nil, nil
	}

	proxy, err := awssso.ProxyFromEnv()
	if err != nil {
		return nil, err
	}
	return awssso.NewHTTPClient(proxy)
}
