package ssocreds

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

	"github.com/synfinatic/ssocreds/internal/awsconfig"
	"github.com/synfinatic/ssocreds/internal/awssso"
	"github.com/synfinatic/ssocreds/internal/config"
	"github.com/synfinatic/ssocreds/internal/profile"
	"github.com/synfinatic/ssocreds/internal/ssocache"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
)

// Exchanger trades a cached SSO login for role credentials
type Exchanger interface {
	Exchange(context.Context, *profile.Profile, *ssocache.CachedLogin, bool) (*awssso.RoleCredentials, error)
}

// Loginer runs the interactive SSO login for a profile
type Loginer interface {
	Login(context.Context, string) error
}

type State int

const (
	StateAttempting State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "Attempting"
	case StateDone:
		return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MAX_RETRIES is the number of times we will run the SSO login per process
const MAX_RETRIES = 1

// Runner writes the role credentials for a profile to the AWS credentials
// file.  Create one per process: it retries via SSO login at most once over
// its lifetime.
type Runner struct {
	settings  *config.Settings
	exchanger Exchanger
	login     Loginer
	state     State
	retries   int
}

// Result describes the credentials which were written
type Result struct {
	ProfileName string
	Profile     *profile.Profile
	Record      awsconfig.CredentialRecord
	Expiration  time.Time
}

func NewRunner(s *config.Settings, e Exchanger, l Loginer) *Runner {
	return &Runner{
		settings:  s,
		exchanger: e,
		login:     l,
		state:     StateAttempting,
	}
}

// State returns the current state of the runner
func (r *Runner) State() State {
	return r.state
}

// Retries returns how many times we have run the SSO login
func (r *Runner) Retries() int {
	return r.retries
}

// Run resolves the profile, finds a cached SSO login, exchanges it for
// role credentials and writes them to the credentials file.  If the cached
// login is missing/expired or AWS rejects it, we run the SSO login once
// and start over.
func (r *Runner) Run(ctx context.Context, profileName string, useProxy bool) (*Result, error) {
	r.state = StateAttempting
	for {
		result, err := r.attempt(ctx, profileName, useProxy)
		if err == nil {
			r.state = StateDone
			return result, nil
		}

		kind := ssoerr.KindOf(err)
		if !kind.Retryable() || r.retries >= MAX_RETRIES {
			log.Debug("giving up", "kind", kind.String(), "retries", r.retries)
			r.state = StateDone
			return nil, err
		}

		r.retries++
		log.Debug("Failed on first pass to get credentials, logging in and trying again",
			"kind", kind.String(), "error", err.Error())
		if err = r.login.Login(ctx, profileName); err != nil {
			r.state = StateDone
			return nil, err
		}
	}
}

// attempt runs the pipeline once
func (r *Runner) attempt(ctx context.Context, profileName string, useProxy bool) (*Result, error) {
	p, err := profile.ResolveProfile(r.settings.ConfigFile, profileName)
	if err != nil {
		return nil, err
	}

	login, err := ssocache.FindCachedLogin(p, r.settings.SsoCacheDir)
	if err != nil {
		return nil, err
	}

	creds, err := r.exchanger.Exchange(ctx, p, login, useProxy)
	if err != nil {
		return nil, err
	}

	record, err := r.persist(profileName, p, creds)
	if err != nil {
		return nil, err
	}

	return &Result{
		ProfileName: profileName,
		Profile:     p,
		Record:      record,
		Expiration:  time.UnixMilli(creds.Expiration),
	}, nil
}

// persist upserts the profile's section in the credentials file, leaving
// the other sections alone
func (r *Runner) persist(profileName string, p *profile.Profile, creds *awssso.RoleCredentials) (awsconfig.CredentialRecord, error) {
	region := p.Region
	if region == "" {
		region = r.settings.DefaultRegion
	}

	record := awsconfig.CredentialRecord{
		AccessKeyId:     creds.AccessKeyId,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Region:          region,
	}

	path := r.settings.CredentialsFile
	c, err := awsconfig.ReadCredentials(path)
	if err != nil {
		return record, err
	}

	log.Debug("Updating credentials", "profile", profileName, "region", region, "file", path)
	c.UpsertCredentials(profileName, record)

	// never replace a file we were unable to backup
	if err = awsconfig.CreateBackup(path); err != nil {
		return record, err
	}

	return record, awsconfig.WriteConfig(path, c)
}
