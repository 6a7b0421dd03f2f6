package profile

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

	"github.com/synfinatic/ssocreds/internal/awsconfig"
	"github.com/synfinatic/ssocreds/internal/awsparse"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
)

// ResolveProfile reads configFile and returns the named profile
func ResolveProfile(configFile, name string) (*Profile, error) {
	c, err := awsconfig.ReadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return Resolve(c, name)
}

// Resolve looks up the named profile in the config and returns it in
// the canonical shape, merging in the [sso-session] section if needed
func Resolve(c awsconfig.Config, name string) (*Profile, error) {
	section := SectionName(name)
	log.Debug("looking up profile", "profile", name, "section", section)

	fields, ok := c[section]
	if !ok {
		return nil, ssoerr.ProfileNotFound(name)
	}

	entry, err := NewEntry(fields)
	if err != nil {
		return nil, ssoerr.InvalidProfile(name, err.Error())
	}
	log.Debug("classified profile", "profile", name, "version", entry.Version().String())

	var p *Profile
	switch e := entry.(type) {
	case *ProfileV2:
		sessionSection := SessionSectionName(e.SsoSession)
		s, ok := c[sessionSection]
		if !ok {
			return nil, ssoerr.InvalidProfile(e.SsoSession, fmt.Sprintf("missing [%s]", sessionSection))
		}
		session := NewSessionProfile(s)
		if !session.IsValid() {
			return nil, ssoerr.InvalidProfile(e.SsoSession,
				fmt.Sprintf("[%s] requires %s, %s and %s", sessionSection,
					SSO_REGION, SSO_REGISTRATION_SCOPES, SSO_START_URL))
		}
		p = &Profile{
			Name:        name,
			Output:      e.Output,
			Region:      e.Region,
			AccountId:   e.AccountId,
			RoleName:    e.RoleName,
			SsoRegion:   session.SsoRegion,
			SsoStartUrl: session.SsoStartUrl,
		}

	case *ProfileV1:
		p = &Profile{
			Name:        name,
			Output:      e.Output,
			Region:      e.Region,
			AccountId:   e.AccountId,
			RoleName:    e.RoleName,
			SsoRegion:   e.SsoRegion,
			SsoStartUrl: e.SsoStartUrl,
		}

	default:
		return nil, ssoerr.InvalidProfile(name, fmt.Sprintf("unsupported profile version %s", entry.Version()))
	}

	p.warnUnknownValues()
	return p, nil
}

// warnUnknownValues logs values the AWS CLI would probably reject
func (p *Profile) warnUnknownValues() {
	if p.Region != "" && !IsValidRegion(p.Region) {
		log.Warn("unknown region", "profile", p.Name, "region", p.Region)
	}
	if !IsValidRegion(p.SsoRegion) {
		log.Warn("unknown sso_region", "profile", p.Name, "region", p.SsoRegion)
	}
	if p.Output != "" && !IsValidOutput(p.Output) {
		log.Warn("unknown output", "profile", p.Name, "output", p.Output)
	}
	if _, err := awsparse.NormalizeAccountId(p.AccountId); err != nil {
		log.Warn("invalid sso_account_id", "profile", p.Name, "error", err.Error())
	}
}
