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
	"strings"

	"github.com/synfinatic/ssocreds/internal/awsconfig"
)

const (
	DEFAULT_PROFILE         = "default"
	PROFILE_PREFIX          = "profile "
	SSO_SESSION_PREFIX      = "sso-session "
	OUTPUT                  = "output"
	REGION                  = "region"
	SSO_ACCOUNT_ID          = "sso_account_id"
	SSO_ROLE_NAME           = "sso_role_name"
	SSO_REGION              = "sso_region"
	SSO_START_URL           = "sso_start_url"
	SSO_SESSION             = "sso_session"
	SSO_REGISTRATION_SCOPES = "sso_registration_scopes"
)

// Profile is the resolved configuration used to fetch role credentials.
// SsoStartUrl and SsoRegion are always set.
type Profile struct {
	Name        string
	Output      string
	Region      string
	AccountId   string
	RoleName    string
	SsoRegion   string
	SsoStartUrl string
}

// Version discriminates the shapes a profile section can have
type Version int

const (
	VersionUnknown Version = iota
	// V1 has sso_start_url & sso_region in the profile itself
	VersionV1
	// V2 references an [sso-session] section via sso_session
	VersionV2
)

func (v Version) String() string {
	switch v {
	case VersionV1:
		return "v1"
	case VersionV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Entry is a classified profile section: either *ProfileV1 or *ProfileV2
type Entry interface {
	Version() Version
}

// ProfileV1 is the legacy, non-refreshable SSO configuration
type ProfileV1 struct {
	Output      string
	Region      string
	AccountId   string
	RoleName    string
	SsoRegion   string
	SsoStartUrl string
}

func (p *ProfileV1) Version() Version { return VersionV1 }

// ProfileV2 uses the SSO token provider configuration
type ProfileV2 struct {
	Output     string
	Region     string
	AccountId  string
	RoleName   string
	SsoSession string
}

func (p *ProfileV2) Version() Version { return VersionV2 }

// SessionProfile is an [sso-session <name>] section
type SessionProfile struct {
	SsoRegion          string
	RegistrationScopes string
	SsoStartUrl        string
}

// IsValid returns true only if all three fields are set
func (s *SessionProfile) IsValid() bool {
	return s.SsoRegion != "" && s.RegistrationScopes != "" && s.SsoStartUrl != ""
}

// Classify determines the shape of the section.  A sso_session reference
// wins over any inline sso_start_url/sso_region.
func Classify(s awsconfig.Section) Version {
	if s[SSO_SESSION] != "" {
		return VersionV2
	}
	if s[SSO_START_URL] != "" && s[SSO_REGION] != "" {
		return VersionV1
	}
	return VersionUnknown
}

// NewEntry returns the Entry for the section or an error if it is neither shape
func NewEntry(s awsconfig.Section) (Entry, error) {
	switch Classify(s) {
	case VersionV2:
		return &ProfileV2{
			Output:     s[OUTPUT],
			Region:     s[REGION],
			AccountId:  s[SSO_ACCOUNT_ID],
			RoleName:   s[SSO_ROLE_NAME],
			SsoSession: s[SSO_SESSION],
		}, nil
	case VersionV1:
		return &ProfileV1{
			Output:      s[OUTPUT],
			Region:      s[REGION],
			AccountId:   s[SSO_ACCOUNT_ID],
			RoleName:    s[SSO_ROLE_NAME],
			SsoRegion:   s[SSO_REGION],
			SsoStartUrl: s[SSO_START_URL],
		}, nil
	}
	return nil, fmt.Errorf("profile has neither %s nor %s and %s", SSO_SESSION, SSO_START_URL, SSO_REGION)
}

// NewSessionProfile returns the SessionProfile for the section
func NewSessionProfile(s awsconfig.Section) *SessionProfile {
	return &SessionProfile{
		SsoRegion:          s[SSO_REGION],
		RegistrationScopes: s[SSO_REGISTRATION_SCOPES],
		SsoStartUrl:        s[SSO_START_URL],
	}
}

// SectionName returns the config file section for the named profile
func SectionName(name string) string {
	if name == DEFAULT_PROFILE {
		return DEFAULT_PROFILE
	}
	return PROFILE_PREFIX + name
}

// SessionSectionName returns the config file section for the named sso-session
func SessionSectionName(session string) string {
	return SSO_SESSION_PREFIX + session
}

// ProfileNames returns the names of all the profiles in the config
func ProfileNames(c awsconfig.Config) []string {
	names := []string{}
	for _, section := range c.SectionNames() {
		if section == DEFAULT_PROFILE {
			names = append(names, section)
		} else if strings.HasPrefix(section, PROFILE_PREFIX) {
			names = append(names, strings.TrimPrefix(section, PROFILE_PREFIX))
		}
	}
	return names
}
