package config

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

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/synfinatic/ssocreds/internal/fileutils"
)

const (
	DEFAULT_CONFIG_FILE      = "~/.aws/config"
	DEFAULT_CREDENTIALS_FILE = "~/.aws/credentials"
	DEFAULT_SSO_CACHE_DIR    = "~/.aws/sso/cache"
	DEFAULT_AWS_CLI          = "aws"
	DEFAULT_REGION           = "us-east-1"
)

// Settings are the file locations and defaults used to resolve credentials
type Settings struct {
	ConfigFile      string `koanf:"ConfigFile"`
	CredentialsFile string `koanf:"CredentialsFile"`
	SsoCacheDir     string `koanf:"SsoCacheDir"`
	AwsCli          string `koanf:"AwsCli"`
	DefaultRegion   string `koanf:"DefaultRegion"`
}

// EnvVars maps the environment variables we honor to their settings key
var EnvVars = map[string]string{
	"AWS_CONFIG_FILE":             "ConfigFile",
	"AWS_SHARED_CREDENTIALS_FILE": "CredentialsFile",
	"SSOCREDS_CACHE_DIR":          "SsoCacheDir",
	"SSOCREDS_AWS_CLI":            "AwsCli",
	"SSOCREDS_DEFAULT_REGION":     "DefaultRegion",
}

// DefaultSettings returns the built in defaults
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"ConfigFile":      DEFAULT_CONFIG_FILE,
		"CredentialsFile": DEFAULT_CREDENTIALS_FILE,
		"SsoCacheDir":     DEFAULT_SSO_CACHE_DIR,
		"AwsCli":          DEFAULT_AWS_CLI,
		"DefaultRegion":   DEFAULT_REGION,
	}
}

// LoadSettings loads our defaults and then applies any environment overrides
func LoadSettings(defaults map[string]interface{}) (*Settings, error) {
	var err error
	konf := koanf.New(".")
	s := &Settings{}

	if err = konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return s, fmt.Errorf("unable to load default settings: %s", err.Error())
	}

	// empty values are ignored so an unset override can't clobber a default
	if err = konf.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return s, fmt.Errorf("unable to load environment settings: %s", err.Error())
	}

	if err = konf.Unmarshal("", s); err != nil {
		return s, fmt.Errorf("unable to process settings: %s", err.Error())
	}

	s.ConfigFile = fileutils.GetHomePath(s.ConfigFile)
	s.CredentialsFile = fileutils.GetHomePath(s.CredentialsFile)
	s.SsoCacheDir = fileutils.GetHomePath(s.SsoCacheDir)

	if s.AwsCli == "" {
		s.AwsCli = DEFAULT_AWS_CLI
	}
	if s.DefaultRegion == "" {
		s.DefaultRegion = DEFAULT_REGION
	}
	return s, nil
}

// envKey returns the settings key for the env var or "" to skip it
func envKey(name, value string) (string, interface{}) {
	key, ok := EnvVars[name]
	if !ok || value == "" {
		return "", nil
	}
	return key, value
}
