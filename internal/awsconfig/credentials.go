package awsconfig

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

const (
	ACCESS_KEY_ID     = "aws_access_key_id"
	SECRET_ACCESS_KEY = "aws_secret_access_key"
	SESSION_TOKEN     = "aws_session_token"
	REGION            = "region"
)

// CredentialRecord is the [profile] section we write to the AWS
// credentials file
type CredentialRecord struct {
	AccessKeyId     string
	SecretAccessKey string
	SessionToken    string // optional
	Region          string
}

// Section returns the record as a credentials file section
func (r CredentialRecord) Section() Section {
	s := Section{
		ACCESS_KEY_ID:     r.AccessKeyId,
		SECRET_ACCESS_KEY: r.SecretAccessKey,
		REGION:            r.Region,
	}
	if r.SessionToken != "" {
		s[SESSION_TOKEN] = r.SessionToken
	}
	return s
}

// UpsertCredentials replaces the section for profile.  Every other
// section is left untouched.
func (c Config) UpsertCredentials(profile string, r CredentialRecord) {
	c[profile] = r.Section()
}

// ReadCredentials reads the credentials file or returns an empty Config
// if it does not exist yet
func ReadCredentials(path string) (Config, error) {
	if !FileExists(path) {
		log.Debug("credentials file does not exist", "file", path)
		return Config{}, nil
	}
	return ReadConfig(path)
}
