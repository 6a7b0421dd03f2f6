package awssso

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
	"time"

	"github.com/synfinatic/ssocreds/internal/awsparse"
)

// RoleCredentials are the temporary STS credentials returned by AWS SSO
type RoleCredentials struct {
	RoleName        string `json:"roleName"`
	AccountId       string `json:"accountId"`
	AccessKeyId     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	SessionToken    string `json:"sessionToken"`
	Expiration      int64  `json:"expiration"` // not in seconds, but millisec
}

// RoleArn returns the ARN for the role
func (r *RoleCredentials) RoleArn() string {
	return awsparse.MakeRoleARN(r.AccountId, r.RoleName)
}

// ExpireEpoch return seconds since unix epoch when we expire
func (r *RoleCredentials) ExpireEpoch() int64 {
	return time.UnixMilli(r.Expiration).Unix() // yes, millisec
}

// Expired returns if these role creds have expired or will expire in the next minute
func (r *RoleCredentials) Expired() bool {
	now := time.Now().Add(time.Minute).UnixMilli() // yes, millisec
	return r.Expiration <= now
}

// Return expire time in ISO8601 / RFC3339 format
func (r *RoleCredentials) ExpireString() string {
	return time.Unix(r.ExpireEpoch(), 0).Format(time.RFC3339)
}

// Validate ensures we have the fields required to use the credentials.
// SessionToken is optional.
func (r *RoleCredentials) Validate() error {
	if r.AccessKeyId == "" {
		return fmt.Errorf("%s", "missing accessKeyId")
	}

	if r.SecretAccessKey == "" {
		return fmt.Errorf("%s", "missing secretAccessKey")
	}

	return nil
}
