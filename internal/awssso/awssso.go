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
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/synfinatic/ssocreds/internal/profile"
	"github.com/synfinatic/ssocreds/internal/ssocache"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
)

// The SDK must not retry on its own, an expired token is handled by
// logging in again
const MAX_ATTEMPTS = 1

// Exchanger trades a cached SSO login for role credentials
type Exchanger struct {
	newAPI NewSsoAPIFunc
}

// NewExchanger returns an Exchanger which talks to AWS.  A nil newAPI uses
// the real AWS SSO client.
func NewExchanger(newAPI NewSsoAPIFunc) *Exchanger {
	if newAPI == nil {
		newAPI = NewSsoAPI
	}
	return &Exchanger{
		newAPI: newAPI,
	}
}

// NewSsoAPI returns an AWS SSO client for the region
func NewSsoAPI(ssoRegion string, httpClient sso.HTTPClient) SsoAPI {
	r := retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = MAX_ATTEMPTS
	})

	opts := sso.Options{
		Region:  ssoRegion,
		Retryer: r,
	}
	if httpClient != nil {
		opts.HTTPClient = httpClient
	}
	return sso.New(opts)
}

// Exchange calls sso:GetRoleCredentials for the profile's account & role.
// Errors from AWS are returned unchanged.
func (e *Exchanger) Exchange(ctx context.Context, p *profile.Profile, login *ssocache.CachedLogin, useProxy bool) (*RoleCredentials, error) {
	var httpClient sso.HTTPClient
	if useProxy {
		proxy, err := ProxyFromEnv()
		if err != nil {
			return nil, err
		}
		if httpClient, err = NewHTTPClient(proxy); err != nil {
			return nil, err
		}
	}

	api := e.newAPI(p.SsoRegion, httpClient)

	log.Debug("Getting role credentials", "accountID", p.AccountId, "role", p.RoleName, "ssoRegion", p.SsoRegion)
	input := sso.GetRoleCredentialsInput{
		AccessToken: aws.String(login.AccessToken),
		AccountId:   aws.String(p.AccountId),
		RoleName:    aws.String(p.RoleName),
	}
	output, err := api.GetRoleCredentials(ctx, &input)
	if err != nil {
		log.Debug("failed to get role credentials", "error", err.Error())
		return nil, err
	}

	if output == nil || output.RoleCredentials == nil {
		log.Debug("AWS SSO did not return role credentials")
		return nil, ssoerr.AwsSdk("AWS SSO did not return role credentials")
	}

	ret := &RoleCredentials{
		AccountId:       p.AccountId,
		RoleName:        p.RoleName,
		AccessKeyId:     aws.ToString(output.RoleCredentials.AccessKeyId),
		SecretAccessKey: aws.ToString(output.RoleCredentials.SecretAccessKey),
		SessionToken:    aws.ToString(output.RoleCredentials.SessionToken),
		Expiration:      output.RoleCredentials.Expiration,
	}

	if err = ret.Validate(); err != nil {
		return nil, ssoerr.AwsSdk("invalid role credentials: " + err.Error())
	}

	if ret.Expired() {
		log.Warn("role credentials expire within a minute", "arn", ret.RoleArn())
	}
	log.Debug("received role credentials", "arn", ret.RoleArn(), "expiration", ret.ExpireString())
	return ret, nil
}
