package awscreds

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
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/synfinatic/ssocreds/internal/awsconfig"
	"github.com/synfinatic/ssocreds/internal/awsparse"
)

// Necessary for mocking
type StsAPI interface {
	GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// NewStsAPIFunc returns an StsAPI for the config
type NewStsAPIFunc func(cfg aws.Config) StsAPI

// Identity is who AWS thinks we are
type Identity struct {
	Account  string
	Arn      string
	UserId   string
	RoleName string
	Session  string
}

// Verifier checks freshly written credentials actually work
type Verifier struct {
	newAPI     NewStsAPIFunc
	httpClient config.HTTPClient
}

// NewVerifier returns a Verifier.  A nil newAPI uses the real STS client and
// a nil httpClient uses the SDK default.
func NewVerifier(newAPI NewStsAPIFunc, httpClient config.HTTPClient) *Verifier {
	if newAPI == nil {
		newAPI = func(cfg aws.Config) StsAPI {
			return sts.NewFromConfig(cfg)
		}
	}
	return &Verifier{
		newAPI:     newAPI,
		httpClient: httpClient,
	}
}

func (v *Verifier) config(ctx context.Context, r awsconfig.CredentialRecord) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(
		r.AccessKeyId,
		r.SecretAccessKey,
		r.SessionToken,
	)
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(r.Region),
		config.WithCredentialsProvider(creds),
	}
	if v.httpClient != nil {
		opts = append(opts, config.WithHTTPClient(v.httpClient))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// Verify uses the credentials to call sts:GetCallerIdentity
func (v *Verifier) Verify(ctx context.Context, r awsconfig.CredentialRecord) (*Identity, error) {
	cfg, err := v.config(ctx, r)
	if err != nil {
		return nil, err
	}

	out, err := v.newAPI(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}

	id := &Identity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserId:  aws.ToString(out.UserId),
	}
	if _, role, session, err := awsparse.ParseAssumedRoleARN(id.Arn); err == nil {
		id.RoleName = role
		id.Session = session
	} else {
		log.Debug("not an assumed role", "arn", id.Arn)
	}
	log.Debug("verified credentials", "arn", id.Arn)
	return id, nil
}
