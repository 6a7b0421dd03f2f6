package ssoerr

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
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Kind categorizes the failures of the credential pipeline
type Kind int

const (
	KindUnknown Kind = iota
	KindExpiredCreds
	KindAwsSdk
	KindProfileNotFound
	KindInvalidProfile
	KindParse
	KindConfig
)

var kindNames = map[Kind]string{
	KindUnknown:         "Unknown",
	KindExpiredCreds:    "ExpiredCreds",
	KindAwsSdk:          "AwsSdk",
	KindProfileNotFound: "ProfileNotFound",
	KindInvalidProfile:  "InvalidProfile",
	KindParse:           "Parse",
	KindConfig:          "Config",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Retryable returns true for the kinds which an interactive SSO login can fix
func (k Kind) Retryable() bool {
	switch k {
	case KindExpiredCreds, KindAwsSdk:
		return true
	default:
		return false
	}
}

// Error is a classified pipeline failure
type Error struct {
	Kind    Kind
	Subject string // profile name, file path, etc
	Msg     string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind so callers can use errors.Is
// against the sentinel values below
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Subject == "" && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is()
var (
	ErrExpiredCreds    = &Error{Kind: KindExpiredCreds}
	ErrAwsSdk          = &Error{Kind: KindAwsSdk}
	ErrProfileNotFound = &Error{Kind: KindProfileNotFound}
	ErrInvalidProfile  = &Error{Kind: KindInvalidProfile}
	ErrParse           = &Error{Kind: KindParse}
	ErrConfig          = &Error{Kind: KindConfig}
)

func ExpiredCreds(subject string) error {
	return &Error{Kind: KindExpiredCreds, Msg: "no valid cached SSO login found", Subject: subject}
}

func AwsSdk(msg string) error {
	return &Error{Kind: KindAwsSdk, Msg: msg}
}

func ProfileNotFound(name string) error {
	return &Error{Kind: KindProfileNotFound, Msg: "profile not found", Subject: name}
}

func InvalidProfile(name, msg string) error {
	return &Error{Kind: KindInvalidProfile, Msg: msg, Subject: name}
}

func Parse(path string, err error) error {
	return &Error{Kind: KindParse, Msg: "unable to parse", Subject: path, Err: err}
}

func Config(msg string) error {
	return &Error{Kind: KindConfig, Msg: msg}
}

// KindOf classifies err.  Service errors returned by the AWS SDK are
// reported as KindAwsSdk.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return KindAwsSdk
	}

	return KindUnknown
}

// IsRetryable is shorthand for KindOf(err).Retryable()
func IsRetryable(err error) bool {
	return KindOf(err).Retryable()
}
