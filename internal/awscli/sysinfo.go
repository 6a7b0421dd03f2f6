package awscli

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
	"runtime"

	"golang.org/x/sync/errgroup"
)

const NOT_FOUND = "NOT FOUND"

// SysInfo is logged in debug mode to help troubleshoot problems
type SysInfo struct {
	OS            string
	Arch          string
	GoVersion     string
	CliVersion    string
	ConfigureList string
}

// SysInfo collects details about the host and the AWS CLI.  The AWS CLI
// is queried concurrently and failures are reported as NOT FOUND.
func (a *AwsCli) SysInfo(ctx context.Context, profile string) SysInfo {
	info := SysInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
	}

	var eg errgroup.Group
	eg.Go(func() error {
		info.CliVersion = a.orNotFound(a.Version(ctx))
		return nil
	})
	eg.Go(func() error {
		info.ConfigureList = a.orNotFound(a.ConfigureList(ctx, profile))
		return nil
	})
	_ = eg.Wait()

	return info
}

func (a *AwsCli) orNotFound(out string, err error) string {
	if err != nil {
		log.Debug("AWS CLI failed", "error", err.Error())
		return NOT_FOUND
	}
	return out
}

// Log writes the SysInfo to the debug log
func (s SysInfo) Log() {
	log.Debug("system info", "os", s.OS, "arch", s.Arch, "go", s.GoVersion)
	log.Debug("aws --version", "output", s.CliVersion)
	log.Debug("aws configure list", "output", s.ConfigureList)
}
