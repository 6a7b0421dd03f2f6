package main

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

	"github.com/willabides/kongplete"
)

// CompleteCmd installs the kongplete hook which lets the shell complete
// --profile from the SSO profiles in the AWS config file
type CompleteCmd struct {
	Install   bool `kong:"short='I',help='Install shell completions for ssocreds',xor='action'"`
	Uninstall bool `kong:"short='U',help='Remove shell completions for ssocreds',xor='action'"`
}

func (cc *CompleteCmd) Run(ctx *RunContext) error {
	if !cc.Install && !cc.Uninstall {
		return fmt.Errorf("please specify a valid flag: --install or --uninstall")
	}

	kp := &kongplete.InstallCompletions{
		Uninstall: cc.Uninstall,
	}
	if err := kp.Run(ctx.Kctx); err != nil {
		return err
	}

	action := "installed"
	if cc.Uninstall {
		action = "removed"
	}
	log.Info("shell completions "+action, "command", ctx.Kctx.Model.Name)
	log.Info("please restart your shell for the changes to take effect")
	return nil
}
