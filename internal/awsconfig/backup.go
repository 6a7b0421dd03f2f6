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

import (
	"fmt"

	"github.com/synfinatic/ssocreds/internal/fileutils"
)

const (
	BACKUP_SUFFIX          = ".backup"
	FIRSTRUN_BACKUP_SUFFIX = ".backup.firstrun"
)

// CreateBackup copies path before we modify it.  The very first copy is kept
// forever in <path>.backup.firstrun while every later call overwrites
// <path>.backup.  Missing files are not an error.
func CreateBackup(path string) error {
	if !FileExists(path) {
		log.Debug("nothing to backup", "file", path)
		return nil
	}

	firstRun := path + FIRSTRUN_BACKUP_SUFFIX
	if !FileExists(firstRun) {
		log.Debug("creating first run backup", "file", firstRun)
		return copyBackup(path, firstRun)
	}

	backup := path + BACKUP_SUFFIX
	log.Debug("creating backup", "file", backup)
	return copyBackup(path, backup)
}

func copyBackup(src, dst string) error {
	if err := fileutils.CopyFile(src, dst); err != nil {
		return fmt.Errorf("unable to backup %s: %w", src, err)
	}
	return nil
}
