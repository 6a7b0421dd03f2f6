package fileutils

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
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GetHomePath returns the absolute path of the provided path with the first ~
// replaced with the location of the users home directory and the path rewritten
// for the host operating system
func GetHomePath(path string) string {
	// easiest to just manually replace our separator rather than relying on filepath.Join()
	sep := fmt.Sprintf("%c", os.PathSeparator)
	p := strings.ReplaceAll(path, "/", sep)
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			panic(fmt.Sprintf("unable to GetHomePath: %s", path))
		}

		p = strings.Replace(p, "~", home, 1)
	}
	return filepath.Clean(p)
}

// EnsureDirExists ensures the parent directory of filename exists
func EnsureDirExists(filename string) error {
	return EnsureDir(filepath.Dir(filename))
}

// EnsureDir creates dir (mode 0700) if it is missing and fails if the path
// exists but is not a directory
func EnsureDir(dir string) error {
	f, err := os.Open(dir)
	if os.IsNotExist(err) {
		log.Debug("creating directory", "dir", dir)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create %s: %s", dir, err.Error())
		}
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat %s: %s", dir, err.Error())
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}

// FileExists returns true if path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debug("unable to stat file", "file", path, "error", err.Error())
		}
		return false
	}
	return info.Mode().IsRegular()
}

// CopyFile copies src to dst, truncating dst if it already exists.  The
// permissions of src are preserved on a newly created dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat %s: %s", src, err.Error())
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("unable to copy %s to %s: %s", src, dst, err.Error())
	}
	return out.Close()
}
