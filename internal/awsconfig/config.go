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
	"bytes"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/synfinatic/ssocreds/internal/fileutils"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
	"gopkg.in/ini.v1"
)

// DEFAULT_SECTION holds keys which appear before the first [section]
var DEFAULT_SECTION = ini.DefaultSection

var prettyOnce sync.Once

// Section is the flat key = value contents of a single [section]
type Section map[string]string

// Config maps section names to their contents
type Config map[string]Section

// Start URLs may contain a '#' and AWS uses nested values for
// things like [profile foo] s3 = ...  Quotes are kept as-is so values
// in sections we never touch are written back byte for byte.
var loadOptions = ini.LoadOptions{
	AllowNestedValues:       true,
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
}

// ReadConfig parses the INI file at path
func ReadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig parses the INI formatted data which was read from path
func ParseConfig(path string, data []byte) (Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return Config{}, ssoerr.Parse(path, err)
	}

	c := Config{}
	for _, sec := range f.Sections() {
		if sec.Name() == DEFAULT_SECTION && len(sec.Keys()) == 0 {
			continue
		}
		c[sec.Name()] = Section(sec.KeysHash())
	}
	log.Debug("read config", "file", path, "sections", len(c))
	return c, nil
}

// Marshal returns the INI encoding of the config.  Sections and keys are
// sorted so the output is stable.
func (c Config) Marshal() ([]byte, error) {
	f := ini.Empty(loadOptions)

	for _, name := range c.SectionNames() {
		var sec *ini.Section
		var err error
		if name == DEFAULT_SECTION {
			sec = f.Section(name)
		} else if sec, err = f.NewSection(name); err != nil {
			return []byte{}, fmt.Errorf("invalid section [%s]: %s", name, err.Error())
		}

		fields := c[name]
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := sec.NewKey(k, fields[k]); err != nil {
				return []byte{}, fmt.Errorf("invalid key %s in [%s]: %s", k, name, err.Error())
			}
		}
	}

	// ini keeps the output style in package globals.  We want the
	// "key = value" style the AWS CLI writes.
	prettyOnce.Do(func() {
		ini.PrettyFormat = false
		ini.PrettyEqual = true
	})

	buf := &bytes.Buffer{}
	if _, err := f.WriteTo(buf); err != nil {
		return []byte{}, err
	}
	return buf.Bytes(), nil
}

// SectionNames returns the sorted list of sections
func (c Config) SectionNames() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteConfig replaces the contents of path with the INI encoding of c
func WriteConfig(path string, c Config) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err = fileutils.EnsureDirExists(path); err != nil {
		return err
	}

	// WriteFile truncates so nothing from the previous version survives
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	log.Debug("wrote config", "file", path, "sections", len(c))
	return nil
}

// FileExists returns true if path is an existing file
func FileExists(path string) bool {
	return fileutils.FileExists(path)
}
