package ssocache

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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/synfinatic/ssocreds/internal/fileutils"
	"github.com/synfinatic/ssocreds/internal/profile"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
	ssotime "github.com/synfinatic/ssocreds/internal/time"
)

// CachedLogin is an SSO access token written to ~/.aws/sso/cache by
// `aws sso login`
type CachedLogin struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
	Region      string `json:"region,omitempty"`
	StartUrl    string `json:"startUrl,omitempty"`
	File        string `json:"-"`
}

// IsCredential returns true if the record has both an access token and
// an expiration
func (c *CachedLogin) IsCredential() bool {
	return c.AccessToken != "" && c.ExpiresAt != ""
}

// IsExpired returns true if the token is no longer valid at now
func (c *CachedLogin) IsExpired(now time.Time) bool {
	return ssotime.IsExpired(now, c.ExpiresAt)
}

// MatchesStartUrl returns true if the token was issued for startUrl.  Some
// identity providers append a suffix such as "#/" to the start URL so a
// cached URL which begins with startUrl also matches, but not the reverse.
func (c *CachedLogin) MatchesStartUrl(startUrl string) bool {
	if c.StartUrl == startUrl {
		return true
	}
	return startUrl != "" && strings.HasPrefix(c.StartUrl, startUrl)
}

// Expires returns the parsed expiration time
func (c *CachedLogin) Expires() (time.Time, error) {
	return ssotime.ParseExpiresAt(c.ExpiresAt)
}

// isCacheFile returns true for entries which should contain a cached login
func isCacheFile(entry os.DirEntry) bool {
	return !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json")
}

// loadCachedLogin reads a single cache file
func loadCachedLogin(path string) (*CachedLogin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &CachedLogin{}
	if err = json.Unmarshal(data, c); err != nil {
		return nil, ssoerr.Parse(path, err)
	}
	c.File = path
	return c, nil
}

// FindCachedLogin returns the first cached login in cacheDir which is
// complete, unexpired and issued for the profile's start URL.  Files are
// checked in the order returned by os.ReadDir (sorted by name) so if more
// than one matches, the first by name wins.  Unreadable files are skipped.
func FindCachedLogin(p *profile.Profile, cacheDir string) (*CachedLogin, error) {
	return findCachedLogin(p, cacheDir, time.Now())
}

func findCachedLogin(p *profile.Profile, cacheDir string, now time.Time) (*CachedLogin, error) {
	// an empty cache is the normal state before the first login
	if err := fileutils.EnsureDir(cacheDir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		return nil, err
	}
	log.Debug("scanning SSO cache", "dir", cacheDir, "entries", len(entries))

	for _, entry := range entries {
		if !isCacheFile(entry) {
			continue
		}

		path := filepath.Join(cacheDir, entry.Name())
		c, err := loadCachedLogin(path)
		if err != nil {
			log.Warn("skipping invalid SSO cache file", "file", path, "error", err.Error())
			continue
		}

		switch {
		case !c.IsCredential():
			log.Debug("not a cached login", "file", path)
		case c.IsExpired(now):
			log.Debug("cached login has expired", "file", path, "expiresAt", c.ExpiresAt)
		case !c.MatchesStartUrl(p.SsoStartUrl):
			log.Debug("cached login is for another start URL", "file", path, "startUrl", c.StartUrl)
		default:
			expires, _ := c.Expires()
			log.Debug("found cached login", "file", path,
				"remaining", expires.Sub(now).Truncate(time.Second).String())
			return c, nil
		}
	}

	return nil, ssoerr.ExpiredCreds(p.SsoStartUrl)
}
