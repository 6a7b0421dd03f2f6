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
	"net/http"
	"net/url"
	"os"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/synfinatic/ssocreds/internal/ssoerr"
	"golang.org/x/net/http/httpproxy"
)

// ProxyEnvVars are checked in order for the proxy to use
var ProxyEnvVars = []string{"https_proxy", "HTTPS_PROXY"}

// ProxyFromEnv returns the HTTPS proxy configured in the environment
func ProxyFromEnv() (string, error) {
	for _, env := range ProxyEnvVars {
		if proxy, ok := os.LookupEnv(env); ok && proxy != "" {
			log.Debug("using proxy", "env", env, "proxy", proxy)
			return proxy, nil
		}
	}
	return "", ssoerr.Config("no proxy found in env, set HTTPS_PROXY or remove proxy flag and try again")
}

// noProxy returns the value of NO_PROXY or no_proxy
func noProxy() string {
	for _, env := range []string{"NO_PROXY", "no_proxy"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// NewHTTPClient returns an AWS SDK HTTP client which sends all requests
// via proxy, except for the hosts listed in NO_PROXY
func NewHTTPClient(proxy string) (*awshttp.BuildableClient, error) {
	if _, err := url.Parse(proxy); err != nil {
		return nil, ssoerr.Config(fmt.Sprintf("invalid proxy %s: %s", proxy, err.Error()))
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  proxy,
		HTTPSProxy: proxy,
		NoProxy:    noProxy(),
	}
	proxyFunc := cfg.ProxyFunc()

	client := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		tr.Proxy = func(req *http.Request) (*url.URL, error) {
			return proxyFunc(req.URL)
		}
	})
	return client, nil
}
