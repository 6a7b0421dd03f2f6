package predictor


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
	"strings"

	"github.com/posener/complete"
	"github.com/synfinatic/ssocreds/internal/awsconfig"
	"github.com/synfinatic/ssocreds/internal/profile"
)

type Predictor struct {
	configFile string
	profiles   []string
}

// NewPredictor loads the profile names from the AWS config file (if it exists)
func NewPredictor(configFile string) *Predictor {
	p := Predictor{
		configFile: configFile,
		profiles:   []string{},
	}

	c, err := awsconfig.ReadConfig(configFile)
	if err != nil {
		log.Debug("unable to read config for completions", "file", configFile, "error", err.Error())
		return &p
	}

	p.profiles = profile.ProfileNames(c)
	return &p
}

// ProfileComplete returns a list of all the profiles in the AWS config
func (p *Predictor) ProfileComplete() complete.Predictor {
	profiles := []string{}

	// The `:` character is considered a word delimiter by bash complete
	// so we need to escape them
	for _, x := range p.profiles {
		if os.Getenv("__NO_ESCAPE_COLONS") == "" {
			profiles = append(profiles, strings.ReplaceAll(x, ":", "\\:"))
		} else {
			// fish doesn't treat colons as word delimiters
			profiles = append(profiles, x)
		}
	}

	return complete.PredictSet(profiles...)
}

// RegionComplete returns a list of all the valid AWS Regions
func (p *Predictor) RegionComplete() complete.Predictor {
	return complete.PredictSet(profile.AvailableAwsRegions...)
}

// OutputComplete returns the output formats the AWS CLI accepts
func (p *Predictor) OutputComplete() complete.Predictor {
	return complete.PredictSet(profile.AvailableOutputs...)
}
