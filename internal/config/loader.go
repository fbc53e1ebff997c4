// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read by Load, as in
// QUIVER_TEAM_SIZE=3.
const EnvPrefix = "QUIVER_"

// DefaultFile is the path of the configuration file relative to the XDG
// config directories.
const DefaultFile = "quiver/config.yaml"

// Load builds a Config by layering, from low to high precedence:
//  1. the defaults returned by New
//  2. the YAML file at path, or DefaultFile in the XDG config
//     directories when path is empty and such a file exists
//  3. QUIVER_ prefixed environment variables
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		found, err := xdg.SearchConfigFile(DefaultFile)
		if err == nil {
			path = found
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: config file %s does not exist", ErrInvalidConfig, path)
	}

	if path != "" {
		logrus.Debugf("loading config from %s", path)
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// QUIVER_TEAM_SIZE -> team_size
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}

	config := New()
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return config, nil
}
