// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings shared by the skos commands.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/fetch"
)

const (
	KeyLoadDepth     = "load.depth"
	KeyLoadFlat      = "load.flat"
	KeyLoadNormalize = "load.normalize"
	KeyLoadFormat    = "load.format"

	KeyFetchTimeout   = "fetch.timeout"
	KeyFetchUserAgent = "fetch.user_agent"

	KeyCacheBackend = "cache.backend"
	KeyCacheAddress = "cache.address"
	KeyCacheSize    = "cache.size"

	KeyHTTPHost = "http.host"
	KeyHTTPPort = "http.port"
)

// EnvPrefix is prepended to the upper-cased keys when read from the environment,
// so load.depth is SKOS_LOAD_DEPTH.
const EnvPrefix = "SKOS"

// Config defines the behavior of a load and of the servers built on top of it.
type Config struct {
	Load  LoadConfig
	Fetch FetchConfig
	Cache CacheConfig
	HTTP  HTTPConfig
}

// LoadConfig holds the options of the loader itself.
type LoadConfig struct {
	// Depth is kept as text so that "inf" can be written in config files.
	Depth     string
	Flat      bool
	Normalize string
	Format    string
}

type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string `mapstructure:"user_agent"`
}

type CacheConfig struct {
	Backend string
	Address string
	Size    int
}

type HTTPConfig struct {
	Host string
	Port int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLoadDepth, "0")
	v.SetDefault(KeyLoadFlat, false)
	v.SetDefault(KeyLoadNormalize, "default")
	v.SetDefault(KeyLoadFormat, "")
	v.SetDefault(KeyFetchTimeout, fetch.DefaultTimeout)
	v.SetDefault(KeyFetchUserAgent, fetch.DefaultUserAgent)
	v.SetDefault(KeyCacheBackend, "")
	v.SetDefault(KeyCacheAddress, "")
	v.SetDefault(KeyCacheSize, 0)
	v.SetDefault(KeyHTTPHost, "127.0.0.1")
	v.SetDefault(KeyHTTPPort, 64280)
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, into v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %q: %w", file, err)
		}
	}
	return Decode(v)
}

// Decode validates and returns the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if _, err := ParseDepth(c.Load.Depth); err != nil {
		return nil, err
	}
	if _, err := skos.NormalizerByName(c.Load.Normalize); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseDepth reads a resolution depth. "inf", "infinite" and "-1" follow every
// reference; other values must be non-negative integers.
func ParseDepth(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return 0, nil
	case "inf", "infinite", "unlimited":
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || !math.IsInf(f, 1) {
			return 0, &skos.ConfigurationError{Field: "depth", Reason: fmt.Sprintf("%q is not a number", s)}
		}
		return -1, nil
	}
	if n < -1 {
		return 0, &skos.ConfigurationError{Field: "depth", Reason: fmt.Sprintf("%d is negative", n)}
	}
	return n, nil
}

// Options returns the loader options described by the config. The fetcher is
// left for the caller to set.
func (c *Config) Options() (skos.Options, error) {
	depth, err := ParseDepth(c.Load.Depth)
	if err != nil {
		return skos.Options{}, err
	}
	norm, err := skos.NormalizerByName(c.Load.Normalize)
	if err != nil {
		return skos.Options{}, err
	}
	return skos.Options{MaxDepth: depth, Flat: c.Load.Flat, Normalize: norm}, nil
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
