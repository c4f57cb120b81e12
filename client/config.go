// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/fuelvm/fuels-go/trace"
)

type Config struct {
	// Endpoint is the node's RPC base URI.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// RequestTimeout bounds a single dispatch round trip.
	RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`

	Trace trace.Config `yaml:"trace" json:"trace"`
}

func DefaultConfig() Config {
	return Config{
		Endpoint:       "http://localhost:4000",
		RequestTimeout: 30 * time.Second,
	}
}

// LoadConfig reads a YAML config from [path], applying defaults for any
// omitted field.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
