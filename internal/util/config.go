// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds groupcraft configuration settings
type Config struct {
	Network string `yaml:"network" description:"Default network (mainnet, testnet, betanet, localnet)" default:"testnet"`

	// Mainnet algod settings
	MainnetAlgodServer string `yaml:"mainnet_algod_server" description:"Mainnet algod server URL"`
	MainnetAlgodPort   int    `yaml:"mainnet_algod_port" description:"Mainnet algod port (if separate from URL)"`
	MainnetAlgodToken  string `yaml:"mainnet_algod_token" description:"Mainnet algod API token"`

	// Testnet algod settings
	TestnetAlgodServer string `yaml:"testnet_algod_server" description:"Testnet algod server URL"`
	TestnetAlgodPort   int    `yaml:"testnet_algod_port" description:"Testnet algod port (if separate from URL)"`
	TestnetAlgodToken  string `yaml:"testnet_algod_token" description:"Testnet algod API token"`

	// Betanet algod settings
	BetanetAlgodServer string `yaml:"betanet_algod_server" description:"Betanet algod server URL"`
	BetanetAlgodPort   int    `yaml:"betanet_algod_port" description:"Betanet algod port (if separate from URL)"`
	BetanetAlgodToken  string `yaml:"betanet_algod_token" description:"Betanet algod API token"`

	// Localnet algod settings (algokit/sandbox style local networks)
	LocalnetAlgodServer string `yaml:"localnet_algod_server" description:"Localnet algod server URL"`
	LocalnetAlgodPort   int    `yaml:"localnet_algod_port" description:"Localnet algod port (if separate from URL)"`
	LocalnetAlgodToken  string `yaml:"localnet_algod_token" description:"Localnet algod API token"`
}

// AlgodConfig holds the resolved algod connection settings for one network.
type AlgodConfig struct {
	Server string
	Port   int
	Token  string
}

// Address returns the full server address including port when configured
// separately from the URL.
func (a AlgodConfig) Address() string {
	if a.Port == 0 || strings.Contains(a.Server, ":"+strconv.Itoa(a.Port)) {
		return a.Server
	}
	return strings.TrimRight(a.Server, "/") + ":" + strconv.Itoa(a.Port)
}

// DefaultConfig returns the default configuration for runtime use.
// Algod URLs are empty - user must explicitly configure them, except
// localnet which defaults to the standard sandbox endpoint.
func DefaultConfig() Config {
	return Config{
		Network:             "testnet",
		LocalnetAlgodServer: "http://localhost",
		LocalnetAlgodPort:   4001,
		LocalnetAlgodToken:  strings.Repeat("a", 64),
	}
}

// GetAlgodConfig returns the algod settings for the given network.
func (c *Config) GetAlgodConfig(network string) (AlgodConfig, error) {
	switch network {
	case "mainnet":
		return AlgodConfig{c.MainnetAlgodServer, c.MainnetAlgodPort, c.MainnetAlgodToken}, nil
	case "testnet":
		return AlgodConfig{c.TestnetAlgodServer, c.TestnetAlgodPort, c.TestnetAlgodToken}, nil
	case "betanet":
		return AlgodConfig{c.BetanetAlgodServer, c.BetanetAlgodPort, c.BetanetAlgodToken}, nil
	case "localnet":
		return AlgodConfig{c.LocalnetAlgodServer, c.LocalnetAlgodPort, c.LocalnetAlgodToken}, nil
	default:
		return AlgodConfig{}, fmt.Errorf("unknown network: %s", network)
	}
}

// GetDataDir returns the data directory for groupcraft clients.
// Resolution order: flag value > GROUPCRAFT_DATA env var > ~/.groupcraft
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv("GROUPCRAFT_DATA"); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".groupcraft")
}

// GetConfigPath returns the path of the config file within a data directory.
func GetConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig reads config.yaml from the data directory. A missing file is
// not an error; defaults are returned so localnet works out of the box.
func LoadConfig(dataDir string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(GetConfigPath(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}
