// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"os"
)

const (
	defaultConfigFile  = "./config.yaml"
	fallbackConfigFile = "./config.yml"
	configFileEnv      = "TESTPRO_CONFIGFILE"
)

// configFlag registers -config on the default flag set once and parses it.
// set reports whether the flag was given on the command line.
func configFlag() (path string, set bool) {
	f := flag.Lookup("config")
	if f == nil {
		flag.String("config", defaultConfigFile, "Path to a TestPro configuration file in YAML format.")
		f = flag.Lookup("config")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	flag.Visit(func(v *flag.Flag) {
		if v.Name == "config" {
			set = true
		}
	})

	return f.Value.String(), set
}

// resolveConfigPath picks the YAML file to load: the -config flag, then
// TESTPRO_CONFIGFILE, then ./config.yaml or, if that is missing, ./config.yml.
func resolveConfigPath(flagValue string, flagSet bool) string {
	if flagSet {
		return flagValue
	}

	if env := os.Getenv(configFileEnv); env != "" {
		return env
	}

	if _, err := os.Stat(defaultConfigFile); os.IsNotExist(err) {
		if _, err := os.Stat(fallbackConfigFile); err == nil {
			return fallbackConfigFile
		}
	}

	return defaultConfigFile
}
