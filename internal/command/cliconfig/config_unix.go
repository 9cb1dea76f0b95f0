// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !windows
// +build !windows

package cliconfig

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
)

// Default directories to use when XDG_* is not defined
// https://specifications.freedesktop.org/basedir-spec/basedir-spec-latest.html
const (
	defaultConfigDir = ".config"

	siteConfigDir = "/etc/drift/config"
)

func configFile() (string, error) {
	dir, err := homeDir()
	if err != nil {
		return "", err
	}

	homeConfigFile := filepath.Join(dir, ".driftconfigrc")
	if xdgDir := os.Getenv("XDG_CONFIG_HOME"); !pathExists(homeConfigFile) && xdgDir != "" {
		return filepath.Join(xdgDir, "driftconfig", "driftconfigrc"), nil
	}

	return homeConfigFile, nil
}

func userConfigDir() (string, error) {
	dir, err := homeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ".drift", "config"), nil
}

func siteDir() string {
	return siteConfigDir
}

func homeDir() (string, error) {
	// First prefer the HOME environmental variable
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}

	// If that fails, try build-in module
	user, err := user.Current()
	if err != nil {
		return "", err
	}

	if user.HomeDir == "" {
		return "", errors.New("blank output")
	}

	return user.HomeDir, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
