// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package cliconfig

import "os"

type ConfigFileSystem interface {
	// ReadFile can read files
	ReadFile(name string) ([]byte, error)
	// Stat can stat files
	Stat(name string) (os.FileInfo, error)
}

type standardFileSystem struct{}

func (sfs *standardFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (sfs *standardFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

type ConfigLoader struct {
	ConfigFileSystem

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

func standardConfigLoader() *ConfigLoader {
	return &ConfigLoader{ConfigFileSystem: &standardFileSystem{}, Getenv: os.Getenv}
}

func (l *ConfigLoader) getenv(name string) string {
	if l.Getenv == nil {
		return os.Getenv(name)
	}
	return l.Getenv(name)
}
