// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !windows
// +build !windows

package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFileConfigDir(t *testing.T) {
	baseDir := t.TempDir()
	homeDir := filepath.Join(baseDir, "home")

	tests := []struct {
		name          string
		xdgConfigHome string
		files         []string
		testFunc      func() (string, error)
		expect        string
	}{
		{
			name:     "configFile: use home driftconfigrc",
			testFunc: configFile,
			files:    []string{filepath.Join(homeDir, ".driftconfigrc")},
			expect:   filepath.Join(homeDir, ".driftconfigrc"),
		},
		{
			name:     "configFile: home driftconfigrc fallback",
			testFunc: configFile,
			expect:   filepath.Join(homeDir, ".driftconfigrc"),
		},
		{
			name:          "configFile: use xdg driftconfigrc",
			testFunc:      configFile,
			xdgConfigHome: filepath.Join(baseDir, "xdg"),
			expect:        filepath.Join(baseDir, "xdg", "driftconfig", "driftconfigrc"),
		},
		{
			name:          "configFile: prefer home driftconfigrc",
			testFunc:      configFile,
			xdgConfigHome: filepath.Join(baseDir, "xdg"),
			files:         []string{filepath.Join(homeDir, ".driftconfigrc")},
			expect:        filepath.Join(homeDir, ".driftconfigrc"),
		},
		{
			name:     "userConfigDir",
			testFunc: userConfigDir,
			expect:   filepath.Join(homeDir, ".drift", "config"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("HOME", homeDir)
			t.Setenv("XDG_CONFIG_HOME", test.xdgConfigHome)
			for _, f := range test.files {
				createFile(t, f)
			}

			file, err := test.testFunc()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if test.expect != file {
				t.Fatalf("expected %q, but got %q", test.expect, file)
			}
		})
	}
}

func createFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
}
