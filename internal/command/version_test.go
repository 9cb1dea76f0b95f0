// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"
	"testing"

	"github.com/mitchellh/cli"
)

func TestVersionCommand_implements(t *testing.T) {
	var _ cli.Command = &VersionCommand{}
}

func TestVersion(t *testing.T) {
	m, ui, done := testMeta(t)

	c := &VersionCommand{
		Meta:              m,
		Version:           "4.5.6",
		VersionPrerelease: "foo",
		Platform:          "aros_riscv64",
	}
	if code := c.Run([]string{}); code != 0 {
		t.Fatalf("bad: \n%s", ui.ErrorWriter.String())
	}

	actual := strings.TrimSpace(done(t).Stdout())
	expected := "driftconfig v4.5.6-foo\non aros_riscv64\ntable definition version 3"
	if actual != expected {
		t.Fatalf("wrong output\ngot:\n%s\nwant:\n%s", actual, expected)
	}
}

func TestVersion_flags(t *testing.T) {
	m, ui, done := testMeta(t)

	// `driftconfig -v` gets translated to `driftconfig version -v`
	c := &VersionCommand{
		Meta:              m,
		Version:           "4.5.6",
		VersionPrerelease: "foo",
		Platform:          "aros_riscv64",
	}
	if code := c.Run([]string{"-v", "-version"}); code != 0 {
		t.Fatalf("bad: \n%s", ui.ErrorWriter.String())
	}

	actual := strings.TrimSpace(done(t).Stdout())
	if !strings.HasPrefix(actual, "driftconfig v4.5.6-foo\n") {
		t.Fatalf("wrong output\n%s", actual)
	}
}

func TestVersion_json(t *testing.T) {
	m, ui, done := testMeta(t)

	c := &VersionCommand{
		Meta:     m,
		Version:  "4.5.6",
		Platform: "aros_riscv64",
	}
	if code := c.Run([]string{"-json"}); code != 0 {
		t.Fatalf("bad: \n%s", ui.ErrorWriter.String())
	}

	actual := strings.TrimSpace(done(t).Stdout())
	expected := strings.TrimSpace(`
{
  "driftconfig_version": "4.5.6",
  "platform": "aros_riscv64",
  "definition_version": 3
}
`)
	if actual != expected {
		t.Fatalf("wrong output\ngot:\n%s\nwant:\n%s", actual, expected)
	}
}

func TestVersion_badFlag(t *testing.T) {
	m, _, done := testMeta(t)

	c := &VersionCommand{Meta: m, Version: "4.5.6"}
	if code := c.Run([]string{"-nope"}); code != cli.RunResultHelp {
		t.Fatalf("wrong exit code %d", code)
	}
	stderr := done(t).Stderr()
	for _, want := range []string{"Failed to parse command-line flags", "driftconfig version --help"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr is missing %q:\n%s", want, stderr)
		}
	}
}
