// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/cli"

	"github.com/driftconfig/driftconfig/internal/configdb"
	"github.com/driftconfig/driftconfig/internal/tables"
)

func TestAddTenantCommand(t *testing.T) {
	tests := map[string]struct {
		args       []string
		wantOutput []string
		wantSaved  bool
	}{
		"saved": {
			args:       []string{"-d", "drift-base", "dgnorth"},
			wantOutput: []string{"Changes to config saved at " + filepath.Join(testConfigDir, "dgnorth") + ".", "Remember to push changes to persist them."},
			wantSaved:  true,
		},
		"preview": {
			args:       []string{"-preview", "-d", "drift-base", "dgnorth"},
			wantOutput: []string{"Previewing only. Exiting now."},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, ui, done := testMeta(t)
			testLocal(t, m)

			args := append([]string{
				"-name", "dg-superkaiju-qa",
				"-tier", "DEVNORTH",
				"-organization", "directivegames",
				"-product", "dg-superkaiju",
			}, tc.args...)
			c := &AddTenantCommand{Meta: m}
			if code := c.Run(args); code != 0 {
				t.Fatalf("bad: %d\n%s\n%s", code, ui.ErrorWriter.String(), done(t).Stderr())
			}
			assertContains(t, "stdout", done(t).Stdout(), "New tenant record:", "Associating with deployables:")
			assertContains(t, "output", ui.OutputWriter.String(), append([]string{
				"Adding a new tenant.",
				"  Tenant:       dg-superkaiju-qa",
				`dgnorth: "Directive Games North"`,
			}, tc.wantOutput...)...)

			local := loadLocal(t, m)
			_, reserved := local.MustTable(configdb.TableTenantNames).Get(tables.Row{"tenant_name": "dg-superkaiju-qa"})
			_, provisioned := local.MustTable(configdb.TableTenants).Get(tables.Row{
				"tier_name":       "DEVNORTH",
				"deployable_name": "drift-base",
				"tenant_name":     "dg-superkaiju-qa",
			})
			if reserved != tc.wantSaved || provisioned != tc.wantSaved {
				t.Errorf("wrong saved state: reserved %t, provisioned %t, want %t", reserved, provisioned, tc.wantSaved)
			}
		})
	}
}

func TestAddTenantCommand_errors(t *testing.T) {
	tests := map[string]struct {
		args       []string
		wantCode   int
		wantError  string
		wantStderr string
	}{
		"missing options": {
			args:       []string{"-name", "dg-superkaiju-qa", "dgnorth"},
			wantCode:   cli.RunResultHelp,
			wantStderr: "-tier, -organization, -product",
		},
		"unknown domain": {
			args:      []string{"-n", "dg-superkaiju-qa", "-t", "DEVNORTH", "-o", "directivegames", "-p", "dg-superkaiju", "dgsouth"},
			wantCode:  1,
			wantError: "The domain 'dgsouth' is not found locally. Run 'init' to fetch it.",
		},
		"already provisioned": {
			args:       []string{"-n", "dg-superkaiju-dev", "-t", "DEVNORTH", "-o", "directivegames", "-p", "dg-superkaiju", "-d", "drift-base", "dgnorth"},
			wantCode:   1,
			wantStderr: "duplicate",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, ui, done := testMeta(t)
			before := testLocal(t, m).Checksum()

			c := &AddTenantCommand{Meta: m}
			code := c.Run(tc.args)
			output := done(t)
			if code != tc.wantCode {
				t.Fatalf("wrong exit code %d, want %d\n%s\n%s", code, tc.wantCode, ui.ErrorWriter.String(), output.Stderr())
			}
			if tc.wantError != "" {
				assertContains(t, "errors", ui.ErrorWriter.String(), tc.wantError)
			}
			if tc.wantStderr != "" {
				assertContains(t, "stderr", output.Stderr(), tc.wantStderr)
			}
			if got := loadLocal(t, m).Checksum(); got != before {
				t.Error("the local copy was changed")
			}
		})
	}
}
