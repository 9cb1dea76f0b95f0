// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEntityInfo(t *testing.T) {
	testCases := map[string]struct {
		noun        string
		args        []string
		want        *EntityInfo
		wantErrText string
	}{
		"list": {
			noun: "organization",
			want: &EntityInfo{},
		},
		"name flag": {
			noun: "organization",
			args: []string{"-name", "dg"},
			want: &EntityInfo{Name: "dg"},
		},
		"name argument": {
			noun: "product",
			args: []string{"dg-superkaiju"},
			want: &EntityInfo{Name: "dg-superkaiju"},
		},
		"tier name flag": {
			noun: "tier",
			args: []string{"-t", "LIVENORTH"},
			want: &EntityInfo{Name: "LIVENORTH"},
		},
		"tier name flag is tier only": {
			noun:        "tenant",
			args:        []string{"-tier-name", "LIVENORTH"},
			want:        &EntityInfo{},
			wantErrText: "Failed to parse command-line flags",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParseEntityInfo(tc.noun, tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}

func TestParseTierAdd(t *testing.T) {
	testCases := map[string]struct {
		args        []string
		want        *TierAdd
		wantErrText string
	}{
		"live by default": {
			args: []string{"LIVENORTH"},
			want: &TierAdd{Name: "LIVENORTH", IsLive: true},
		},
		"dev": {
			args: []string{"DEVNORTH", "-is-dev", "-e"},
			want: &TierAdd{Name: "DEVNORTH", IsLive: false, Edit: true},
		},
		"both": {
			args:        []string{"DEVNORTH", "-is-dev", "-is-live"},
			want:        &TierAdd{Name: "DEVNORTH", IsLive: false},
			wantErrText: "mutually exclusive",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParseTierAdd(tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}

func TestParseOrganizationAdd(t *testing.T) {
	got, diags := ParseOrganizationAdd([]string{"directivegames", "dg", "-d", "Directive Games"})
	checkDiags(t, diags, "")
	want := &OrganizationAdd{Name: "directivegames", ShortName: "dg", DisplayName: "Directive Games"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseTenantAdd(t *testing.T) {
	got, diags := ParseTenantAdd([]string{"dg-superkaiju-live", "dg-superkaiju"})
	checkDiags(t, diags, "")
	want := &TenantAdd{Name: "dg-superkaiju-live", Product: "dg-superkaiju"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseDeployableRegister(t *testing.T) {
	got, diags := ParseDeployableRegister([]string{"drift-base", "-t", "LIVENORTH", "-tier", "DEVNORTH"})
	checkDiags(t, diags, "")
	want := &DeployableRegister{Name: "drift-base", Tiers: []string{"LIVENORTH", "DEVNORTH"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result\n%s", diff)
	}
}

func TestParseAddTenant(t *testing.T) {
	testCases := map[string]struct {
		args        []string
		want        *AddTenant
		wantErrText string
	}{
		"complete": {
			args: []string{
				"dgnorth",
				"-n", "dg-superkaiju-live",
				"-t", "LIVENORTH",
				"-o", "directivegames",
				"-p", "dg-superkaiju",
				"-d", "drift-base,themachines-backend",
				"--preview",
			},
			want: &AddTenant{
				Domain:       "dgnorth",
				Name:         "dg-superkaiju-live",
				Tier:         "LIVENORTH",
				Organization: "directivegames",
				Product:      "dg-superkaiju",
				Deployables:  []string{"drift-base", "themachines-backend"},
				Preview:      true,
			},
		},
		"missing options": {
			args:        []string{"dgnorth", "-name", "dg-x"},
			want:        &AddTenant{Domain: "dgnorth", Name: "dg-x"},
			wantErrText: "requires -tier, -organization, -product",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, diags := ParseAddTenant(tc.args)
			checkDiags(t, diags, tc.wantErrText)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected result\n%s", diff)
			}
		})
	}
}
