// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"encoding/json"
	"fmt"

	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

type Version interface {
	Diagnostics(diags tfdiags.Diagnostics)
	// PrintVersion returns true if the printing has been done successfully and false otherwise.
	PrintVersion(version, versionPrerelease, platform string, definitionVersion int) bool
}

// NewVersion returns an initialized Version implementation for the given
// ViewType. Diagnostics are always printed in human format.
func NewVersion(vt ViewType, view *View) Version {
	return &VersionHuman{view: view, json: vt == ViewJSON}
}

type VersionHuman struct {
	view *View
	json bool
}

var _ Version = (*VersionHuman)(nil)

func (v *VersionHuman) Diagnostics(diags tfdiags.Diagnostics) {
	v.view.Diagnostics(diags)
}

func (v *VersionHuman) PrintVersion(version, versionPrerelease, platform string, definitionVersion int) bool {
	finalVersion := version
	if versionPrerelease != "" {
		finalVersion = fmt.Sprintf("%s-%s", finalVersion, versionPrerelease)
	}

	if v.json {
		output := versionOutput{
			Version:           finalVersion,
			Platform:          platform,
			DefinitionVersion: definitionVersion,
		}
		jsonOutput, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			_, _ = v.view.streams.Eprintln(fmt.Sprintf("\nError marshalling JSON: %s", err))
			return false
		}
		_, _ = v.view.streams.Println(string(jsonOutput))
		return true
	}

	_, _ = v.view.streams.Println(fmt.Sprintf("driftconfig v%s", finalVersion))
	_, _ = v.view.streams.Println(fmt.Sprintf("on %s", platform))
	_, _ = v.view.streams.Println(fmt.Sprintf("table definition version %d", definitionVersion))
	return true
}

type versionOutput struct {
	Version           string `json:"driftconfig_version"`
	Platform          string `json:"platform"`
	DefinitionVersion int    `json:"definition_version"`
}
