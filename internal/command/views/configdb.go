// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"fmt"

	"github.com/driftconfig/driftconfig/internal/configdb"
)

// Header prints which configuration database a command works on.
func (v *View) Header(d configdb.Domain) {
	_, _ = v.streams.Println(v.colorize.Color(fmt.Sprintf("Drift config DB [bold]%s[reset] at origin [bold]%s[reset]", d.Name, d.Origin)))
}

// Epilogue reminds the user how to review and publish local changes.
func (v *View) Epilogue(d configdb.Domain) {
	_, _ = v.streams.Println(fmt.Sprintf("Run \"driftconfig diff %s -d\" to see changes. Run \"driftconfig push %s\" to commit them.", d.Name, d.Name))
}
