// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"github.com/mitchellh/cli"
	"github.com/mitchellh/colorstring"

	"github.com/driftconfig/driftconfig/internal/terminal"
)

// colorUi colors errors red and warnings yellow. Warnings are written to
// stdout so that they stay in order with the rest of the output.
type colorUi struct {
	cli.Ui
	colorize *colorstring.Colorize
}

func (u *colorUi) Error(msg string) {
	u.Ui.Error(u.colorize.Color("[red]" + msg + "[reset]"))
}

func (u *colorUi) Warn(msg string) {
	u.Ui.Output(u.colorize.Color("[yellow]" + msg + "[reset]"))
}

// NewBasicUI returns a [cli.Ui] writing to the given streams. Colors are
// left out when colorize is disabled.
func NewBasicUI(streams *terminal.Streams, colorize *colorstring.Colorize) cli.Ui {
	return &colorUi{
		Ui: &cli.BasicUi{
			Writer:      streams.Stdout.File,
			ErrorWriter: streams.Stderr.File,
			Reader:      streams.Stdin.File,
		},
		colorize: colorize,
	}
}
