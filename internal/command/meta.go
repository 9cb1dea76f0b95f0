// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"os/user"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	backendInit "github.com/driftconfig/driftconfig/internal/backend/init"
	"github.com/driftconfig/driftconfig/internal/command/cliconfig"
	"github.com/driftconfig/driftconfig/internal/command/views"
	"github.com/driftconfig/driftconfig/internal/domains"
	"github.com/driftconfig/driftconfig/internal/plugins"
	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/remote"
	"github.com/driftconfig/driftconfig/internal/tfdiags"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	// Ui is the output of messages that are not rendered by a view.
	Ui cli.Ui

	// View renders diagnostics and the structured output of commands.
	View *views.View

	// Config is the CLI configuration.
	Config *cliconfig.Config

	// Plugins are the deployable plugins installed on this machine.
	Plugins plugins.Registry

	// Fs holds the local working copies.
	Fs afero.Fs

	// CallerContext is the context of the command invocation. It is
	// canceled when driftconfig is interrupted.
	CallerContext context.Context

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Username returns the name recorded in reservations. Defaults to the
	// name of the current operating system user.
	Username func() string

	// RunEditor opens path in an editor and waits for the editor to exit.
	// Defaults to running the editor command of the CLI configuration.
	RunEditor func(ctx context.Context, path string) error

	// The global options.
	ConfigURL string
	UserDir   bool
	NoCheck   bool
	Verbose   bool
}

// CommandContext returns the context commands run blocking operations in.
func (m *Meta) CommandContext() context.Context {
	if m.CallerContext == nil {
		return context.Background()
	}
	return m.CallerContext
}

func (m *Meta) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Meta) username() string {
	if m.Username != nil {
		return m.Username()
	}
	u, err := user.Current()
	if err != nil {
		log.Printf("[WARN] cannot determine the current user: %s", err)
		return "unknown"
	}
	return u.Username
}

// tableOptions returns the options local and origin stores are loaded
// with. Integrity checking is on unless disabled by -nocheck or the CLI
// configuration.
func (m *Meta) tableOptions() tables.Options {
	opts := tables.DefaultOptions()
	opts.CheckIntegrity = m.Config.IntegrityEnabled() && !m.NoCheck
	return opts
}

// dirs returns the location of the local working copies. The site
// directory is used if it exists, unless -user-dir is given.
func (m *Meta) dirs() *domains.Dirs {
	d := &domains.Dirs{
		Fs:      m.Fs,
		User:    m.Config.ConfigDir,
		Site:    m.Config.SiteDir,
		UseUser: m.UserDir,
		Format:  m.Config.Format(),
	}
	if !d.UseUser && d.Site != "" {
		if exists, _ := afero.DirExists(m.Fs, d.Site); !exists {
			log.Printf("[TRACE] site directory %s does not exist, using %s", d.Site, d.User)
			d.UseUser = true
		}
	}
	return d
}

// originStore returns the store for a backend URL.
func (m *Meta) originStore(ctx context.Context, rawURL string) (*remote.Store, error) {
	client, err := backendInit.New(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	s := remote.NewStore(client, m.Config.Format())
	s.Now = m.now
	return s, nil
}

// defaultConfig resolves the configuration commands operate on when not
// given a domain.
func (m *Meta) defaultConfig(ctx context.Context) (*domains.Default, error) {
	return m.dirs().GetDefault(ctx, m.ConfigURL, m.tableOptions())
}

// showDiagnostics displays diagnostics and errors. Integrity errors are
// expanded into one diagnostic per problem.
func (m *Meta) showDiagnostics(vals ...interface{}) {
	var diags tfdiags.Diagnostics
	for _, v := range vals {
		var integrity *tables.IntegrityError
		if err, ok := v.(error); ok && errors.As(err, &integrity) {
			diags = diags.Append(tfdiags.Sourceless(
				tfdiags.Error,
				"Integrity check failed",
				"The configuration database violates its schema or relational constraints. Use -nocheck to skip the checks.",
			))
			diags = diags.Append(integrity.Diags)
			continue
		}
		diags = diags.Append(v)
	}
	m.View.Diagnostics(diags)
}

// withLocalConfig runs fn on the local copy of the default configuration,
// and saves the copy if fn changed it. fn returns an exit code; the copy is
// only saved on success.
func (m *Meta) withLocalConfig(ctx context.Context, fn func(ts *tables.TableStore, domain string) int) int {
	def, err := m.defaultConfig(ctx)
	if err != nil {
		m.showDiagnostics(err)
		return 1
	}
	if def.Local == nil {
		m.Ui.Error(fmt.Sprintf(
			"The configuration %q at %s is not stored locally. Run \"driftconfig init %s\" to make a local copy.",
			def.Domain.Name, def.URL, def.URL,
		))
		return 1
	}

	ts := def.TableStore
	before := ts.Checksum()
	if code := fn(ts, def.Domain.Name); code != 0 {
		return code
	}
	if ts.Checksum() == before {
		log.Printf("[DEBUG] local copy of %s is unchanged", def.Domain.Name)
		return 0
	}

	path, err := m.dirs().Save(ctx, ts)
	if err != nil {
		m.showDiagnostics(err)
		return 1
	}
	m.Ui.Output(fmt.Sprintf("Changes saved to %s.", path))
	m.View.Epilogue(def.Domain)
	return 0
}

// editRow opens row as JSON in an editor. It returns the edited row, or
// false if the text was left empty or unchanged.
func (m *Meta) editRow(ctx context.Context, row tables.Row) (tables.Row, bool, error) {
	data, err := json.MarshalIndent(row, "", "    ")
	if err != nil {
		return nil, false, err
	}
	edited, err := m.editText(ctx, "driftconfig-*.json", data)
	if err != nil || edited == nil {
		return nil, false, err
	}

	var ret tables.Row
	if err := json.Unmarshal(edited, &ret); err != nil {
		return nil, false, fmt.Errorf("the edited entry is not a valid JSON object: %w", err)
	}
	return ret, true, nil
}

// editText opens data in an editor through a temporary file. It returns the
// edited text, or nil if it is empty or unchanged.
func (m *Meta) editText(ctx context.Context, pattern string, data []byte) ([]byte, error) {
	f, err := afero.TempFile(m.Fs, "", pattern)
	if err != nil {
		return nil, fmt.Errorf("creating a file to edit: %w", err)
	}
	path := f.Name()
	defer func() {
		if err := m.Fs.Remove(path); err != nil {
			log.Printf("[WARN] removing %s: %s", path, err)
		}
	}()
	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	if err := m.runEditor(ctx, path); err != nil {
		return nil, fmt.Errorf("running the editor: %w", err)
	}

	edited, err := afero.ReadFile(m.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(edited) == 0 || string(edited) == string(data) {
		return nil, nil
	}
	return edited, nil
}

func (m *Meta) runEditor(ctx context.Context, path string) error {
	if m.RunEditor != nil {
		return m.RunEditor(ctx, path)
	}

	words, err := shellwords.Parse(m.Config.EditorCommand())
	if err != nil {
		return fmt.Errorf("parsing the editor command %q: %w", m.Config.EditorCommand(), err)
	}
	if len(words) == 0 {
		return fmt.Errorf("no editor command configured")
	}
	log.Printf("[DEBUG] running editor %q on %s", words, path)

	streams := m.View.Streams()
	cmd := exec.CommandContext(ctx, words[0], append(words[1:], path)...)
	cmd.Stdin = streams.Stdin.File
	cmd.Stdout = streams.Stdout.File
	cmd.Stderr = streams.Stderr.File
	return cmd.Run()
}
