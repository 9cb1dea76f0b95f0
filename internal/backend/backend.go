// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package backend contains helpers shared by the backends that table
// stores can be kept in. Each backend lives in its own package and is
// selected by URL scheme through package init.
package backend

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"
)

// ReadPathOrContents reads the contents of the file at the given path when
// it names an existing file, and otherwise returns the argument unchanged.
// Paths starting with "~" are expanded first. Backends use it for settings
// such as tokens that may be given inline or as a file.
func ReadPathOrContents(poc string) (string, error) {
	if len(poc) == 0 {
		return poc, nil
	}

	path := poc
	if path[0] == '~' {
		var err error
		path, err = homedir.Expand(path)
		if err != nil {
			return path, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		contents, err := os.ReadFile(path)
		if err != nil {
			return string(contents), err
		}
		return string(contents), nil
	}

	return poc, nil
}

// LocalPath returns the filesystem path a "file" URL refers to. Both
// "file:///abs/path" and "file://~/path" forms are accepted; the latter is
// expanded relative to the user's home directory.
func LocalPath(u *url.URL) (string, error) {
	path := u.Host + u.Path
	if path == "" {
		return "", fmt.Errorf("URL %q has no path", u.Redacted())
	}
	return homedir.Expand(path)
}

// QueryBool returns the boolean value of the named query parameter, or
// false when it is absent.
func QueryBool(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value for %q: %w", name, err)
	}
	return v, nil
}
