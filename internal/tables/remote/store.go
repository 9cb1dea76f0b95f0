// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package remote

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/driftconfig/driftconfig/internal/tables"
	"github.com/driftconfig/driftconfig/internal/tables/tablefile"
)

// Store reads and writes whole table stores through a Client. Each table is
// stored in its own unit, named after the table, and the metadata in a meta
// unit that is always written last.
type Store struct {
	Client Client

	// Format is the format written by SaveTableStore. Reads accept any
	// format, preferring this one when units of several formats exist.
	Format tablefile.Format

	// Now returns the time used to stamp metadata. Defaults to time.Now.
	Now func() time.Time
}

// LoadOptions are the settings for LoadTableStore.
type LoadOptions struct {
	tables.Options

	// CreateMissing leaves a table empty when its unit is missing instead of
	// failing, so that stores saved with an older definition can be loaded
	// and migrated.
	CreateMissing bool
}

// NewStore returns a store that writes units in the given format.
func NewStore(client Client, format tablefile.Format) *Store {
	return &Store{Client: client, Format: format}
}

// LoadMeta reads only the metadata of the stored table store. It returns an
// error wrapping ErrNotFound when the backend holds no table store.
func (s *Store) LoadMeta(ctx context.Context) (*tables.Meta, error) {
	meta, _, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// LoadTableStore reads the stored table store. Rows are checked against def
// if opts enables integrity checking.
func (s *Store) LoadTableStore(ctx context.Context, def *tables.Definition, opts LoadOptions) (*tables.TableStore, error) {
	meta, format, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	ts := tables.NewTableStore(def, opts.Options)
	for _, name := range def.TableNames() {
		unit := format.TableUnit(name)
		payload, err := s.get(ctx, unit)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			if !opts.CreateMissing {
				return nil, fmt.Errorf("table %q: %w", name, ErrMissingTable)
			}
			log.Printf("[WARN] remote: unit %q is missing, table %q starts out empty", unit, name)
			continue
		}
		rows, err := format.DecodeRows(payload.Data)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", unit, err)
		}
		if err := ts.LoadRows(name, rows); err != nil {
			return nil, fmt.Errorf("reading %q: %w", unit, err)
		}
	}
	ts.SetMeta(*meta)

	if meta.DefinitionVersion != def.Version {
		log.Printf("[WARN] remote: stored definition version %d, expected %d", meta.DefinitionVersion, def.Version)
	}
	if err := ts.CheckIntegrity(); err != nil {
		return nil, err
	}
	return ts, nil
}

// SaveTableStore refreshes the metadata of ts and writes it to the backend.
// The integrity check, if enabled, runs before the metadata is touched or
// anything is written. Table
// units are written first and the meta unit last, so that a reader never
// sees metadata describing tables that are not there yet.
func (s *Store) SaveTableStore(ctx context.Context, ts *tables.TableStore) error {
	format := s.Format
	if format == "" {
		format = tablefile.JSON
	}

	if err := ts.CheckIntegrity(); err != nil {
		return err
	}
	_, meta := ts.RefreshMetadata(s.now())

	for _, name := range ts.TableNames() {
		data, err := format.EncodeTable(ts.MustTable(name))
		if err != nil {
			return err
		}
		if err := s.put(ctx, format.TableUnit(name), data); err != nil {
			return err
		}
	}
	data, err := format.EncodeMeta(meta)
	if err != nil {
		return err
	}
	if err := s.put(ctx, format.MetaUnit(), data); err != nil {
		return err
	}

	if err := s.removeStale(ctx, ts, format); err != nil {
		// The store was written in full; leftovers only cost space.
		log.Printf("[WARN] remote: %s", err)
	}
	return nil
}

// loadMeta finds the meta unit, trying the preferred format first, and
// decodes it. The format of the meta unit is the format of the whole store.
func (s *Store) loadMeta(ctx context.Context) (*tables.Meta, tablefile.Format, error) {
	for _, format := range s.probeOrder() {
		unit := format.MetaUnit()
		payload, err := s.get(ctx, unit)
		if err != nil {
			return nil, "", err
		}
		if payload == nil {
			continue
		}
		meta, err := format.DecodeMeta(payload.Data)
		if err != nil {
			return nil, "", fmt.Errorf("reading %q: %w", unit, err)
		}
		log.Printf("[TRACE] remote: found %s store with checksum %s", format, meta.Checksum)
		return &meta, format, nil
	}
	return nil, "", ErrNotFound
}

// removeStale deletes units of formats other than the one just written,
// left behind when a store changes format.
func (s *Store) removeStale(ctx context.Context, ts *tables.TableStore, format tablefile.Format) error {
	units, err := s.Client.List(ctx)
	if err != nil {
		return &BackendUnavailableError{Op: "list", Err: err}
	}
	names := ts.TableNames()

	var errs *multierror.Error
	for _, unit := range units {
		name, f, ok := tablefile.ParseUnit(unit)
		if !ok || f == format {
			continue
		}
		if name != tablefile.MetaUnitName && !slices.Contains(names, name) {
			continue
		}
		log.Printf("[DEBUG] remote: removing stale unit %q", unit)
		if err := s.Client.Delete(ctx, unit); err != nil {
			errs = multierror.Append(errs, &BackendUnavailableError{Op: "delete", Unit: unit, Err: err})
		}
	}
	return errs.ErrorOrNil()
}

func (s *Store) probeOrder() []tablefile.Format {
	ret := make([]tablefile.Format, 0, len(tablefile.Formats))
	if s.Format != "" {
		ret = append(ret, s.Format)
	}
	for _, f := range tablefile.Formats {
		if f != s.Format {
			ret = append(ret, f)
		}
	}
	return ret
}

func (s *Store) get(ctx context.Context, unit string) (*Payload, error) {
	payload, err := s.Client.Get(ctx, unit)
	if err != nil {
		return nil, &BackendUnavailableError{Op: "get", Unit: unit, Err: err}
	}
	return payload, nil
}

func (s *Store) put(ctx context.Context, unit string, data []byte) error {
	if err := s.Client.Put(ctx, unit, data); err != nil {
		return &BackendUnavailableError{Op: "put", Unit: unit, Err: err}
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
