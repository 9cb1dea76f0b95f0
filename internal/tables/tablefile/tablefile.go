// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package tablefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/driftconfig/driftconfig/internal/tables"
)

// EncodeTable encodes the rows of the given table in primary key order, so
// that encoding equal tables always produces equal bytes.
func (f Format) EncodeTable(t *tables.Table) ([]byte, error) {
	rows, _ := t.SortedRows()
	plain := make([]map[string]any, len(rows))
	for i, row := range rows {
		plain[i] = map[string]any(row)
	}
	data, err := f.encode(plain)
	if err != nil {
		return nil, fmt.Errorf("encoding table %q: %w", t.Name(), err)
	}
	return data, nil
}

// DecodeRows decodes a table unit. The rows are returned as decoded; the
// table store normalizes them when they are loaded.
func (f Format) DecodeRows(data []byte) ([]tables.Row, error) {
	var plain []map[string]any
	if err := f.decode(data, &plain); err != nil {
		return nil, fmt.Errorf("decoding table rows: %w", err)
	}
	rows := make([]tables.Row, len(plain))
	for i, row := range plain {
		rows[i] = tables.Row(row)
	}
	return rows, nil
}

// EncodeMeta encodes a store's metadata record.
func (f Format) EncodeMeta(meta tables.Meta) ([]byte, error) {
	data, err := f.encode(&meta)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return data, nil
}

// DecodeMeta decodes a meta unit. Every timestamp of the result is in UTC
// whatever the format recorded.
func (f Format) DecodeMeta(data []byte) (tables.Meta, error) {
	var meta tables.Meta
	if err := f.decode(data, &meta); err != nil {
		return tables.Meta{}, fmt.Errorf("decoding metadata: %w", err)
	}
	meta.LastModified = utc(meta.LastModified)
	for name, stamp := range meta.TableTimestamps {
		meta.TableTimestamps[name] = utc(stamp)
	}
	return meta, nil
}

func (f Format) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case JSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	case Msgpack:
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
	return buf.Bytes(), nil
}

func (f Format) decode(data []byte, v any) error {
	switch f {
	case JSON:
		return json.Unmarshal(data, v)
	case Msgpack:
		return msgpack.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
