// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package luaq

// entryKind distinguishes the three spellings a table entry can take in
// source: `[k] = v`, `name = v`, and a bare positional `v`.
type entryKind uint8

const (
	entryPositional entryKind = iota
	entryNamed
	entryKeyed
)

// TableEntry is one element of a parsed table constructor, in source order.
//
// Grounded on the Rust original's src/table_entry.rs TableEntry enum; the
// teacher's own VM tables (internal/lua/value.go) never need this
// three-way split because they evaluate a constructor straight into a
// single hash/array representation instead of preserving its syntax.
//
//   - Positional holds a bare `v` entry: its index is implicit, assigned by
//     counting position among other Positional entries (see SPEC_FULL.md
//     §4.2 and luadata's densification pass).
//   - Named holds a `name = v` entry, where name is a valid Lua identifier.
//   - Keyed holds a `[k] = v` entry, or a `name = v` entry whose name is
//     not a valid identifier spelling once round-tripped. The parser
//     accepts any value as k, including nil, a boolean or a table.
type TableEntry struct {
	kind  entryKind
	name  string
	key   Value
	value Value
}

// PositionalEntry returns a bare positional table entry holding v.
func PositionalEntry(v Value) TableEntry {
	return TableEntry{kind: entryPositional, value: v}
}

// NamedEntry returns a `name = v` table entry. name must satisfy
// [IsValidIdentifier]; callers constructing entries outside the parser
// (e.g. luadata's encoder, if ever added) should prefer [KeyedEntry] with a
// string key when name is not a valid identifier.
func NamedEntry(name string, v Value) TableEntry {
	return TableEntry{kind: entryNamed, name: name, value: v}
}

// KeyedEntry returns a `[key] = v` table entry.
func KeyedEntry(key, v Value) TableEntry {
	return TableEntry{kind: entryKeyed, key: key, value: v}
}

// NewFieldEntry builds the table entry the parser would produce for a
// `field = v` clause, selecting Named or Keyed the way Lua's own printer
// does: when the field name is a valid Lua identifier, it is stored as a
// Named entry (so it round-trips as `name = v`); otherwise it is stored as
// a Keyed entry with a string key (so it round-trips as `["name"] = v`).
//
// Grounded on the Rust original's TableEntry::new_field, the single
// Named-vs-Keyed decision point for this spec.
func NewFieldEntry(name []byte, v Value) TableEntry {
	if IsValidIdentifier(name) {
		return NamedEntry(string(name), v)
	}
	return KeyedEntry(StringValue(name), v)
}

// Kind reports which of the three entry spellings e is.
func (e TableEntry) Kind() entryKind { return e.kind }

// IsPositional reports whether e is a bare positional entry.
func (e TableEntry) IsPositional() bool { return e.kind == entryPositional }

// Name returns e's field name and true, if e is a Named entry.
func (e TableEntry) Name() (string, bool) {
	if e.kind != entryNamed {
		return "", false
	}
	return e.name, true
}

// Key returns e's key value and true, if e is a Keyed entry. For a Named
// entry, the equivalent key is [TableEntry.EffectiveKey].
func (e TableEntry) Key() (Value, bool) {
	if e.kind != entryKeyed {
		return Value{}, false
	}
	return e.key, true
}

// EffectiveKey returns the key e would occupy once densified into a plain
// map: for Named, the field name as a string Value; for Keyed, its key;
// for Positional, false (positional entries have no key until the
// densification pass in luadata assigns one).
func (e TableEntry) EffectiveKey() (Value, bool) {
	switch e.kind {
	case entryNamed:
		return StringValue([]byte(e.name)), true
	case entryKeyed:
		return e.key, true
	default:
		return Value{}, false
	}
}

// Value returns e's value, regardless of entry kind.
func (e TableEntry) Value() Value { return e.value }

func (e TableEntry) clone() TableEntry {
	cp := e
	cp.value = e.value.Clone()
	if e.kind == entryKeyed {
		cp.key = e.key.Clone()
	}
	return cp
}

// equal implements SPEC_FULL.md §3's table-entry equality: spellings that
// denote the same effective key compare equal even when they differ in
// kind, specifically Named("a", v) == Keyed(String("a"), v). Positional
// entries never have an effective key, so they only compare equal to other
// Positional entries.
func (e TableEntry) equal(other TableEntry) bool {
	if !e.value.Equal(other.value) {
		return false
	}
	if e.kind == entryPositional || other.kind == entryPositional {
		return e.kind == other.kind
	}
	ek, _ := e.EffectiveKey()
	ok, _ := other.EffectiveKey()
	return ek.Equal(ok)
}
