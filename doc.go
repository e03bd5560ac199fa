// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

// Package luaq parses the data-only subset of Lua 5.4 source text described
// in the Lua 5.4 reference manual (https://www.lua.org/manual/5.4/manual.html)
// — the subset that Lua programs write out via string.format("%q", ...) or a
// hand-rolled equivalent, typically for save files and configuration.
//
// luaq never executes Lua: there is no concept of a function call, an
// operator, a variable, or control flow. It recognizes nil, booleans,
// numbers, strings and tables, and nothing else. This makes it safe to run
// over untrusted input, bounded by an explicit table-nesting depth budget
// passed to every entry point.
package luaq
