// Copyright 2025 The serde-luaq Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	luaq2json "github.com/micolous/serde-luaq/internal/luaq2json"
)

func main() {
	rootCommand := luaq2json.New()
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "luaq2json:", err)
		os.Exit(1)
	}
}
