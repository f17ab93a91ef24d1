// carter - a terminal chat client for text completion APIs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/carter/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(cli.Execute(versionString()))
}

func versionString() string {
	if GitCommit == "unknown" {
		return Version
	}
	return Version + " (" + GitCommit + ", built " + BuildDate + ")"
}
