// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/MarcoCot1982/dashtrack/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
