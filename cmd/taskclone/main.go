// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package main is the entry point for the taskclone CLI.
package main

import "github.com/similigh/taskclone/cmd/taskclone/commands"

func main() {
	commands.Execute()
}
