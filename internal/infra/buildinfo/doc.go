// Package buildinfo identifies the running binary.
//
// Version, Commit, and BuildTime feed the startup log, the CLI
// --version output, and the service_info metric. Release builds stamp
// them with ldflags; otherwise Commit and BuildTime fall back to the
// VCS metadata the toolchain embeds.
//
// @design DS-0501
package buildinfo
