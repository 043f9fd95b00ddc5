// Package output renders CLI command results.
//
// Every command supports three renderings selected by --output: a
// tabwriter-aligned table for humans, and JSON or YAML for scripts.
// NewFormatter maps the flag value to the right Formatter; unknown
// values fall back to the table. TableFormatter derives tables from
// structs and slices by reflection, honoring `table:"wide"` tags for
// columns the --wide flag reveals.
//
// Spinner is the one piece of interactive output, used while the CLI
// waits on its first connection to the server.
//
// @design DS-0601
package output
