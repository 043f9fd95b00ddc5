// Package confloader loads the server configuration from layered
// sources, built on koanf.
//
// A Loader fills a pre-defaulted config struct in two passes: the
// YAML config file first, then STOCKD_-prefixed environment
// variables. What the environment sets wins over the file, and the
// file wins over the defaults baked into the struct.
//
// A Watcher pairs with the Loader for live reload: it observes the
// directory holding the config file and invokes callbacks when the
// file is written or atomically replaced.
//
// @design DS-0502
// @adr AD-0501
package confloader
