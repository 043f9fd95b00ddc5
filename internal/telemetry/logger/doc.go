// Package logger configures the slog loggers stockd components share.
//
// New returns a plain *slog.Logger; there is no wrapper type to
// thread around. Three behaviors ride on the handler it installs:
//
//   - every logger built here answers to one level variable, so
//     SetLevel moves the whole process during a config reload
//   - string attributes with credential-looking keys are masked
//     before encoding
//   - records logged through the Context call variants pick up the
//     request_id placed in the context by the request-ID middleware
//
// @req RQ-0402
// @design DS-0502
package logger
