// Package errors provides operator-facing error wrapping for the pipeline
// CLI. Every fatal pipeline diagnostic is a CLIError carrying a message, the
// underlying detail, and an actionable suggestion (usually: re-run with
// resume enabled).
package errors
