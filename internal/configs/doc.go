// Package configs loads and saves envcrypt.toml, the optional per-package
// configuration read by envcrypt generate.
//
// # Manifest
//
//	package   = "config"
//	output    = "envcrypt_gen.go"
//	env_files = [".env"]
//	sources   = ["*.go"]
//
//	[[secret]]
//	func    = "APIKey"
//	var     = "API_KEY"
//	message = "export API_KEY before building"
//
//	[[secret]]
//	func     = "SentryDSN"
//	var      = "SENTRY_DSN"
//	optional = true
//
// Each [[secret]] table is equivalent to a directive comment. The same
// rules apply: optional entries cannot carry a message.
//
// Every field is optional. Without the file, generate scans *.go in the
// package directory and writes envcrypt_gen.go. Unknown keys are rejected.
package configs
