// Package audit records envcrypt operations in a per-package log.
//
// The log is JSON Lines at
//
//	.envcrypt/audit.jsonl
//
// next to the generated file. Each entry carries a timestamp, a run id, the
// OS user, the operation and the names of the variables involved. Values
// never reach the log.
//
// Logging is best-effort: a failure to write the log never fails the
// operation that produced the entry.
package audit
