// Package directives parses the annotations that ask envcrypt to embed a
// variable.
//
// An annotation is a line comment in any Go file of the target package:
//
//	//envcrypt:APIKey envc("API_KEY")
//	//envcrypt:APIKey envc("API_KEY", "export API_KEY before building")
//	//envcrypt:SentryDSN option_envc("SENTRY_DSN")
//
// The word after the prefix names the function envcrypt generate will emit.
// envc declares a required variable; a missing value fails the build with
// the default or custom message. option_envc declares an optional one and
// accepts only the variable name.
//
// Calls are tokenized with go/scanner, so arguments follow Go string literal
// rules, escapes included.
package directives
