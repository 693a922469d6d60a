// Package errors provides coded, actionable errors for gridsync.
//
// Every error carries a code (e.g. "E060") registered with a category, a
// short message and a longer explanation. Codes are stable: protocol
// errors are sent to clients as-is, so browsers can switch on them.
//
// # Error Categories
//
//   - config: configuration file, flag and environment errors
//   - protocol: malformed or out-of-order WebSocket messages
//   - server: listener, upgrade and shutdown failures
//   - cli: command-line and terminal demo failures
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(fmt.Sprintf("got %q", level)).
//	    WithSuggestion("Use one of debug, info, warn or error")
//
//	errors.PrintError(err)
package errors
