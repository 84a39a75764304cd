// Package errors provides standardized error handling for flowcanvas.
//
// # Overview
//
// The editor core never returns errors: drops before the viewport is mounted and
// changes for unknown nodes are ignored, and permissive inputs (self-loop edges,
// unknown block kinds) are accepted. Everything around the core (configuration,
// the websocket session bridge, the metrics server, the NATS event feed) reports
// failures through this package.
//
// Errors fall into three classes:
//
//   - Transient: network problems, closed connections, rate limiting (retry or drop)
//   - Invalid: malformed envelopes, bad configuration values (reject the input)
//   - Fatal: startup failures such as an unusable listen address (stop the process)
//
// # Error Wrapping Pattern
//
// All wrapping follows "component.method: action failed: cause":
//
//	if err := conn.WriteJSON(msg); err != nil {
//	    return errors.WrapTransient(err, "session", "send", "write state")
//	}
//
// Guard clauses may pass a nil cause; the result is still a classified error:
//
//	if editor == nil {
//	    return errors.WrapInvalid(nil, "session", "New", "editor cannot be nil")
//	}
//
// Classification works through errors.Is / errors.As chains, so callers can use
// IsTransient, IsInvalid, IsFatal, or Classify on any wrapped value.
package errors
