// Package eventfeed publishes editor events to NATS.
//
// Every editor.Event of a session is encoded as a Message and published on
//
//	<subject_prefix>.<session id>.<event type>
//
// so subscribers can follow one session (flowcanvas.events.<id>.>) or one
// kind of event across sessions (flowcanvas.events.*.node_created).
// Publishing is fire-and-forget: failures are logged and counted, and never
// affect the editor.
package eventfeed
