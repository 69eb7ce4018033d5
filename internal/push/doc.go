// Package push normalizes the host's push-notification delegate callbacks
// into one merged, tagged event stream.
//
// # Shapes
//
// The host delivers inbound notifications through two call shapes: a
// modern one carrying a completion handle and a legacy one without it.
// Both map to an Event with KindRemoteNotification; the Completion field
// records which shape arrived. Device-registration success and failure
// each map from their single-shot callback into their own variant.
//
// # No deduplication
//
// All four sources merge without suppression. If the host fires both
// inbound shapes for one physical notification, two events are emitted.
// Whether that can happen is a property of the host platform; the bridge
// does not guess.
package push
