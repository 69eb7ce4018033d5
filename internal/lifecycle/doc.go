// Package lifecycle normalizes the host environment's application
// lifecycle signals into a single broadcast stream of States.
//
// # Mapping
//
// Four host signals feed the stream, each mapped to exactly one state:
//
//	became-active        -> StateActive
//	will-resign-active   -> StateInactive
//	did-enter-background -> StateBackground
//	will-terminate       -> StateTerminated
//
// The mapping is total and fixed. The stream performs no deduplication or
// coalescing: every signal delivery becomes one emitted state, in the
// order the host delivered them.
//
// # Subscriptions
//
// Each subscriber receives an independent live feed over its own channel;
// subscribers do not compete for events. Unsubscribing detaches one
// consumer with no side effect on anything else. The stream never produces
// an error and never completes on its own.
package lifecycle
