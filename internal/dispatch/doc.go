// Package dispatch abstracts the execution context a result is delivered
// on.
//
// The conversation pipeline delivers most results background-affine (any
// worker context) but delivers join results UI-affine (the interactive
// context). The two policies are deliberately distinct and must not be
// unified onto one executor; hosts inject a Dispatcher for each.
//
//   - Goroutine: background-affine default, one goroutine per delivery.
//   - Serial: single-worker FIFO queue, the shape of an interactive main
//     queue.
//   - Func: adapter for bridging to a host-provided run loop.
package dispatch
