// Package metrics exposes prometheus collectors for pipeline operations,
// settle waits, and stream fan-out. Hosts that do not scrape metrics pass
// a nil registerer and pay nothing.
package metrics
