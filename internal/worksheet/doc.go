// Package worksheet runs the full recompute over an FMEA worksheet:
// link normalization, confirmation repair, FM/FC pairing with derived
// severity, Action Priority per stage and the H/M/L tally.
//
// The free functions are pure. Engine adds an LRU cache keyed by the
// worksheet content, metrics and tracing around the same pipeline.
package worksheet
