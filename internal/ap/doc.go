// Package ap classifies Severity/Occurrence/Detection triples into an
// Action Priority (H, M, L) using the AIAG-VDA banded lookup table.
//
// The table is data, not code: bands are non-linear and asymmetric, and
// each of the 20 rows is kept exactly as published. Classification is a
// pure function; identical inputs always classify identically.
package ap
