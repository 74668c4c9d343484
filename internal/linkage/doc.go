// Package linkage repairs the references held by failure link rows.
//
// Link rows may be copy-pasted, imported from spreadsheets, or written by
// code that only had display text at hand, and entity ids are regenerated
// on some structural edits. A plain id join would silently orphan those
// rows. Normalization therefore resolves each leg (FM, FE, FC) of each
// row in this order, first match wins:
//
//  1. the row's id, when that id is still present in the worksheet
//  2. the cached text within the cached scope (process or requirement scope)
//  3. the cached text alone
//  4. the row's original id and text, unchanged
//
// Scoped lookup runs before unscoped lookup so that two processes with an
// identically worded failure mode are never merged. A resolved leg always
// has its cached text refreshed from the live entity.
//
// Normalization never drops a row and never fails. Legs that could not be
// resolved are listed in the Report so the caller can surface them.
package linkage
