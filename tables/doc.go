// Package tables reconstructs the substitution tables from a page's
// geometric objects. The PDF carries no logical table structure, only
// positioned glyphs and ruled segments, so the reconstruction is driven by
// textual landmarks and spatial reasoning:
//
//  1. Region finding: each table occupies a y-band between a "Block"
//     header landmark and the horizontal rule under its "15:15" landmark.
//  2. Column extraction: every non-"Block" text on the header baseline
//     starts a column; the rules crossing its x give the column extent.
//  3. Cell splitting: per column, the six real row separators are the
//     lines with the largest inter-line gaps; short tick marks are
//     discarded and texts are bucketed between consecutive separators.
//
// All tolerances come from [Config]; [DefaultConfig] matches the
// producer's layout.
package tables
