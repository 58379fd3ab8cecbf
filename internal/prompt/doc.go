// Package prompt turns typed tool arguments into the natural-language prompt
// strings sent to the image provider.
//
// Everything in this package is pure: no I/O, no clocks, no randomness. The
// same arguments always compile to the same ordered prompt list.
//
// # Batch compilation
//
// Compile expands a base prompt by style tags (one prompt per style) and then
// by variation tags (each known variation contributes exactly two suffixes;
// unknown tags are appended verbatim). The variation pass runs over the
// style-expanded set, producing a cross product. With neither styles nor
// variations an output count above one repeats the base prompt. The result is
// truncated to the requested count and is never empty.
//
// # Presets
//
// IconPrompt, PatternPrompt and DiagramPrompt apply fixed, ordered clause
// templates (subject, style, structural attributes, closing quality clause).
// Downstream consumers match on literal substrings, so clause wording and
// order are part of the contract.
//
// # Story sequences
//
// StepPrompt builds the prompt for one step of an ordered sequence. It is
// indexed by step rather than compiled up front so callers can build each
// step only after the previous step has been generated.
package prompt
