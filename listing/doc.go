// Package listing correlates a compiler-generated assembly listing with
// the source text it was compiled from.
//
// The parser is a single-pass line state machine over the MSVC listing
// dialect (`; File` markers, `; <n> :` line directives, SEGMENT/ENDS and
// ENDP markers). It produces a BlockMap from source line number to the
// raw instruction lines attributed to that line. Assemble then resolves
// each block against the source text and assigns a display color.
//
// Line attribution is heuristic. The first directive for a line wins and
// later duplicates are dropped, and the palette stride spreads colors by
// a fixed multiplier; neither is exact in the presence of inlining or
// macro expansion.
package listing
