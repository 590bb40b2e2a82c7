// Package wordbuf provides the fixed-width word arena that backs every
// flat map in this module: a single contiguous byte slice addressed in
// units of "words" rather than bytes, parametric over 8/16/32-bit word
// widths.
//
// A Buffer never interprets its contents; callers (sharedmap, nodemap,
// edgemap) assign meaning to word offsets. Word 0 is reserved as the
// null offset by convention of every caller, never by Buffer itself.
package wordbuf
