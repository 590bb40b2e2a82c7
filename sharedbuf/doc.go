// Package sharedbuf realizes spec.md §5/§9's "handed across
// process/worker boundaries by reference" requirement: a word buffer
// backed by anonymous shared memory (so multiple OS processes can map
// the same pages) plus a helper for fanning a read-only snapshot out
// to concurrent reader goroutines within one process.
//
// Mutation of an adjacency.List stays single-writer (see adjacency's
// package doc); this package only concerns the read side of the
// handoff.
package sharedbuf
