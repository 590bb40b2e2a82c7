// Package edgemap implements EdgeTypeMap from spec §4.3: a
// SharedTypeMap record keyed by (from, to, type), carrying the four
// intrusive link fields used to thread it into the to-node's inbound
// list and the from-node's outbound list, plus a tombstone (deletes)
// counter.
//
// Hash is the bit-reproducible mix-and-combine function of spec §4.3;
// it must match byte-for-byte across word widths and across ports of
// this engine, since bucket statistics are a tested property.
package edgemap
