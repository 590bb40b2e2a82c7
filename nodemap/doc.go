// Package nodemap implements NodeTypeMap from spec §4.2: a
// SharedTypeMap record keyed by (nodeId, edgeType), carrying the head
// and tail offsets of that node's inbound and outbound edge lists for
// the given type, plus a monotonically increasing node-id counter.
//
// A quirk inherited verbatim from the specification: the node record
// does not itself store nodeId. AddressOf locates a record by probing
// the bucket chain rooted at hash(nodeId) and matching only on type —
// it does not re-check that the record's owning id is nodeId. This is
// safe as long as nothing else shares that chain, which holds for the
// well-distributed case the load-factor policy targets, but is a
// latent anomaly under hash collisions between distinct node ids. See
// DESIGN.md for the full discussion; it is preserved rather than
// "fixed" per the porting instructions for source anomalies.
package nodemap
