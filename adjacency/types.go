package adjacency

// NullEdgeType is the default edge type a caller gets when it omits an
// explicit type; 0 is reserved as the invalid/null tag (spec §6).
const NullEdgeType uint32 = 1

// TypeQuery is the tagged sum of spec §9's "dynamic type argument
// union": a single positive type, a set of types, or a wildcard
// matching every type. Construct one with Type, Types, or AnyType.
type TypeQuery struct {
	single   uint32
	isSingle bool
	set      map[uint32]struct{}
	wildcard bool
}

// Type matches exactly one edge type.
func Type(t uint32) TypeQuery { return TypeQuery{single: t, isSingle: true} }

// Types matches any of the given edge types.
func Types(ts ...uint32) TypeQuery {
	set := make(map[uint32]struct{}, len(ts))
	for _, t := range ts {
		set[t] = struct{}{}
	}
	return TypeQuery{set: set}
}

// AnyType is the AllEdgeTypes wildcard of spec §6: matches every type.
func AnyType() TypeQuery { return TypeQuery{wildcard: true} }

// Matches reports whether t satisfies the query.
func (q TypeQuery) Matches(t uint32) bool {
	switch {
	case q.wildcard:
		return true
	case q.isSingle:
		return t == q.single
	default:
		_, ok := q.set[t]
		return ok
	}
}

// Endpoint pairs a neighbor node id with the edge type connecting it,
// as returned by GetInboundEdgesByType/GetOutboundEdgesByType.
type Endpoint struct {
	Node uint32
	Type uint32
}

// Triple is a single (from, to, type) edge, as yielded by GetAllEdges
// and All.
type Triple struct {
	From uint32
	To   uint32
	Type uint32
}
