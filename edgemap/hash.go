package edgemap

// mix applies the 32-bit integer mixer of spec §4.3. All arithmetic is
// performed modulo 2^32 via Go's native uint32 wraparound, matching the
// spec's explicit requirement for bit-reproducible, width-independent
// hashing (the hash itself is always computed at 32-bit precision, even
// when the backing word buffer uses an 8- or 16-bit word width).
func mix(k uint32) uint32 {
	k = ^k + (k << 15)
	k = k ^ (k >> 12)
	k = k + (k << 2)
	k = k ^ (k >> 4)
	k = k * 2057
	k = k ^ (k >> 16)
	return k
}

// Hash computes the edge bucket index for (from, to, type) modulo
// capacity, per spec §4.3. It is exported so callers (AdjacencyList)
// can recompute it after a resize without reaching into EdgeMap
// internals, and so tests can assert bucket-distribution properties
// directly.
func Hash(from, to, typ, capacity uint32) uint32 {
	h := uint32(17)
	h = h*37 + mix(from)
	h = h*37 + mix(to)
	h = h*37 + mix(typ)
	return h % capacity
}
