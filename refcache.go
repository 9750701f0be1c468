package jsonschema

import "strings"

// refCache memoizes $ref URI -> compiled Node (spec §3.3, C3). It is
// scoped to one arena's lifetime and keyed case-insensitively, per the
// case-insensitive map contract spec §6.2 asks collaborators to provide
// for reference memoization (this is distinct from, and does not affect,
// property-name lookup — see node.go's PropertyEntry doc and DESIGN.md's
// Open Question entry on case sensitivity).
//
// A $ref resolves lazily: RefNode carries only a URI at compile time, and
// resolveRef compiles the target on first evaluation, memoizing it here.
// A cyclic $ref graph therefore never recurses at compile time in the
// first place — there is nothing to guard against with an eager
// placeholder (see DESIGN.md's Open Question resolution on $ref).
type refCache struct {
	entries map[string]Node
}

func newRefCache() *refCache {
	return &refCache{entries: make(map[string]Node)}
}

func refCacheKey(uri string) string { return strings.ToLower(uri) }

// get returns the memoized node for uri, if any.
func (c *refCache) get(uri string) (Node, bool) {
	n, ok := c.entries[refCacheKey(uri)]
	return n, ok
}

// set memoizes uri -> node.
func (c *refCache) set(uri string, node Node) {
	c.entries[refCacheKey(uri)] = node
}
