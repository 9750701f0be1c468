package jsonschema

// Arena is the lifetime root for every compiled node produced by a single
// Compile call (spec §4.1, C2). It owns no resources beyond Go's garbage
// collector — unlike the C original's pool allocator, Go's runtime already
// reclaims unreachable compiled nodes, so Arena's job is narrower: it is
// the one place a Validator holds a strong reference to its whole compiled
// tree, and Release breaks that reference so the tree (and the reference
// cache keyed off it) can be collected as a unit (spec §4.1, "drop(Arena)
// reclaims every compiled node... in a single pass").
type Arena struct {
	nodes []Node
	refs  *refCache
}

// NewArena returns an empty arena with its own reference cache.
func NewArena() *Arena {
	return &Arena{refs: newRefCache()}
}

// own records n as belonging to this arena and returns it unchanged, so
// call sites can write `return a.own(&TypeNode{...})`.
func (a *Arena) own(n Node) Node {
	a.nodes = append(a.nodes, n)
	return n
}

// Release drops the arena's references to every compiled node and its
// reference cache. After Release, a.nodes is empty; any node reachable
// from caller-held state survives independently (Go's GC, not the arena,
// is what actually frees memory).
func (a *Arena) Release() {
	a.nodes = nil
	a.refs = nil
}

// Len reports how many nodes the arena has allocated; mainly useful for
// tests asserting that compilation shares sub-nodes via $ref memoization
// rather than re-compiling them.
func (a *Arena) Len() int { return len(a.nodes) }
