package jsonschema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRefValue resolves a $ref URI against root, following spec §4.3:
// "#" names the root schema itself; "#/a/b" is an RFC 6901 JSON Pointer
// into root; anything else (an external or absolute URI) is unresolved,
// since this engine only ever compiles a single self-contained document.
func resolveRefValue(root *Value, uri string) (*Value, error) {
	if uri == "#" || uri == "" {
		return root, nil
	}
	if !strings.HasPrefix(uri, "#/") {
		return nil, fmt.Errorf("%w: %q", ErrReferenceResolution, uri)
	}

	tokens := jsonpointer.Parse(uri[1:])

	cur := root
	for _, tok := range tokens {
		switch cur.Kind() {
		case KindObject:
			next := cur.Get(tok)
			if next == nil {
				return nil, fmt.Errorf("%w: %q", ErrJSONPointerSegmentNotFound, tok)
			}
			cur = next
		case KindArray:
			idx, ok := arrayIndexToken(tok, cur.Len())
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrJSONPointerSegmentNotFound, tok)
			}
			cur = cur.Index(idx)
		default:
			return nil, fmt.Errorf("%w: %q", ErrJSONPointerSegmentNotFound, tok)
		}
	}
	return cur, nil
}

func arrayIndexToken(tok string, length int) (int, bool) {
	if tok == "-" {
		return 0, false
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if tok != "0" && strings.HasPrefix(tok, "0") {
		return 0, false // leading zero is not a valid array index token
	}
	if n < 0 || n >= length {
		return 0, false
	}
	return n, true
}

// resolveRef resolves and lazily compiles node's $ref target, memoizing
// the result both on the node and in the validator-wide reference cache
// (spec §4.2.3, §4.3). Because $ref compilation never recurses into the
// target eagerly, a cyclic schema graph (e.g. a recursive tree schema)
// cannot loop at compile time; the cache ensures a second encounter of
// the same URI during evaluation reuses the already-compiled Node rather
// than recompiling, so recursion is bounded only by the instance's own
// depth, not the schema's.
func (val *Validator) resolveRef(node *RefNode) (Node, error) {
	if node.Resolved != nil {
		return node.Resolved, nil
	}
	if cached, ok := val.refs.get(node.URI); ok {
		node.Resolved = cached
		return cached, nil
	}

	target, err := resolveRefValue(val.root, node.URI)
	if err != nil {
		return nil, err
	}
	compiled, err := val.compiler.Compile(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrReferenceResolution, node.URI, err)
	}

	val.refs.set(node.URI, compiled)
	node.Resolved = compiled
	return compiled, nil
}
