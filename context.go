package jsonschema

// evalContext carries the mutable state threaded through one Evaluate
// call: the instance's current path and the accumulating error list
// (spec §3.4, C6). Unlike the source this path buffer is actually
// maintained across descent — push/pop are paired around every
// properties/items step (spec §9, "Path tracking"). Following a $ref does
// not descend into the instance, so it adds no path token.
type evalContext struct {
	validator *Validator
	path      []string
	errs      *errorList
}

func newEvalContext(v *Validator, maxErrors int) *evalContext {
	return &evalContext{validator: v, errs: newErrorList(maxErrors)}
}

// push appends token to the path and returns a pop func restoring it,
// so call sites can `defer ctx.push(name)()`.
func (c *evalContext) push(token string) func() {
	c.path = append(c.path, token)
	return func() {
		c.path = c.path[:len(c.path)-1]
	}
}

func (c *evalContext) currentPath() string {
	return renderPath(c.path)
}

// fail records e at the context's current path.
func (c *evalContext) fail(e *Error) {
	if e == nil {
		return
	}
	c.errs.add(c.currentPath(), e)
}

// sink runs fn against a fresh, suppressed error list sharing this
// context's path and validator, returning that list's emptiness and the
// list itself. Used for anyOf/oneOf/not/if children, whose individual
// errors must not leak into the caller's list unless the combinator as a
// whole decides to surface a summary (spec §4.4.2).
func (c *evalContext) sink(fn func(*evalContext)) (ok bool, sub *errorList) {
	child := &evalContext{validator: c.validator, path: c.path, errs: newErrorList(c.errs.max)}
	fn(child)
	return child.errs.empty(), child.errs
}
