package jsonschema

import (
	"fmt"
	"regexp"
)

// Compiler walks a schema Value and emits a compiled Node tree (spec §4.2,
// C4). A Compiler is bound to one arena and one root schema document for
// the lifetime of a single Compile call; Validator keeps the Compiler
// alive afterwards so $ref targets can be compiled lazily at evaluation
// time (spec §4.2.3).
type Compiler struct {
	arena *Arena
	root  *Value

	// strictPatterns, when set via WithStrictPatterns, turns an
	// uncompilable "pattern" into a compile-time ErrRegexPattern instead
	// of the legacy-tolerated vacuous success spec §4.4 otherwise allows.
	strictPatterns bool
}

// newCompiler returns a Compiler over root, ready to compile root itself
// or any sub-schema reachable from it via $ref.
func newCompiler(arena *Arena, root *Value) *Compiler {
	return &Compiler{arena: arena, root: root}
}

// CompileOption adjusts a Compiler's behavior before it walks a schema.
// Passed to Create or CreateFromValue.
type CompileOption func(*Compiler)

// WithStrictPatterns makes an uncompilable "pattern" keyword a compile
// error (ErrRegexPattern) instead of the legacy vacuous-success
// tolerance spec §4.4 describes as the default.
func WithStrictPatterns() CompileOption {
	return func(c *Compiler) { c.strictPatterns = true }
}

// Compile compiles schema (a JSON object or boolean Value) into its root
// Node, following the dispatch order in spec §4.2.1.
func (c *Compiler) Compile(schema *Value) (Node, error) {
	return c.compileSchema(schema)
}

func (c *Compiler) compileSchema(schema *Value) (Node, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}

	// Priority 1: boolean-typed schema.
	if b, ok := schema.Bool(); ok {
		return c.arena.own(&BooleanNode{Accept: b}), nil
	}

	if schema.Kind() != KindObject {
		return nil, fmt.Errorf("%w: schema must be a JSON object or boolean", ErrInvalidSchema)
	}

	// Priority 2: $ref, all sibling keywords ignored (Draft 7 convention).
	if refVal := schema.Get("$ref"); refVal != nil {
		uri, ok := refVal.Str()
		if !ok {
			return nil, fmt.Errorf("%w: $ref must be a string", ErrInvalidSchema)
		}
		return c.arena.own(&RefNode{URI: uri}), nil
	}

	// Priority 3-6: combinators and negation.
	if allOf := schema.Get("allOf"); allOf != nil {
		children, err := c.compileSchemaList(allOf, "allOf")
		if err != nil {
			return nil, err
		}
		return c.arena.own(&AllOfNode{Children: children}), nil
	}
	if anyOf := schema.Get("anyOf"); anyOf != nil {
		children, err := c.compileSchemaList(anyOf, "anyOf")
		if err != nil {
			return nil, err
		}
		return c.arena.own(&AnyOfNode{Children: children}), nil
	}
	if oneOf := schema.Get("oneOf"); oneOf != nil {
		children, err := c.compileSchemaList(oneOf, "oneOf")
		if err != nil {
			return nil, err
		}
		return c.arena.own(&OneOfNode{Children: children}), nil
	}
	if notVal := schema.Get("not"); notVal != nil {
		child, err := c.compileSchema(notVal)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return c.arena.own(&NotNode{Child: child}), nil
	}

	// Priority 7: if/then/else.
	if ifVal := schema.Get("if"); ifVal != nil {
		ifNode, err := c.compileSchema(ifVal)
		if err != nil {
			return nil, fmt.Errorf("if: %w", err)
		}
		node := &IfThenElseNode{If: ifNode}
		// then/else are dropped silently on compile failure (legacy tolerance, spec §4.2.2).
		if thenVal := schema.Get("then"); thenVal != nil {
			if thenNode, err := c.compileSchema(thenVal); err == nil {
				node.Then = thenNode
			}
		}
		if elseVal := schema.Get("else"); elseVal != nil {
			if elseNode, err := c.compileSchema(elseVal); err == nil {
				node.Else = elseNode
			}
		}
		return c.arena.own(node), nil
	}

	// Priority 8: enum.
	if enumVal := schema.Get("enum"); enumVal != nil {
		if enumVal.Kind() != KindArray || enumVal.Len() == 0 {
			return nil, ErrEmptyEnum
		}
		values := make([]*Value, enumVal.Len())
		for i, item := range enumVal.Items() {
			values[i] = item.DeepCopy()
		}
		return c.arena.own(&EnumNode{Values: values}), nil
	}

	// Priority 9: const.
	if schema.Has("const") {
		constVal := schema.Get("const")
		if constVal == nil {
			return nil, ErrMissingConstValue
		}
		return c.arena.own(&ConstNode{Value: constVal.DeepCopy()}), nil
	}

	// Priority 10: scalar "type".
	if typeVal := schema.Get("type"); typeVal != nil {
		if name, ok := typeVal.Str(); ok {
			return c.compileTypedSchema(schema, name)
		}
		if typeVal.Kind() == KindArray {
			return c.compileMultiTypeSchema(schema, typeVal)
		}
		return nil, fmt.Errorf("%w: type must be a string or array of strings", ErrInvalidSchema)
	}

	// Priority 11: keyword-shape inference.
	switch {
	case hasAny(schema, "properties", "required", "minProperties", "maxProperties"):
		return c.compileObject(schema)
	case hasAny(schema, "items", "minItems", "maxItems", "uniqueItems"):
		return c.compileArray(schema)
	case hasAny(schema, "minLength", "maxLength", "pattern", "format", "contentEncoding", "contentMediaType"):
		return c.compileString(schema)
	case hasAny(schema, "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"):
		return c.compileNumber(schema)
	}

	// Priority 12: fallback, accept any type.
	return c.arena.own(&TypeNode{Mask: AllTypes}), nil
}

func hasAny(schema *Value, keys ...string) bool {
	for _, k := range keys {
		if schema.Has(k) {
			return true
		}
	}
	return false
}

func (c *Compiler) compileSchemaList(list *Value, keyword string) ([]Node, error) {
	if list.Kind() != KindArray || list.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCombinator, keyword)
	}
	children := make([]Node, list.Len())
	for i, item := range list.Items() {
		child, err := c.compileSchema(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", keyword, i, err)
		}
		children[i] = child
	}
	return children, nil
}

func (c *Compiler) compileTypedSchema(schema *Value, typeName string) (Node, error) {
	switch typeName {
	case "object":
		return c.compileObject(schema)
	case "array":
		return c.compileArray(schema)
	case "string":
		return c.compileString(schema)
	case "number":
		return c.compileNumber(schema)
	case "integer":
		if hasAny(schema, "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf") {
			node, err := c.compileNumber(schema)
			if err != nil {
				return nil, err
			}
			node.(*NumberNode).Integer = true
			return node, nil
		}
		return c.arena.own(&TypeNode{Mask: BitNumber, Integer: true}), nil
	case "boolean":
		return c.arena.own(&TypeNode{Mask: BitBoolean}), nil
	case "null":
		return c.arena.own(&TypeNode{Mask: BitNull}), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, typeName)
	}
}

func (c *Compiler) compileMultiTypeSchema(schema *Value, typeArr *Value) (Node, error) {
	var mask TypeBit
	onlyInteger := typeArr.Len() > 0
	for _, item := range typeArr.Items() {
		name, ok := item.Str()
		if !ok {
			return nil, fmt.Errorf("%w: type array must contain only strings", ErrInvalidSchema)
		}
		if name != "integer" {
			onlyInteger = false
		}
		switch name {
		case "integer":
			mask |= BitNumber
		case "null":
			mask |= BitNull
		case "boolean":
			mask |= BitBoolean
		case "number":
			mask |= BitNumber
		case "string":
			mask |= BitString
		case "array":
			mask |= BitArray
		case "object":
			mask |= BitObject
		default:
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, name)
		}
	}
	return c.arena.own(&TypeNode{Mask: mask, Integer: onlyInteger}), nil
}

func (c *Compiler) compileObject(schema *Value) (Node, error) {
	node := &ObjectNode{}

	if props := schema.Get("properties"); props != nil {
		if props.Kind() != KindObject {
			return nil, fmt.Errorf("%w: properties must be an object", ErrInvalidSchema)
		}
		entries := make([]PropertyEntry, 0, props.Len())
		var compileErr error
		props.Range(func(name string, propSchema *Value) bool {
			child, err := c.compileSchema(propSchema)
			if err != nil {
				compileErr = fmt.Errorf("properties.%s: %w", name, err)
				return false
			}
			entries = append(entries, PropertyEntry{Name: name, Node: child})
			return true
		})
		if compileErr != nil {
			return nil, compileErr
		}
		node.Properties = entries
	}

	if req := schema.Get("required"); req != nil {
		if req.Kind() != KindArray {
			return nil, fmt.Errorf("%w: required must be an array of strings", ErrInvalidSchema)
		}
		for _, item := range req.Items() {
			name, ok := item.Str()
			if !ok {
				return nil, fmt.Errorf("%w: required must be an array of strings", ErrInvalidSchema)
			}
			node.Required = append(node.Required, name)
		}
	}

	if v, err := optionalCount(schema, "minProperties"); err != nil {
		return nil, err
	} else {
		node.MinProperties = v
	}
	if v, err := optionalCount(schema, "maxProperties"); err != nil {
		return nil, err
	} else {
		node.MaxProperties = v
	}

	return c.arena.own(node), nil
}

func (c *Compiler) compileArray(schema *Value) (Node, error) {
	node := &ArrayNode{}

	if items := schema.Get("items"); items != nil {
		child, err := c.compileSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		node.Items = child
	}

	if v, err := optionalCount(schema, "minItems"); err != nil {
		return nil, err
	} else {
		node.MinItems = v
	}
	if v, err := optionalCount(schema, "maxItems"); err != nil {
		return nil, err
	} else {
		node.MaxItems = v
	}

	if u := schema.Get("uniqueItems"); u != nil {
		b, ok := u.Bool()
		if !ok {
			return nil, fmt.Errorf("%w: uniqueItems must be a boolean", ErrInvalidSchema)
		}
		node.UniqueItems = b
	}

	return c.arena.own(node), nil
}

func (c *Compiler) compileString(schema *Value) (Node, error) {
	node := &StringNode{}

	if v, err := optionalCount(schema, "minLength"); err != nil {
		return nil, err
	} else {
		node.MinLength = v
	}
	if v, err := optionalCount(schema, "maxLength"); err != nil {
		return nil, err
	} else {
		node.MaxLength = v
	}

	if p := schema.Get("pattern"); p != nil {
		pattern, ok := p.Str()
		if !ok {
			return nil, fmt.Errorf("%w: pattern must be a string", ErrInvalidSchema)
		}
		// A pattern that fails to compile is a legacy-tolerated no-op at
		// evaluation time (spec §4.4, String); storing nil here achieves
		// that without re-attempting compilation on every evaluate call.
		// WithStrictPatterns tightens this to a compile error instead.
		re, err := regexp.Compile(pattern)
		if err != nil {
			if c.strictPatterns {
				return nil, fmt.Errorf("%w: %v", ErrRegexPattern, err)
			}
		} else {
			node.Pattern = re
		}
	}

	if f := schema.Get("format"); f != nil {
		name, ok := f.Str()
		if !ok {
			return nil, fmt.Errorf("%w: format must be a string", ErrInvalidSchema)
		}
		node.Format = name
	}

	content, err := c.compileContent(schema)
	if err != nil {
		return nil, err
	}
	node.Content = content

	return c.arena.own(node), nil
}

// compileContent compiles the supplemented contentEncoding/
// contentMediaType/contentSchema keywords (SPEC_FULL §4). It returns nil
// when none of the three keywords is present.
func (c *Compiler) compileContent(schema *Value) (*ContentNode, error) {
	encVal := schema.Get("contentEncoding")
	mtVal := schema.Get("contentMediaType")
	csVal := schema.Get("contentSchema")
	if encVal == nil && mtVal == nil && csVal == nil {
		return nil, nil
	}

	node := &ContentNode{}
	if encVal != nil {
		enc, ok := encVal.Str()
		if !ok {
			return nil, fmt.Errorf("%w: contentEncoding must be a string", ErrInvalidSchema)
		}
		node.Encoding = enc
	}
	if mtVal != nil {
		mt, ok := mtVal.Str()
		if !ok {
			return nil, fmt.Errorf("%w: contentMediaType must be a string", ErrInvalidSchema)
		}
		node.MediaType = mt
	}
	if csVal != nil {
		child, err := c.compileSchema(csVal)
		if err != nil {
			return nil, fmt.Errorf("contentSchema: %w", err)
		}
		node.Schema = child
	}
	return node, nil
}

func (c *Compiler) compileNumber(schema *Value) (Node, error) {
	node := &NumberNode{}

	min := schema.Get("minimum")
	max := schema.Get("maximum")
	exMin := schema.Get("exclusiveMinimum")
	exMax := schema.Get("exclusiveMaximum")

	// spec §4.2.4: exclusiveMinimum/Maximum may be boolean (Draft 4 style,
	// modifying a sibling minimum/maximum) or a standalone number (Draft
	// 6+ style).
	if min != nil {
		v, ok := min.Float64()
		if !ok {
			return nil, fmt.Errorf("%w: minimum must be a number", ErrInvalidSchema)
		}
		node.Minimum = &v
		if b, ok := exMin.Bool(); ok {
			node.ExclusiveMinimum = b
			exMin = nil
		}
	}
	if max != nil {
		v, ok := max.Float64()
		if !ok {
			return nil, fmt.Errorf("%w: maximum must be a number", ErrInvalidSchema)
		}
		node.Maximum = &v
		if b, ok := exMax.Bool(); ok {
			node.ExclusiveMaximum = b
			exMax = nil
		}
	}
	if exMin != nil {
		v, ok := exMin.Float64()
		if !ok {
			return nil, fmt.Errorf("%w: exclusiveMinimum must be a boolean or number", ErrInvalidSchema)
		}
		node.Minimum = &v
		node.ExclusiveMinimum = true
	}
	if exMax != nil {
		v, ok := exMax.Float64()
		if !ok {
			return nil, fmt.Errorf("%w: exclusiveMaximum must be a boolean or number", ErrInvalidSchema)
		}
		node.Maximum = &v
		node.ExclusiveMaximum = true
	}

	if mo := schema.Get("multipleOf"); mo != nil {
		v, ok := mo.Float64()
		if !ok || v <= 0 {
			return nil, fmt.Errorf("%w: multipleOf must be a positive number", ErrInvalidSchema)
		}
		node.MultipleOf = &v
	}

	return c.arena.own(node), nil
}

func optionalCount(schema *Value, key string) (*int, error) {
	v := schema.Get(key)
	if v == nil {
		return nil, nil
	}
	f, ok := v.Float64()
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidSchema, key)
	}
	n := int(f)
	return &n, nil
}
