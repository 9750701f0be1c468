package jsonschema

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// evaluate runs node against instance, recording failures into ctx (spec
// §4.4, C6). It switches exhaustively over every Node variant; a new
// variant added to node.go without a matching case here is a compile-time
// reminder by omission only — panicking on default keeps that omission
// loud instead of silently accepting everything.
func evaluate(node Node, instance *Value, ctx *evalContext) {
	switch n := node.(type) {
	case *BooleanNode:
		evalBoolean(n, ctx)
	case *TypeNode:
		evalType(n, instance, ctx)
	case *ObjectNode:
		evalObject(n, instance, ctx)
	case *ArrayNode:
		evalArray(n, instance, ctx)
	case *StringNode:
		evalString(n, instance, ctx)
	case *NumberNode:
		evalNumber(n, instance, ctx)
	case *EnumNode:
		evalEnum(n, instance, ctx)
	case *ConstNode:
		evalConst(n, instance, ctx)
	case *RefNode:
		evalRef(n, instance, ctx)
	case *AllOfNode:
		evalAllOf(n, instance, ctx)
	case *AnyOfNode:
		evalAnyOf(n, instance, ctx)
	case *OneOfNode:
		evalOneOf(n, instance, ctx)
	case *NotNode:
		evalNot(n, instance, ctx)
	case *IfThenElseNode:
		evalIfThenElse(n, instance, ctx)
	default:
		panic(fmt.Sprintf("jsonschema: unhandled node type %T", node))
	}
}

func evalBoolean(n *BooleanNode, ctx *evalContext) {
	if !n.Accept {
		ctx.fail(newError("value rejected by a `false` schema"))
	}
}

func evalType(n *TypeNode, instance *Value, ctx *evalContext) {
	bit := typeBitFor(instance.Kind())
	if n.Mask&bit == 0 {
		ctx.fail(newError(fmt.Sprintf("value is of type %s, which is not allowed here", instance.Kind())))
		return
	}
	if n.Integer && !instance.IsInteger() {
		ctx.fail(newError("value must be an integer"))
	}
}

func evalObject(n *ObjectNode, instance *Value, ctx *evalContext) {
	if instance.Kind() != KindObject {
		ctx.fail(newError("value must be an object"))
		return
	}
	for _, name := range n.Required {
		if !instance.Has(name) {
			ctx.fail(newError(fmt.Sprintf("missing required property %q", name)))
		}
	}
	if n.MinProperties != nil && instance.Len() < *n.MinProperties {
		ctx.fail(newError(fmt.Sprintf("object has %d properties, fewer than the minimum of %d", instance.Len(), *n.MinProperties)))
	}
	if n.MaxProperties != nil && instance.Len() > *n.MaxProperties {
		ctx.fail(newError(fmt.Sprintf("object has %d properties, more than the maximum of %d", instance.Len(), *n.MaxProperties)))
	}
	for _, prop := range n.Properties {
		val := instance.Get(prop.Name)
		if val == nil {
			continue
		}
		pop := ctx.push(prop.Name)
		evaluate(prop.Node, val, ctx)
		pop()
	}
}

func evalArray(n *ArrayNode, instance *Value, ctx *evalContext) {
	if instance.Kind() != KindArray {
		ctx.fail(newError("value must be an array"))
		return
	}
	if n.MinItems != nil && instance.Len() < *n.MinItems {
		ctx.fail(newError(fmt.Sprintf("array has %d items, fewer than the minimum of %d", instance.Len(), *n.MinItems)))
	}
	if n.MaxItems != nil && instance.Len() > *n.MaxItems {
		ctx.fail(newError(fmt.Sprintf("array has %d items, more than the maximum of %d", instance.Len(), *n.MaxItems)))
	}
	if n.UniqueItems {
		items := instance.Items()
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				if items[i].Equal(items[j]) {
					ctx.fail(newError(fmt.Sprintf("items at index %d and %d are not unique", i, j)))
					break
				}
			}
		}
	}
	if n.Items != nil {
		for i, item := range instance.Items() {
			pop := ctx.push(fmt.Sprintf("%d", i))
			evaluate(n.Items, item, ctx)
			pop()
		}
	}
}

func evalString(n *StringNode, instance *Value, ctx *evalContext) {
	if instance.Kind() != KindString {
		ctx.fail(newError("value must be a string"))
		return
	}
	s, _ := instance.Str()
	length := utf8.RuneCountInString(s)
	if n.MinLength != nil && length < *n.MinLength {
		ctx.fail(newError(fmt.Sprintf("string has length %d, shorter than the minimum of %d", length, *n.MinLength)))
	}
	if n.MaxLength != nil && length > *n.MaxLength {
		ctx.fail(newError(fmt.Sprintf("string has length %d, longer than the maximum of %d", length, *n.MaxLength)))
	}
	if n.Pattern != nil && !n.Pattern.MatchString(s) {
		ctx.fail(newError(fmt.Sprintf("string %s does not match pattern %q", quote(s), n.Pattern.String())))
	}
	if n.Format != "" {
		checker := DefaultFormatChecker
		if ctx.validator != nil && ctx.validator.FormatCheck != nil {
			checker = ctx.validator.FormatCheck
		}
		ctx.fail(evaluateFormat(checker, n.Format, s))
	}
	if n.Content != nil {
		evalContent(n.Content, s, ctx)
	}
}

func evalNumber(n *NumberNode, instance *Value, ctx *evalContext) {
	if instance.Kind() != KindNumber {
		ctx.fail(newError("value must be a number"))
		return
	}
	v, _ := instance.Float64()
	if n.Integer && !instance.IsInteger() {
		ctx.fail(newError("value must be an integer"))
	}
	if n.Minimum != nil {
		if n.ExclusiveMinimum && v <= *n.Minimum {
			ctx.fail(newError(fmt.Sprintf("%v is not strictly greater than the exclusive minimum of %v", v, *n.Minimum)))
		} else if !n.ExclusiveMinimum && v < *n.Minimum {
			ctx.fail(newError(fmt.Sprintf("%v is less than the minimum of %v", v, *n.Minimum)))
		}
	}
	if n.Maximum != nil {
		if n.ExclusiveMaximum && v >= *n.Maximum {
			ctx.fail(newError(fmt.Sprintf("%v is not strictly less than the exclusive maximum of %v", v, *n.Maximum)))
		} else if !n.ExclusiveMaximum && v > *n.Maximum {
			ctx.fail(newError(fmt.Sprintf("%v is greater than the maximum of %v", v, *n.Maximum)))
		}
	}
	if n.MultipleOf != nil {
		const tolerance = 1e-10
		ratio := v / *n.MultipleOf
		if math.Abs(ratio-math.Round(ratio)) > tolerance {
			ctx.fail(newError(fmt.Sprintf("%v is not a multiple of %v", v, *n.MultipleOf)))
		}
	}
}

func evalEnum(n *EnumNode, instance *Value, ctx *evalContext) {
	for _, v := range n.Values {
		if instance.Equal(v) {
			return
		}
	}
	ctx.fail(newError("value does not match any allowed enum value"))
}

func evalConst(n *ConstNode, instance *Value, ctx *evalContext) {
	if !instance.Equal(n.Value) {
		ctx.fail(newError("value does not match the required constant"))
	}
}

func evalRef(n *RefNode, instance *Value, ctx *evalContext) {
	resolved, err := ctx.validator.resolveRef(n)
	if err != nil {
		ctx.fail(newError(err.Error()))
		return
	}
	evaluate(resolved, instance, ctx)
}

// evalAllOf requires every child to pass, but stops at the first one that
// doesn't: it records that child's errors plus one summary error naming
// its index, and does not evaluate the remaining children (spec §4.4,
// "fail on first failing child, annotated with child index"; grounded on
// original_source/src/ks_json_schema_pure.c's validate_allof_constraint,
// which stops the same way).
func evalAllOf(n *AllOfNode, instance *Value, ctx *evalContext) {
	for i, child := range n.Children {
		before := ctx.errs.count
		evaluate(child, instance, ctx)
		if ctx.errs.count > before {
			ctx.fail(newError(fmt.Sprintf("allOf validation failed on schema %d", i)))
			return
		}
	}
}

func evalAnyOf(n *AnyOfNode, instance *Value, ctx *evalContext) {
	for _, child := range n.Children {
		if ok, _ := ctx.sink(func(c *evalContext) { evaluate(child, instance, c) }); ok {
			return
		}
	}
	ctx.fail(newError("value does not match any schema in anyOf"))
}

func evalOneOf(n *OneOfNode, instance *Value, ctx *evalContext) {
	matches := 0
	for _, child := range n.Children {
		if ok, _ := ctx.sink(func(c *evalContext) { evaluate(child, instance, c) }); ok {
			matches++
		}
	}
	if matches != 1 {
		ctx.fail(newError(fmt.Sprintf("value must match exactly one schema in oneOf, matched %d", matches)))
	}
}

func evalNot(n *NotNode, instance *Value, ctx *evalContext) {
	if ok, _ := ctx.sink(func(c *evalContext) { evaluate(n.Child, instance, c) }); ok {
		ctx.fail(newError("value must not match the schema in not"))
	}
}

func evalIfThenElse(n *IfThenElseNode, instance *Value, ctx *evalContext) {
	ok, _ := ctx.sink(func(c *evalContext) { evaluate(n.If, instance, c) })
	if ok {
		if n.Then != nil {
			evaluate(n.Then, instance, ctx)
		}
		return
	}
	if n.Else != nil {
		evaluate(n.Else, instance, ctx)
	}
}
