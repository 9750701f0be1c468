package jsonschema

import "fmt"

// DefaultMaxErrors bounds how many errors one validate call records before
// truncating the list (spec §4.4, C6).
const DefaultMaxErrors = 10

// Validator is the public façade (spec §6.1, C7): a compiled schema plus
// everything needed to evaluate instances against it. A zero Validator is
// not usable; build one with Create or CreateFromValue.
type Validator struct {
	arena     *Arena
	compiler  *Compiler
	refs      *refCache
	root      *Value
	rootNode  Node
	MaxErrors int

	// FormatCheck overrides DefaultFormatChecker when non-nil. Set via
	// SetFormatChecker (spec §6.1).
	FormatCheck FormatChecker

	// Localizer, when set, translates error messages before ValidateText/
	// ValidateValue return them (SPEC_FULL §2.4). Nil means messages stay
	// in their built-in English form.
	Localizer *Localizer
}

// Create compiles schemaText into a ready-to-use Validator (spec §6.1).
func Create(schemaText []byte, opts ...CompileOption) (*Validator, Status, *Error) {
	schema, err := ParseValue(schemaText)
	if err != nil {
		return nil, StatusInvalidSchema, newError(fmt.Sprintf("%s: %v", ErrInvalidSchema, err))
	}
	return CreateFromValue(schema, opts...)
}

// CreateFromValue compiles an already-parsed schema Value (spec §6.1).
func CreateFromValue(schema *Value, opts ...CompileOption) (*Validator, Status, *Error) {
	if schema == nil {
		return nil, StatusInvalidParam, newError(ErrNilParam.Error())
	}

	arena := NewArena()
	root := schema.DeepCopy()
	compiler := newCompiler(arena, root)
	for _, opt := range opts {
		opt(compiler)
	}

	rootNode, err := compiler.Compile(root)
	if err != nil {
		return nil, StatusInvalidSchema, newError(err.Error())
	}

	// A root schema that is itself an unresolvable $ref can never
	// validate anything; catch that at compile time rather than on
	// every subsequent ValidateValue call (spec §4.2.3).
	if ref, ok := rootNode.(*RefNode); ok {
		if _, err := resolveRefValue(root, ref.URI); err != nil {
			return nil, StatusInvalidSchema, newError(fmt.Sprintf("%s: %v", ErrUnresolvableRootRef, err))
		}
	}

	return &Validator{
		arena:     arena,
		compiler:  compiler,
		refs:      arena.refs,
		root:      root,
		rootNode:  rootNode,
		MaxErrors: DefaultMaxErrors,
	}, StatusSuccess, nil
}

// ValidateText parses instanceText as JSON and validates it (spec §6.1).
func (v *Validator) ValidateText(instanceText []byte) (Status, *Error) {
	if v == nil {
		return StatusInvalidParam, newError(ErrNilValidator.Error())
	}
	instance, err := ParseValue(instanceText)
	if err != nil {
		return StatusInvalidJSON, newError(err.Error())
	}
	return v.ValidateValue(instance)
}

// ValidateValue validates an already-parsed instance Value (spec §6.1).
func (v *Validator) ValidateValue(instance *Value) (Status, *Error) {
	if v == nil {
		return StatusInvalidParam, newError(ErrNilValidator.Error())
	}
	if instance == nil {
		return StatusInvalidParam, newError(ErrNilParam.Error())
	}

	ctx := newEvalContext(v, v.MaxErrors)
	evaluate(v.rootNode, instance, ctx)

	if ctx.errs.empty() {
		return StatusSuccess, nil
	}
	v.localizeErrors(ctx.errs.first())
	return StatusValidationFailed, ctx.errs.first()
}

// SetFormatChecker installs a custom format checker, replacing
// DefaultFormatChecker for every subsequent Validate call (spec §6.1).
func (v *Validator) SetFormatChecker(checker FormatChecker) {
	if v == nil {
		return
	}
	v.FormatCheck = checker
}

// Destroy releases the validator's compiled tree and reference cache
// (spec §6.1). After Destroy, v must not be used again.
func (v *Validator) Destroy() {
	if v == nil {
		return
	}
	if v.arena != nil {
		v.arena.Release()
	}
	v.refs = nil
	v.rootNode = nil
}

// FreeErrors releases an error list returned by a validate call (spec
// §6.1). Go's GC reclaims the memory; FreeErrors exists so callers don't
// need to special-case this API from the one it mirrors.
func FreeErrors(errs *Error) {
	_ = errs
}

func (v *Validator) localizeErrors(errs *Error) {
	if v.Localizer == nil {
		return
	}
	for e := errs; e != nil; e = e.Next {
		e.Message = v.Localizer.Translate(e.Message)
	}
}

// String renders a Validator for debugging; it never appears in error
// paths, only logs (SPEC_FULL §2.2).
func (v *Validator) String() string {
	if v == nil {
		return "<nil validator>"
	}
	return fmt.Sprintf("Validator{nodes=%d}", v.arena.Len())
}
