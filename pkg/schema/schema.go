package schema

import internalschema "github.com/goliatone/go-formkit/internal/schema"

// Type re-exports the internal node type enumeration.
type Type = internalschema.Type

const (
	TypeString  = internalschema.TypeString
	TypeInteger = internalschema.TypeInteger
	TypeNumber  = internalschema.TypeNumber
	TypeBoolean = internalschema.TypeBoolean
	TypeArray   = internalschema.TypeArray
	TypeObject  = internalschema.TypeObject
)

type Node = internalschema.Node
type Schema = internalschema.Schema
type Preparer = internalschema.Preparer
type Validator = internalschema.Validator
type DeferredFunc = internalschema.DeferredFunc
type BindContext = internalschema.BindContext
type TokenSession = internalschema.TokenSession
type Invalid = internalschema.Invalid

// Null and Drop are the optional-node missing sentinels.
var (
	Null = internalschema.Null
	Drop = internalschema.Drop
)

// New constructs a schema from children, applying the field order.
func New(name string, fieldOrder map[string]int, children ...*Node) *Schema {
	return internalschema.New(name, fieldOrder, children...)
}

// NewInvalid builds a leaf validation error for a node.
func NewInvalid(node *Node, format string, args ...any) *Invalid {
	return internalschema.NewInvalid(node, format, args...)
}

// AsInvalid unwraps err into an *Invalid when possible.
func AsInvalid(err error) (*Invalid, bool) {
	return internalschema.AsInvalid(err)
}

// String preparers shared by form schemas.
var (
	CoerceToLowercase    = internalschema.CoerceToLowercase
	StripWhitespace      = internalschema.StripWhitespace
	RemoveMultipleSpaces = internalschema.RemoveMultipleSpaces
	IfEmptyNull          = internalschema.IfEmptyNull
	DedupeSequence       = internalschema.DedupeSequence
	RemoveEmptyValues    = internalschema.RemoveEmptyValues
)
