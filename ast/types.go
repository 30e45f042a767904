package ast

// TypeKind enumerates the type annotations the parser can recognise from
// a `: name` / `: name?` suffix.
type TypeKind int

const (
	Unknown TypeKind = iota
	Int
	Float
	StringType
	Bool
	Null
	Array
	Object
	Function
	Optional
)

// TypeInfo is the parsed representation of a type annotation.
type TypeInfo struct {
	Kind       TypeKind
	IsOptional bool
	Name       string
}

// ParseTypeName maps an annotation's bare identifier (the part before an
// optional trailing `?`) to a TypeKind. Unrecognised names still carry
// their literal Name through as Unknown, e.g. for entity types.
func ParseTypeName(name string) TypeKind {
	switch name {
	case "int":
		return Int
	case "float":
		return Float
	case "string":
		return StringType
	case "bool":
		return Bool
	case "null":
		return Null
	case "array":
		return Array
	case "object":
		return Object
	case "function":
		return Function
	default:
		return Unknown
	}
}

// Parameter is a single `name (: type)?` entry in a function's parameter
// list.
type Parameter struct {
	Position
	Name string
	Type *TypeInfo
}
