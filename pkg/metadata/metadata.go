package metadata

import "errors"

// ErrNoSymbols is returned by a [SymbolReader] when a module has no debug
// symbols available. Readers may also return errors wrapping fs.ErrNotExist
// when the companion symbol file is missing; callers should treat both the
// same way.
var ErrNoSymbols = errors.New("no debug symbols")

// ScopeKind classifies where a referenced type is defined.
type ScopeKind int

const (
	// ScopeOther is a scope that is neither the current module nor a named
	// assembly reference.
	ScopeOther ScopeKind = iota
	// ScopeModule is the module that contains the reference.
	ScopeModule
	// ScopeAssemblyReference is a named external assembly.
	ScopeAssemblyReference
)

// String returns a short label for the scope kind.
func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeAssemblyReference:
		return "assembly"
	default:
		return "other"
	}
}

// Scope identifies the origin of a type reference.
type Scope struct {
	Kind ScopeKind
	// Name is the module file name for ScopeModule, the assembly short name
	// for ScopeAssemblyReference, and the raw scope name otherwise.
	Name string
	// Assembly is the identity that owns the scope. It is only meaningful
	// when HasAssembly reports true.
	Assembly AssemblyName
}

// HasAssembly reports whether the scope resolves to an assembly identity.
func (s Scope) HasAssembly() bool {
	return s.Kind == ScopeModule || s.Kind == ScopeAssemblyReference
}

// TypeRef is a reference to a type as it appears in a signature.
//
// Compound references (arrays and generic instantiations) expose their
// constituents through ElementType and GenericArguments so callers can
// reduce them to nominal types.
type TypeRef interface {
	// FullName is the namespace-qualified name, including generic arguments
	// and array suffixes (for example "App.Box`1<App.Item>" or "App.Item[]").
	FullName() string
	// Namespace is the namespace of the type, or "" when it has none. Nested
	// types have none.
	Namespace() string
	// Name is the simple name without namespace.
	Name() string
	Scope() Scope

	IsArray() bool
	IsGenericInstance() bool
	IsGenericParameter() bool

	// GenericArguments returns the type arguments of a generic instance, in
	// declaration order. It is nil for every other reference.
	GenericArguments() []TypeRef
	// ElementType returns the array element type for arrays and the unbound
	// generic type for generic instances. For other references it returns
	// the receiver.
	ElementType() TypeRef
}

// HandlerKind is the kind of an exception handler clause.
type HandlerKind int

const (
	HandlerCatch HandlerKind = iota
	HandlerFilter
	HandlerFinally
	HandlerFault
)

// ExceptionHandler is one handler clause of a method body. CatchType is nil
// for finally and fault clauses.
type ExceptionHandler struct {
	Kind      HandlerKind
	CatchType TypeRef
}

// MethodBody exposes the parts of a method body that declare types.
type MethodBody struct {
	Variables         []TypeRef
	ExceptionHandlers []ExceptionHandler
}

// Method is a method signature plus its optional body.
type Method struct {
	Name       string
	ReturnType TypeRef
	Parameters []TypeRef
	// Body is nil for abstract, extern and interface methods.
	Body *MethodBody
}

// TypeDefinition is a type defined in a module.
type TypeDefinition interface {
	FullName() string
	Namespace() string
	Name() string
	// IsNested reports whether the type is declared inside another type.
	IsNested() bool
	NestedTypes() []TypeDefinition

	CustomAttributes() []TypeRef
	// BaseType returns nil for interfaces and System.Object.
	BaseType() TypeRef
	Interfaces() []TypeRef
	Events() []TypeRef
	Fields() []TypeRef
	Properties() []TypeRef
	Methods() []Method
}

// Module is one loaded compiled module.
type Module interface {
	// Name is the module file name (for example "App.dll").
	Name() string
	// Assembly is the identity of the assembly the module belongs to.
	Assembly() AssemblyName
	// AssemblyReferences lists the assemblies the module references, in
	// declaration order.
	AssemblyReferences() []AssemblyName
	// Types lists the top-level type definitions. Nested types are reached
	// through TypeDefinition.NestedTypes.
	Types() []TypeDefinition
}

// Provider loads modules from disk.
type Provider interface {
	Load(path string) (Module, error)
}

// SymbolReader is implemented by providers that can attach debug symbols to
// a loaded module. Symbols never change the reported dependency graph.
type SymbolReader interface {
	ReadSymbols(m Module, path string) error
}
