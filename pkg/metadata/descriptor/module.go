package descriptor

import (
	"fmt"
	"strings"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

// Module is a module decoded from a descriptor. It implements
// metadata.Module.
type Module struct {
	name       string
	assembly   metadata.AssemblyName
	references []metadata.AssemblyName
	types      []metadata.TypeDefinition
	symbolFile string
	format     Format
}

func (m *Module) Name() string                                { return m.name }
func (m *Module) Assembly() metadata.AssemblyName             { return m.assembly }
func (m *Module) AssemblyReferences() []metadata.AssemblyName { return m.references }
func (m *Module) Types() []metadata.TypeDefinition            { return m.types }

// Format returns the encoding the descriptor was decoded from.
func (m *Module) Format() Format { return m.format }

// SymbolFile returns the path of the attached symbol file, or "" when no
// symbols were read.
func (m *Module) SymbolFile() string { return m.symbolFile }

// TypeDef is a type definition decoded from a descriptor. It implements
// metadata.TypeDefinition.
type TypeDef struct {
	namespace  string
	name       string
	declaring  *TypeDef
	nested     []metadata.TypeDefinition
	attributes []metadata.TypeRef
	baseType   metadata.TypeRef
	interfaces []metadata.TypeRef
	events     []metadata.TypeRef
	fields     []metadata.TypeRef
	properties []metadata.TypeRef
	methods    []metadata.Method
}

func (t *TypeDef) FullName() string {
	if t.declaring != nil {
		return t.declaring.FullName() + "/" + t.name
	}
	if t.namespace == "" {
		return t.name
	}
	return t.namespace + "." + t.name
}

func (t *TypeDef) Namespace() string                      { return t.namespace }
func (t *TypeDef) Name() string                           { return t.name }
func (t *TypeDef) IsNested() bool                         { return t.declaring != nil }
func (t *TypeDef) NestedTypes() []metadata.TypeDefinition { return t.nested }
func (t *TypeDef) CustomAttributes() []metadata.TypeRef   { return t.attributes }
func (t *TypeDef) BaseType() metadata.TypeRef             { return t.baseType }
func (t *TypeDef) Interfaces() []metadata.TypeRef         { return t.interfaces }
func (t *TypeDef) Events() []metadata.TypeRef             { return t.events }
func (t *TypeDef) Fields() []metadata.TypeRef             { return t.fields }
func (t *TypeDef) Properties() []metadata.TypeRef         { return t.properties }
func (t *TypeDef) Methods() []metadata.Method             { return t.methods }

// builder converts a decoded document into a Module.
type builder struct {
	resolve scopeResolver
}

func buildModule(doc *document, defaultName string, format Format) (*Module, error) {
	assembly, err := toAssemblyName(doc.Assembly)
	if err != nil {
		return nil, fmt.Errorf("assembly: %w", err)
	}

	refs := make([]metadata.AssemblyName, 0, len(doc.References))
	for i, r := range doc.References {
		ref, err := toAssemblyName(r)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		refs = append(refs, ref)
	}

	name := doc.Module
	if name == "" {
		name = defaultName
	}

	m := &Module{
		name:       name,
		assembly:   assembly,
		references: refs,
		format:     format,
	}

	b := &builder{resolve: newScopeResolver(name, assembly, refs)}
	for _, td := range doc.Types {
		t, err := b.typeDef(td, nil)
		if err != nil {
			return nil, err
		}
		m.types = append(m.types, t)
	}
	return m, nil
}

func toAssemblyName(d assemblyDoc) (metadata.AssemblyName, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return metadata.AssemblyName{}, ErrMissingAssembly
	}
	v, err := metadata.ParseVersion(d.Version)
	if err != nil {
		return metadata.AssemblyName{}, err
	}
	culture := d.Culture
	if strings.EqualFold(culture, "neutral") {
		culture = ""
	}
	token := strings.ToLower(d.PublicKeyToken)
	if token == "null" {
		token = ""
	}
	return metadata.AssemblyName{Name: name, Version: v, Culture: culture, PublicKeyToken: token}, nil
}

func (b *builder) typeDef(d typeDoc, declaring *TypeDef) (*TypeDef, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("type in namespace %q has no name", d.Namespace)
	}
	t := &TypeDef{namespace: d.Namespace, name: d.Name, declaring: declaring}
	if declaring != nil && t.namespace == "" {
		t.namespace = declaring.namespace
	}

	wrap := func(what string, err error) error {
		return fmt.Errorf("type %s: %s: %w", t.FullName(), what, err)
	}

	var err error
	if t.attributes, err = b.refs(d.Attributes); err != nil {
		return nil, wrap("attributes", err)
	}
	if t.baseType, err = b.ref(d.BaseType); err != nil {
		return nil, wrap("base type", err)
	}
	if t.interfaces, err = b.refs(d.Interfaces); err != nil {
		return nil, wrap("interfaces", err)
	}
	if t.events, err = b.members(d.Events); err != nil {
		return nil, wrap("events", err)
	}
	if t.fields, err = b.members(d.Fields); err != nil {
		return nil, wrap("fields", err)
	}
	if t.properties, err = b.members(d.Properties); err != nil {
		return nil, wrap("properties", err)
	}
	for _, md := range d.Methods {
		m, err := b.method(md)
		if err != nil {
			return nil, wrap("method "+md.Name, err)
		}
		t.methods = append(t.methods, m)
	}
	for _, nd := range d.NestedTypes {
		n, err := b.typeDef(nd, t)
		if err != nil {
			return nil, err
		}
		t.nested = append(t.nested, n)
	}
	return t, nil
}

func (b *builder) method(d methodDoc) (metadata.Method, error) {
	m := metadata.Method{Name: d.Name}
	var err error
	if m.ReturnType, err = b.ref(d.ReturnType); err != nil {
		return m, err
	}
	if m.Parameters, err = b.members(d.Parameters); err != nil {
		return m, err
	}
	if d.Body == nil {
		return m, nil
	}

	body := &metadata.MethodBody{}
	if body.Variables, err = b.refs(d.Body.Variables); err != nil {
		return m, err
	}
	for _, h := range d.Body.Handlers {
		kind, err := handlerKind(h.Kind)
		if err != nil {
			return m, err
		}
		catch, err := b.ref(h.CatchType)
		if err != nil {
			return m, err
		}
		if kind == metadata.HandlerFinally || kind == metadata.HandlerFault {
			catch = nil
		}
		body.ExceptionHandlers = append(body.ExceptionHandlers, metadata.ExceptionHandler{Kind: kind, CatchType: catch})
	}
	m.Body = body
	return m, nil
}

func handlerKind(s string) (metadata.HandlerKind, error) {
	switch strings.ToLower(s) {
	case "", "catch":
		return metadata.HandlerCatch, nil
	case "filter":
		return metadata.HandlerFilter, nil
	case "finally":
		return metadata.HandlerFinally, nil
	case "fault":
		return metadata.HandlerFault, nil
	}
	return 0, fmt.Errorf("unknown exception handler kind %q", s)
}

// ref parses an optional signature; "" yields nil.
func (b *builder) ref(sig string) (metadata.TypeRef, error) {
	if strings.TrimSpace(sig) == "" {
		return nil, nil
	}
	return parseSignature(sig, b.resolve)
}

func (b *builder) refs(sigs []string) ([]metadata.TypeRef, error) {
	out := make([]metadata.TypeRef, 0, len(sigs))
	for _, s := range sigs {
		r, err := parseSignature(s, b.resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (b *builder) members(ms []memberDoc) ([]metadata.TypeRef, error) {
	out := make([]metadata.TypeRef, 0, len(ms))
	for _, m := range ms {
		r, err := parseSignature(m.Type, b.resolve)
		if err != nil {
			if m.Name != "" {
				return nil, fmt.Errorf("%s: %w", m.Name, err)
			}
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
