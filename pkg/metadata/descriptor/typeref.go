package descriptor

import (
	"fmt"
	"strings"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

type refKind int

const (
	refNominal refKind = iota
	refArray
	refGeneric
	refGenericParam
)

// typeRef is the descriptor implementation of metadata.TypeRef.
type typeRef struct {
	kind refKind

	// nominal
	namespace string
	name      string
	declaring []string // enclosing type names, outermost first
	scope     metadata.Scope

	// array and generic
	elem metadata.TypeRef
	args []metadata.TypeRef
	rank int

	// generic parameter ("T", or "!T" style owner marker stripped)
	param string
}

func (r *typeRef) FullName() string {
	switch r.kind {
	case refArray:
		return r.elem.FullName() + arraySuffix(r.rank)
	case refGeneric:
		names := make([]string, len(r.args))
		for i, a := range r.args {
			names[i] = a.FullName()
		}
		return r.elem.FullName() + "<" + strings.Join(names, ",") + ">"
	case refGenericParam:
		return r.param
	}
	var b strings.Builder
	if r.namespace != "" {
		b.WriteString(r.namespace)
		b.WriteByte('.')
	}
	for _, d := range r.declaring {
		b.WriteString(d)
		b.WriteByte('/')
	}
	b.WriteString(r.name)
	return b.String()
}

func (r *typeRef) Namespace() string {
	switch r.kind {
	case refArray, refGeneric:
		return r.elem.Namespace()
	case refGenericParam:
		return ""
	}
	if len(r.declaring) > 0 {
		// Nested types carry no namespace of their own; FullName still
		// spells it through the outermost type.
		return ""
	}
	return r.namespace
}

func (r *typeRef) Name() string {
	switch r.kind {
	case refArray:
		return r.elem.Name() + arraySuffix(r.rank)
	case refGeneric:
		return r.elem.Name()
	case refGenericParam:
		return r.param
	}
	return r.name
}

func (r *typeRef) Scope() metadata.Scope {
	switch r.kind {
	case refArray, refGeneric:
		return r.elem.Scope()
	case refGenericParam:
		return metadata.Scope{Kind: metadata.ScopeOther}
	}
	return r.scope
}

func (r *typeRef) IsArray() bool            { return r.kind == refArray }
func (r *typeRef) IsGenericInstance() bool  { return r.kind == refGeneric }
func (r *typeRef) IsGenericParameter() bool { return r.kind == refGenericParam }

func (r *typeRef) GenericArguments() []metadata.TypeRef {
	if r.kind != refGeneric {
		return nil
	}
	return r.args
}

func (r *typeRef) ElementType() metadata.TypeRef {
	if r.kind == refArray || r.kind == refGeneric {
		return r.elem
	}
	return r
}

func (r *typeRef) String() string { return r.FullName() }

func arraySuffix(rank int) string {
	if rank <= 1 {
		return "[]"
	}
	return "[" + strings.Repeat(",", rank-1) + "]"
}

// scopeResolver maps a bracketed scope name to a metadata scope. The empty
// name stands for "no scope given".
type scopeResolver func(name string) metadata.Scope

// signatureParser is a recursive-descent parser for type signatures.
type signatureParser struct {
	src     string
	pos     int
	resolve scopeResolver
}

// ParseTypeRef parses a type signature whose unscoped types belong to a
// module with the given name and assembly identity, and whose bracketed
// scopes are looked up in refs.
func ParseTypeRef(sig, moduleName string, assembly metadata.AssemblyName, refs []metadata.AssemblyName) (metadata.TypeRef, error) {
	return parseSignature(sig, newScopeResolver(moduleName, assembly, refs))
}

func newScopeResolver(moduleName string, assembly metadata.AssemblyName, refs []metadata.AssemblyName) scopeResolver {
	byName := make(map[string]metadata.AssemblyName, len(refs))
	for _, ref := range refs {
		if _, ok := byName[ref.Name]; !ok {
			byName[ref.Name] = ref
		}
	}
	module := metadata.Scope{Kind: metadata.ScopeModule, Name: moduleName, Assembly: assembly}
	return func(name string) metadata.Scope {
		if name == "" {
			return module
		}
		if ref, ok := byName[name]; ok {
			return metadata.Scope{Kind: metadata.ScopeAssemblyReference, Name: ref.Name, Assembly: ref}
		}
		if name == assembly.Name || name == moduleName {
			return module
		}
		return metadata.Scope{Kind: metadata.ScopeOther, Name: name}
	}
}

func parseSignature(sig string, resolve scopeResolver) (metadata.TypeRef, error) {
	p := &signatureParser{src: sig, resolve: resolve}
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("%w: empty type signature", ErrInvalidSignature)
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

func (p *signatureParser) parseType() (metadata.TypeRef, error) {
	p.skipSpace()
	var t metadata.TypeRef
	var err error
	if p.peek() == '!' {
		t, err = p.parseGenericParam()
	} else {
		t, err = p.parseNominal()
	}
	if err != nil {
		return nil, err
	}
	return p.parseArraySuffixes(t)
}

func (p *signatureParser) parseGenericParam() (metadata.TypeRef, error) {
	p.pos++
	if p.peek() == '!' {
		p.pos++
	}
	name := p.readIdent()
	if name == "" {
		return nil, p.errorf("missing generic parameter name")
	}
	return &typeRef{kind: refGenericParam, param: name}, nil
}

func (p *signatureParser) parseNominal() (metadata.TypeRef, error) {
	scopeName := ""
	if p.peek() == '[' {
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return nil, p.errorf("unterminated scope")
		}
		scopeName = strings.TrimSpace(p.src[p.pos : p.pos+end])
		if scopeName == "" {
			return nil, p.errorf("empty scope")
		}
		p.pos += end + 1
		p.skipSpace()
	}

	qname := p.readIdent()
	if qname == "" {
		return nil, p.errorf("missing type name")
	}
	segments := strings.Split(qname, "/")
	for _, s := range segments {
		if s == "" {
			return nil, p.errorf("empty nested type name in %q", qname)
		}
	}

	ns, outer := splitNamespace(segments[0])
	names := append([]string{outer}, segments[1:]...)
	t := &typeRef{
		kind:      refNominal,
		namespace: ns,
		name:      names[len(names)-1],
		declaring: names[:len(names)-1],
		scope:     p.resolve(scopeName),
	}

	p.skipSpace()
	if p.peek() != '<' {
		return t, nil
	}
	p.pos++
	var args []metadata.TypeRef
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return &typeRef{kind: refGeneric, elem: t, args: args}, nil
		default:
			return nil, p.errorf("expected ',' or '>' in generic argument list")
		}
	}
}

func (p *signatureParser) parseArraySuffixes(t metadata.TypeRef) (metadata.TypeRef, error) {
	for {
		p.skipSpace()
		if p.peek() != '[' {
			return t, nil
		}
		p.pos++
		rank := 1
		for p.peek() == ',' {
			rank++
			p.pos++
		}
		if p.peek() != ']' {
			return nil, p.errorf("malformed array suffix")
		}
		p.pos++
		t = &typeRef{kind: refArray, elem: t, rank: rank}
	}
}

// readIdent reads a dotted, possibly nested identifier. Quoted sections may
// contain characters that are otherwise delimiters.
func (p *signatureParser) readIdent() string {
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		if c == '\'' {
			end := strings.IndexByte(p.src[p.pos+1:], '\'')
			if end < 0 {
				b.WriteString(p.src[p.pos+1:])
				p.pos = len(p.src)
				break
			}
			b.WriteString(p.src[p.pos+1 : p.pos+1+end])
			p.pos += end + 2
			continue
		}
		if strings.IndexByte("[]<>,! \t\r\n", c) >= 0 {
			break
		}
		b.WriteByte(c)
		p.pos++
	}
	return b.String()
}

func (p *signatureParser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *signatureParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *signatureParser) eof() bool { return p.pos >= len(p.src) }

func (p *signatureParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrInvalidSignature, p.src, p.pos, fmt.Sprintf(format, args...))
}

// splitNamespace splits "App.Core.Widget" into ("App.Core", "Widget").
func splitNamespace(name string) (string, string) {
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return name[:i], name[i+1:]
	}
	return "", name
}
