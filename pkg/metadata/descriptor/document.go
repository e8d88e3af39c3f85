package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrBinaryImage is returned when the input is a PE image rather than a
	// module descriptor.
	ErrBinaryImage = errors.New("binary PE image: a module descriptor is required")

	// ErrInvalidSignature is returned for malformed type signatures.
	ErrInvalidSignature = errors.New("invalid type signature")

	// ErrMissingAssembly is returned when a descriptor has no assembly name.
	ErrMissingAssembly = errors.New("descriptor has no assembly name")
)

// Format identifies the encoding of a descriptor.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// document is the on-disk descriptor schema. JSON and TOML share key names.
type document struct {
	Module     string        `json:"module,omitempty" toml:"module"`
	Assembly   assemblyDoc   `json:"assembly" toml:"assembly"`
	References []assemblyDoc `json:"references,omitempty" toml:"references"`
	Types      []typeDoc     `json:"types,omitempty" toml:"types"`
}

type assemblyDoc struct {
	Name           string `json:"name" toml:"name"`
	Version        string `json:"version,omitempty" toml:"version"`
	Culture        string `json:"culture,omitempty" toml:"culture"`
	PublicKeyToken string `json:"publicKeyToken,omitempty" toml:"publicKeyToken"`
}

type typeDoc struct {
	Namespace   string      `json:"namespace,omitempty" toml:"namespace"`
	Name        string      `json:"name" toml:"name"`
	Attributes  []string    `json:"attributes,omitempty" toml:"attributes"`
	BaseType    string      `json:"baseType,omitempty" toml:"baseType"`
	Interfaces  []string    `json:"interfaces,omitempty" toml:"interfaces"`
	Events      []memberDoc `json:"events,omitempty" toml:"events"`
	Fields      []memberDoc `json:"fields,omitempty" toml:"fields"`
	Properties  []memberDoc `json:"properties,omitempty" toml:"properties"`
	Methods     []methodDoc `json:"methods,omitempty" toml:"methods"`
	NestedTypes []typeDoc   `json:"nestedTypes,omitempty" toml:"nestedTypes"`
}

type memberDoc struct {
	Name string `json:"name,omitempty" toml:"name"`
	Type string `json:"type" toml:"type"`
}

type methodDoc struct {
	Name       string      `json:"name" toml:"name"`
	ReturnType string      `json:"returnType,omitempty" toml:"returnType"`
	Parameters []memberDoc `json:"parameters,omitempty" toml:"parameters"`
	Body       *bodyDoc    `json:"body,omitempty" toml:"body"`
}

type bodyDoc struct {
	Variables []string     `json:"variables,omitempty" toml:"variables"`
	Handlers  []handlerDoc `json:"handlers,omitempty" toml:"handlers"`
}

type handlerDoc struct {
	Kind      string `json:"kind,omitempty" toml:"kind"`
	CatchType string `json:"catchType,omitempty" toml:"catchType"`
}

// DetectFormat reports the descriptor format of data.
func DetectFormat(data []byte) (Format, error) {
	if bytes.HasPrefix(data, []byte("MZ")) {
		return "", ErrBinaryImage
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON, nil
	}
	return FormatTOML, nil
}

func decodeDocument(data []byte) (*document, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	}

	if strings.TrimSpace(doc.Assembly.Name) == "" {
		return nil, ErrMissingAssembly
	}
	return &doc, nil
}
