package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/asmdeps/pkg/errors"
)

// Version is a four-part assembly version (major.minor.build.revision).
// Missing components are zero.
type Version [4]int

// ParseVersion parses "1", "1.2", "1.2.3" or "1.2.3.4". An empty string is
// the zero version.
func ParseVersion(s string) (Version, error) {
	var v Version
	s = strings.TrimSpace(s)
	if s == "" {
		return v, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > len(v) {
		return v, errors.New(errors.ErrCodeInvalidInput, "invalid version %q: too many components", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return v, errors.New(errors.ErrCodeInvalidInput, "invalid version %q: bad component %q", s, p)
		}
		v[i] = n
	}
	return v, nil
}

// String renders all four components (for example "1.0.0.0").
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// AssemblyName is the identity of an assembly.
type AssemblyName struct {
	Name    string
	Version Version
	// Culture is empty for culture-neutral assemblies.
	Culture string
	// PublicKeyToken is the lower-case hex token, empty when unsigned.
	PublicKeyToken string
}

// FullName returns the canonical display name used to compare identities:
//
//	Name, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null
func (a AssemblyName) FullName() string {
	culture := a.Culture
	if culture == "" {
		culture = "neutral"
	}
	token := a.PublicKeyToken
	if token == "" {
		token = "null"
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", a.Name, a.Version, culture, token)
}

// String returns the full name.
func (a AssemblyName) String() string { return a.FullName() }

// ParseAssemblyName parses an assembly display name. Only the short name is
// required; Version, Culture and PublicKeyToken are read when present and
// unknown keys are ignored.
func ParseAssemblyName(fullName string) (AssemblyName, error) {
	var a AssemblyName
	parts := strings.Split(fullName, ",")
	a.Name = strings.TrimSpace(parts[0])
	if a.Name == "" {
		return a, errors.New(errors.ErrCodeInvalidInput, "invalid assembly name %q", fullName)
	}

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return a, errors.New(errors.ErrCodeInvalidInput, "invalid assembly name %q: malformed %q", fullName, strings.TrimSpace(part))
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch strings.ToLower(key) {
		case "version":
			v, err := ParseVersion(value)
			if err != nil {
				return a, err
			}
			a.Version = v
		case "culture":
			if !strings.EqualFold(value, "neutral") {
				a.Culture = value
			}
		case "publickeytoken":
			if !strings.EqualFold(value, "null") {
				a.PublicKeyToken = strings.ToLower(value)
			}
		}
	}
	return a, nil
}
