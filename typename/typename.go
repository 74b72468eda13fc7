package typename

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// ErrMalformed indicates a serialized type name did not contain exactly one
// comma separating the fully-qualified name from its semver string.
var ErrMalformed = errors.New("typename: malformed serialized form")

// TypeName identifies a logical circuit value type together with the
// semantic version of the schema that produced it.
type TypeName struct {
	Name    string
	Version semver.Version
}

// New constructs a TypeName, parsing version with standard semver rules.
func New(name, version string) (TypeName, error) {
	v, err := semver.Parse(version)
	if err != nil {
		return TypeName{}, fmt.Errorf("%w: version: %v", ErrMalformed, err)
	}

	return TypeName{Name: name, Version: v}, nil
}

// String serializes t as "<name>,<semver>".
func (t TypeName) String() string {
	return t.Name + "," + t.Version.String()
}

// Parse deserializes s, requiring exactly one comma separating the name
// from its version (spec.md §6: "any other shape fails with a descriptive
// parse error").
func Parse(s string) (TypeName, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return TypeName{}, fmt.Errorf("%w: %q: expected exactly one comma, found %d part(s)", ErrMalformed, s, len(parts))
	}

	v, err := semver.Parse(parts[1])
	if err != nil {
		return TypeName{}, fmt.Errorf("%w: %q: version %q: %v", ErrMalformed, s, parts[1], err)
	}

	return TypeName{Name: parts[0], Version: v}, nil
}
