// Package typename implements the serialized type-identity format used to
// tag circuit input/output values with their logical Go type across a
// serialization boundary: "<fully_qualified_name>,<semver>".
package typename
