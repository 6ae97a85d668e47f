// Package template holds the registry of built-in, versioned project
// templates. Bundles live as YAML files embedded into the binary; each
// is validated against a JSON Schema at registry construction and is
// immutable afterwards.
package template
