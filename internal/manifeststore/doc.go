// Package manifeststore persists, per project root, what was last
// machine-generated: one YAML file mapping target path to content
// fingerprint, template identity, and generation time. The file is
// deliberately human-readable so users can inspect drift by hand.
package manifeststore
