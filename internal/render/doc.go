// Package render expands a template against a parameter set into an
// in-memory file plan. It never touches the filesystem or the manifest;
// applying a plan is the reconciler's job.
package render
