// Package project implements the non-scaffolding project helpers: the
// dashboard metrics snapshot, temporary-file cleanup, the generated
// tree documentation, and the dependency report.
package project
