// Package toolrunner wraps the external tools DevAutomator shells out
// to (terraform, docker, pytest, pip, python). The tools themselves are
// opaque; this package only provides uniform invocation, timeout
// handling, and failure reporting.
package toolrunner
