// Package reconcile compares a render plan against the manifest store
// and the actual filesystem, classifies every planned file, and applies
// the plan under a policy. All persisted mutation happens inside Apply,
// after the full plan is computed, so a crash before Apply leaves the
// project root untouched.
package reconcile
