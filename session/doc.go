// Package session houses concrete implementations of core.HistoryStore.
// The interface itself lives in the core package to centralize domain
// contracts; keeping only implementations here prevents higher level
// packages from depending on concrete storage.
//
// Additional backends (Redis lives in the redis sub-package) can be added
// without changing any calling code - only the wiring layer decides which
// implementation to instantiate.
package session
