// Package testsupport provides shared fixtures for package tests: isolated
// configs rooted in t.TempDir, store helpers, recipe builders and an
// in-memory feed.
package testsupport
