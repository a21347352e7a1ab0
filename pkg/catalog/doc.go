// Package catalog holds the static reference data shown by termuxdev: setup steps,
// package sources, CI workflow templates and documentation links.
//
// A Catalog is built once at process start (from the embedded defaults, optionally merged
// with a content directory) and is never mutated afterwards. Methods that combine catalogs
// return new values.
package catalog
