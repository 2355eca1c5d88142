// Package pkg provides the core libraries for weld manifest/import
// consistency checking.
//
// # Overview
//
// Weld keeps a monorepo's declared package manifests in step with the
// dependencies its code actually uses. The pkg directory is organized into
// three main areas:
//
//  1. [deps] - The dependency record model, specifier parser and diff engine
//  2. [config] - The pyproject.toml overlay with format-preserving merge
//  3. [errors] - Structured errors with machine-readable codes
//
// # Architecture
//
// The typical data flow through weld:
//
//	pyproject.toml text
//	         ↓
//	config.Load ──────────────→ typed overlay + original-text anchor
//	         ↓                              ↓
//	Conf.PackageDeps            mutate dependencies/sources
//	         ↓                              ↓
//	deps.Check ←─ imports JSON   Conf.Serialize → merged text
//	         ↓
//	CheckDiff report
//
// File reads/writes, workspace discovery and the import scan that produces
// the imports mapping all live outside these packages; the cores are pure
// transformations over in-memory text and structures.
package pkg
