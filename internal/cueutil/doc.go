// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE plumbing shared by configuration and scenario
// loading: compile an embedded schema, unify user data with one of its
// definitions, validate, and decode into a Go value.
//
//	//go:embed scenario_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Scenario](schema, data, "#Scenario",
//		cueutil.WithFilename("login.cue"))
//
// Errors carry the file name and the JSON path of the offending field, e.g.
// "login.cue: steps[2].key: conflicting values".
package cueutil
