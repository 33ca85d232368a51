// Package io reads and writes the documents treesearch works with: trees
// and state graphs to search, and the results of a search.
//
// # Formats
//
// Trees and graphs can be stored as JSON, TOML or YAML. [FormatFromPath]
// picks the format from the file extension (.json, .toml, .yaml, .yml).
// Decoding is strict: unknown keys are rejected in every format, so a typo
// such as "chidren" fails loudly instead of producing a leaf.
//
// # Tree Documents
//
// A tree is a nested object of names and children:
//
//	{
//	  "name": "dir1",
//	  "children": [
//	    {"name": "dir2", "children": [{"name": "file4"}]},
//	    {"name": "dir3"}
//	  ]
//	}
//
// The same document in TOML uses arrays of tables:
//
//	name = "dir1"
//
//	[[children]]
//	name = "dir2"
//
//	  [[children.children]]
//	  name = "file4"
//
//	[[children]]
//	name = "dir3"
//
// Names must be non-empty and unique among siblings, since a child is
// selected by its name.
//
// # Graph Documents
//
// A state graph lists states and labelled edges:
//
//	{
//	  "states": [{"id": "home"}, {"id": "work", "meta": {"floor": 3}}],
//	  "edges": [{"from": "home", "to": "work", "label": "drive", "cost": 10}]
//	}
//
// label defaults to the target ID and cost to 1. Cycles are allowed; the
// search engine prunes them per path.
//
// # Results
//
// [Result] is the JSON shape of a finished search, shared by the CLI's
// --format json output and the HTTP server. Every result carries a fresh
// run ID so that log lines and responses can be correlated.
//
// Use [ImportTree] and [ImportGraph] for files, or [ReadTree] and
// [ReadGraph] for any io.Reader. The returned values are independent of the
// input and may be modified freely.
package io
