// Package pkg provides the libraries behind treesearch, a toolkit for
// uninformed search over trees and state graphs.
//
// # Overview
//
// A search problem names an initial state, the actions available in each
// state, the state each action leads to and a goal test. The drivers in
// [search] explore such a problem with a bounded frontier and report either
// the first goal path or every goal path within a depth limit:
//
//	Tree or graph file (JSON, TOML, YAML)
//	         ↓
//	    [io] package (decode into tree.Node or statespace.Graph)
//	         ↓
//	    [tree] / [statespace] (adapt to search.Problem)
//	         ↓
//	    [search] package (depth-limited, iterative deepening, collect-all)
//	         ↓
//	    Result JSON, terminal output, or a [render] diagram
//
// # Quick Start
//
// Find a file in the built-in directory tree:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/treesearch/pkg/search"
//	    "github.com/matzehuels/treesearch/pkg/tree"
//	)
//
//	p := tree.NewFilesProblem(tree.FilesTree(), "file7")
//	out, err := search.IterativeDeepening(context.Background(), p, search.Options{})
//	if err == nil && out.Found() {
//	    fmt.Println(tree.Names(out.States())) // [dir1 dir3 dir4 file7]
//	}
//
// # Main Packages
//
// ## Search
//
// [search] - Generic problems, arena-backed search nodes, path
// reconstruction, ancestor cycle checks and the drivers: DepthLimited,
// BreadthFirst, Bounded, DepthLimitedAll, IterativeDeepening and
// IterativeDeepeningAll. Outcomes are Success, Cutoff or Failure.
//
// [frontier] - LIFO stack, FIFO ring queue and a stable priority queue
// behind one Frontier interface.
//
// ## Domains
//
// [tree] - N-ary and binary trees with the users, files and logs demo
// scenarios.
//
// [statespace] - Directed, labelled, weighted state graphs that may contain
// cycles.
//
// ## Input and Output
//
// [io] - Tree and graph documents in JSON, TOML and YAML, and the result
// document shared by the CLI and the HTTP server.
//
// [render] - Graphviz DOT for trees and graphs with goal paths
// highlighted, rendered to SVG or PNG.
//
// ## Infrastructure
//
// [cache] - Result cache keyed by input hash and search parameters, with
// file, memory, Redis and null backends.
//
// [runs] - Archive of finished results by run ID, in memory or MongoDB.
//
// [observability] - Hooks for search passes and HTTP requests.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/search/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// The Redis and MongoDB backends join the cache and runs tests when
// TREESEARCH_REDIS_URL or TREESEARCH_MONGO_URI point at a server.
//
// [search]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/search
// [frontier]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/frontier
// [tree]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/tree
// [statespace]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/statespace
// [io]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/cache
// [runs]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/runs
// [observability]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treesearch/pkg/buildinfo
package pkg
