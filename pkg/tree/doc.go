// Package tree provides in-memory trees and the search problems defined
// over them.
//
// # Trees
//
// [BinaryNode] is a binary tree keyed by integer ids. [Node] is an N-ary tree
// of named entries, the shape of a file system: directories are nodes with
// children, files are leaves.
//
// # Problems
//
// Each tree comes with a [search.Problem] whose states are tree nodes:
//
//   - [UsersProblem]: walk a [BinaryNode] tree with "go_left"/"go_right"
//     until a node with the wanted id is reached.
//   - [FilesProblem]: walk a [Node] tree by child name until a node whose
//     name equals the goal, or ends with a suffix, is reached.
//
// States are pointers, so two distinct nodes with equal names are distinct
// states. Problems never modify their tree.
//
// # Demo Trees
//
// [UsersTree], [FilesTree] and [LogsTree] build the fixed trees used by the
// CLI demo command and by tests.
package tree
