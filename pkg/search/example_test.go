package search_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/treesearch/pkg/search"
	"github.com/matzehuels/treesearch/pkg/tree"
)

func ExampleIterativeDeepening() {
	// Find file7 in a small directory tree
	p := tree.NewFilesProblem(tree.FilesTree(), "file7")
	out, _ := search.IterativeDeepening(context.Background(), p, search.Options{})

	fmt.Println("Outcome:", out.Kind)
	fmt.Println("Actions:", out.Actions())
	fmt.Println("Path:", tree.Names(out.States()))
	// Output:
	// Outcome: success
	// Actions: [dir3 dir4 file7]
	// Path: [dir1 dir3 dir4 file7]
}

func ExampleIterativeDeepening_failure() {
	p := tree.NewUsersProblem(tree.UsersTree(), 8)
	out, _ := search.IterativeDeepening(context.Background(), p, search.Options{})

	fmt.Println("Outcome:", out.Kind)
	fmt.Println("Passes:", out.Stats.Iterations)
	// Output:
	// Outcome: failure
	// Passes: 3
}

func ExampleDepthLimited() {
	p := tree.NewUsersProblem(tree.UsersTree(), 7)
	for _, limit := range []int{1, 2} {
		out, _ := search.DepthLimited(context.Background(), p, limit)
		fmt.Printf("limit %d: %v %v\n", limit, out.Kind, out.Actions())
	}
	// Output:
	// limit 1: cutoff []
	// limit 2: success [go_left go_right]
}

func ExampleDepthLimitedAll() {
	// Every .log file within depth 4
	p := tree.NewSuffixProblem(tree.LogsTree(), ".log")
	c, _ := search.DepthLimitedAll(context.Background(), p, 4)

	for _, path := range c.Paths {
		fmt.Println(tree.Names(path))
	}
	fmt.Println("Truncated:", c.BoundedRegionsRemain)
	// Output:
	// [dir1 dir2 log1.log]
	// [dir1 dir2 dir3 log2.log]
	// [dir1 dir2 dir3 dir4 log3.log]
	// Truncated: true
}

func ExampleFuncs() {
	// Reach 10 from 1 by doubling or adding one
	p := search.Funcs[int, string]{
		Start:       1,
		ActionsFunc: func(int) []string { return []string{"+1", "*2"} },
		ResultFunc: func(s int, a string) int {
			if a == "*2" {
				return s * 2
			}
			return s + 1
		},
		GoalFunc: func(s int) bool { return s == 10 },
	}
	out, _ := search.IterativeDeepening(context.Background(), p, search.Options{MaxLimit: 10})

	fmt.Println(out.States())
	// Output:
	// [1 2 4 5 10]
}
