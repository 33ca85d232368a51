package search_test

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treesearch/pkg/errors"
	"github.com/matzehuels/treesearch/pkg/frontier"
	"github.com/matzehuels/treesearch/pkg/observability"
	"github.com/matzehuels/treesearch/pkg/search"
	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

func userIDs(path []*tree.BinaryNode) []int {
	ids := make([]int, len(path))
	for i, n := range path {
		ids[i] = n.ID
	}
	return ids
}

func namePaths(paths [][]*tree.Node) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = tree.Names(p)
	}
	return out
}

func TestIterativeDeepeningUsers(t *testing.T) {
	tests := []struct {
		name        string
		target      int
		wantKind    search.Kind
		wantActions []string
		wantIDs     []int
		wantIters   int
	}{
		{"root", 1, search.Success, []string{}, []int{1}, 1},
		{"depth one", 3, search.Success, []string{tree.GoRight}, []int{1, 3}, 1},
		{"depth two", 7, search.Success, []string{tree.GoLeft, tree.GoRight}, []int{1, 2, 7}, 2},
		{"absent", 8, search.Failure, []string{}, []int{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tree.NewUsersProblem(tree.UsersTree(), tt.target)
			out, err := search.IterativeDeepening(context.Background(), p, search.Options{})
			if err != nil {
				t.Fatalf("IterativeDeepening() error = %v", err)
			}
			if out.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", out.Kind, tt.wantKind)
			}
			if diff := cmp.Diff(tt.wantActions, out.Actions()); diff != "" {
				t.Errorf("Actions mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantIDs, userIDs(out.States())); diff != "" {
				t.Errorf("States mismatch (-want +got):\n%s", diff)
			}
			if out.Stats.Iterations != tt.wantIters {
				t.Errorf("Iterations = %d, want %d", out.Stats.Iterations, tt.wantIters)
			}
		})
	}
}

func TestDepthLimitedUsers(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		limit    int
		wantKind search.Kind
		wantIDs  []int
	}{
		{"root is goal at limit zero", 1, 0, search.Success, []int{1}},
		{"limit zero truncates", 3, 0, search.Cutoff, []int{}},
		{"found within limit", 7, 2, search.Success, []int{1, 2, 7}},
		{"below limit", 7, 1, search.Cutoff, []int{}},
		{"absent and exhausted", 8, 5, search.Failure, []int{}},
		{"absent and truncated", 8, 2, search.Cutoff, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tree.NewUsersProblem(tree.UsersTree(), tt.target)
			out, err := search.DepthLimited(context.Background(), p, tt.limit)
			if err != nil {
				t.Fatalf("DepthLimited() error = %v", err)
			}
			if out.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", out.Kind, tt.wantKind)
			}
			if diff := cmp.Diff(tt.wantIDs, userIDs(out.States())); diff != "" {
				t.Errorf("States mismatch (-want +got):\n%s", diff)
			}
			if out.Found() && out.Depth() > tt.limit {
				t.Errorf("Depth() = %d exceeds limit %d", out.Depth(), tt.limit)
			}
			if !out.Found() && out.Depth() != -1 {
				t.Errorf("Depth() = %d without a goal, want -1", out.Depth())
			}
		})
	}
}

func TestIterativeDeepeningFiles(t *testing.T) {
	p := tree.NewFilesProblem(tree.FilesTree(), "file7")
	out, err := search.IterativeDeepening(context.Background(), p, search.Options{})
	if err != nil {
		t.Fatalf("IterativeDeepening() error = %v", err)
	}
	if !out.Found() {
		t.Fatalf("Kind = %v, want success", out.Kind)
	}
	if diff := cmp.Diff([]string{"dir3", "dir4", "file7"}, out.Actions()); diff != "" {
		t.Errorf("Actions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dir1", "dir3", "dir4", "file7"}, tree.Names(out.States())); diff != "" {
		t.Errorf("States mismatch (-want +got):\n%s", diff)
	}
	if out.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", out.Depth())
	}
}

var wantLogPaths = [][]string{
	{"dir1", "dir2", "log1.log"},
	{"dir1", "dir2", "dir3", "log2.log"},
	{"dir1", "dir2", "dir3", "dir4", "log3.log"},
	{"dir1", "dir2", "dir3", "dir4", "dir5", "log4.log"},
}

func TestDepthLimitedAllLogs(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		wantPaths     [][]string
		wantRemaining bool
	}{
		{"whole tree", 10, wantLogPaths, false},
		{"deepest directory truncated", 9, wantLogPaths, true},
		{"shallow", 3, wantLogPaths[:2], true},
		{"root only", 0, [][]string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tree.NewSuffixProblem(tree.LogsTree(), ".log")
			c, err := search.DepthLimitedAll(context.Background(), p, tt.limit)
			if err != nil {
				t.Fatalf("DepthLimitedAll() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantPaths, namePaths(c.Paths)); diff != "" {
				t.Errorf("Paths mismatch (-want +got):\n%s", diff)
			}
			if c.BoundedRegionsRemain != tt.wantRemaining {
				t.Errorf("BoundedRegionsRemain = %v, want %v", c.BoundedRegionsRemain, tt.wantRemaining)
			}
			for _, path := range c.Paths {
				if len(path)-1 > tt.limit {
					t.Errorf("path %v deeper than limit %d", tree.Names(path), tt.limit)
				}
			}
		})
	}
}

func TestIterativeDeepeningAllLogs(t *testing.T) {
	tests := []struct {
		name          string
		opts          search.Options
		wantPaths     [][]string
		wantIters     int
		wantRemaining bool
	}{
		{"until complete", search.Options{}, wantLogPaths, 10, false},
		{"stop on match", search.Options{StopOnMatch: true}, wantLogPaths[:1], 2, true},
		{"bounded", search.Options{MaxLimit: 4}, wantLogPaths[:3], 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tree.NewSuffixProblem(tree.LogsTree(), ".log")
			c, err := search.IterativeDeepeningAll(context.Background(), p, tt.opts)
			if err != nil {
				t.Fatalf("IterativeDeepeningAll() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantPaths, namePaths(c.Paths)); diff != "" {
				t.Errorf("Paths mismatch (-want +got):\n%s", diff)
			}
			if c.Stats.Iterations != tt.wantIters {
				t.Errorf("Iterations = %d, want %d", c.Stats.Iterations, tt.wantIters)
			}
			if c.BoundedRegionsRemain != tt.wantRemaining {
				t.Errorf("BoundedRegionsRemain = %v, want %v", c.BoundedRegionsRemain, tt.wantRemaining)
			}
			if c.Kind() != search.Success {
				t.Errorf("Kind() = %v, want success", c.Kind())
			}
		})
	}
}

func TestCollectionKind(t *testing.T) {
	tests := []struct {
		name string
		c    search.Collection[string]
		want search.Kind
	}{
		{"empty and complete", search.Collection[string]{}, search.Failure},
		{"empty and truncated", search.Collection[string]{BoundedRegionsRemain: true}, search.Cutoff},
		{"paths and truncated", search.Collection[string]{Paths: [][]string{{"a"}}, BoundedRegionsRemain: true}, search.Success},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

// mustGraph builds a graph from state IDs and edges, failing t on error.
func mustGraph(t *testing.T, states []string, edges ...statespace.Edge) *statespace.Graph {
	t.Helper()
	g := statespace.New()
	for _, id := range states {
		if err := g.AddState(statespace.State{ID: id}); err != nil {
			t.Fatalf("AddState(%q) error = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%+v) error = %v", e, err)
		}
	}
	return g
}

func TestDepthLimitedIsNotShallowest(t *testing.T) {
	g := mustGraph(t, []string{"root", "goal-l", "r1", "r2", "goal-r"},
		statespace.Edge{From: "root", To: "goal-l"},
		statespace.Edge{From: "root", To: "r1"},
		statespace.Edge{From: "r1", To: "r2"},
		statespace.Edge{From: "r2", To: "goal-r"},
	)
	p, err := statespace.NewPredicateProblem(g, "root", func(id string) bool { return strings.HasPrefix(id, "goal") })
	if err != nil {
		t.Fatal(err)
	}

	dls, err := search.DepthLimited(context.Background(), p, 5)
	if err != nil {
		t.Fatal(err)
	}
	if dls.Node.State() != "goal-r" || dls.Depth() != 3 {
		t.Errorf("DepthLimited found %v at depth %d, want <goal-r> at 3", dls.Node, dls.Depth())
	}

	ids, err := search.IterativeDeepening(context.Background(), p, search.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if ids.Node.State() != "goal-l" || ids.Depth() != 1 {
		t.Errorf("IterativeDeepening found %v at depth %d, want <goal-l> at 1", ids.Node, ids.Depth())
	}

	bfs, err := search.BreadthFirst(context.Background(), p, 5)
	if err != nil {
		t.Fatal(err)
	}
	if bfs.Depth() != ids.Depth() {
		t.Errorf("BreadthFirst depth = %d, want %d", bfs.Depth(), ids.Depth())
	}
}

func TestCyclesTerminate(t *testing.T) {
	g := mustGraph(t, []string{"a", "b"},
		statespace.Edge{From: "a", To: "a", Label: "stay"},
		statespace.Edge{From: "a", To: "b", Label: "next"},
		statespace.Edge{From: "b", To: "a", Label: "back"},
	)
	p, err := statespace.NewProblem(g, "a", "c")
	if err != nil {
		t.Fatal(err)
	}

	dls, err := search.DepthLimited(context.Background(), p, 10)
	if err != nil {
		t.Fatal(err)
	}
	if dls.Kind != search.Failure {
		t.Errorf("DepthLimited Kind = %v, want failure", dls.Kind)
	}
	want := search.Stats{Limit: 10, Iterations: 1, Generated: 4, Expanded: 2, Pruned: 2, MaxFrontier: 2}
	if diff := cmp.Diff(want, dls.Stats); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}

	ids, err := search.IterativeDeepening(context.Background(), p, search.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if ids.Kind != search.Failure || ids.Stats.Iterations != 3 {
		t.Errorf("IterativeDeepening = %v after %d iterations, want failure after 3", ids.Kind, ids.Stats.Iterations)
	}

	all, err := search.IterativeDeepeningAll(context.Background(), p, search.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if all.Kind() != search.Failure || !all.Complete() {
		t.Errorf("IterativeDeepeningAll Kind() = %v, Complete() = %v", all.Kind(), all.Complete())
	}
}

// counter is an infinite problem: every state has exactly one successor.
func counter(goal int) search.Funcs[int, string] {
	return search.Funcs[int, string]{
		ActionsFunc: func(int) []string { return []string{"inc"} },
		ResultFunc:  func(s int, _ string) int { return s + 1 },
		GoalFunc:    func(s int) bool { return s == goal },
	}
}

func TestIterativeDeepeningMaxLimit(t *testing.T) {
	out, err := search.IterativeDeepening(context.Background(), counter(-1), search.Options{MaxLimit: 5})
	if err != nil {
		t.Fatalf("IterativeDeepening() error = %v", err)
	}
	if out.Kind != search.Cutoff {
		t.Errorf("Kind = %v, want cutoff", out.Kind)
	}
	if out.Stats.Iterations != 5 || out.Stats.Limit != 5 {
		t.Errorf("Stats = %+v, want 5 iterations ending at limit 5", out.Stats)
	}

	out, err = search.IterativeDeepening(context.Background(), counter(5), search.Options{MaxLimit: 5})
	if err != nil || !out.Found() || out.Depth() != 5 {
		t.Errorf("goal at the bound: Kind = %v, depth %d, err %v", out.Kind, out.Depth(), err)
	}
}

func TestCancellation(t *testing.T) {
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := search.DepthLimited(ctx, counter(-1), 3)
		if !errors.Is(err, errors.ErrCodeCanceled) {
			t.Errorf("error = %v, want CANCELED", err)
		}
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("error %v does not wrap context.Canceled", err)
		}
	})

	t.Run("deadline on infinite space", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := search.IterativeDeepening(ctx, counter(-1), search.Options{})
		if !errors.Is(err, errors.ErrCodeTimeout) {
			t.Errorf("error = %v, want TIMEOUT", err)
		}
	})

	t.Run("collect all", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := tree.NewSuffixProblem(tree.LogsTree(), ".log")
		if _, err := search.IterativeDeepeningAll(ctx, p, search.Options{}); !errors.Is(err, errors.ErrCodeCanceled) {
			t.Errorf("error = %v, want CANCELED", err)
		}
	})
}

func TestInvalidArguments(t *testing.T) {
	p := tree.NewUsersProblem(tree.UsersTree(), 7)
	ctx := context.Background()

	if _, err := search.DepthLimited(ctx, p, -1); !errors.Is(err, errors.ErrCodeInvalidLimit) {
		t.Errorf("negative limit: error = %v, want INVALID_LIMIT", err)
	}
	if _, err := search.DepthLimitedAll(ctx, p, -1); !errors.Is(err, errors.ErrCodeInvalidLimit) {
		t.Errorf("negative limit (all): error = %v, want INVALID_LIMIT", err)
	}
	if _, err := search.IterativeDeepening(ctx, p, search.Options{MaxLimit: -2}); !errors.Is(err, errors.ErrCodeInvalidLimit) {
		t.Errorf("negative max limit: error = %v, want INVALID_LIMIT", err)
	}
	var nilProblem search.Problem[int, string]
	if _, err := search.IterativeDeepening(ctx, nilProblem, search.Options{}); !errors.Is(err, errors.ErrCodeInvalidProblem) {
		t.Errorf("nil problem: error = %v, want INVALID_PROBLEM", err)
	}
	if _, err := search.Bounded(ctx, search.Problem[*tree.BinaryNode, string](p), nil, 3); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil frontier: error = %v, want INVALID_INPUT", err)
	}
}

func TestBoundedLowestCost(t *testing.T) {
	g := mustGraph(t, []string{"root", "g-expensive", "mid", "g-cheap"},
		statespace.Edge{From: "root", To: "g-expensive", Cost: 5},
		statespace.Edge{From: "root", To: "mid", Cost: 1},
		statespace.Edge{From: "mid", To: "g-cheap", Cost: 1},
	)
	p, err := statespace.NewPredicateProblem(g, "root", func(id string) bool { return strings.HasPrefix(id, "g-") })
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		order     search.Order
		wantState string
		wantCost  float64
	}{
		{"breadth first takes the shallow goal", search.OrderBreadthFirst, "g-expensive", 5},
		{"lowest cost takes the cheap goal", search.OrderLowestCost, "g-cheap", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := search.NewFrontier[string, string](tt.order)
			out, err := search.Bounded(context.Background(), search.Problem[string, string](p), f, 10)
			if err != nil {
				t.Fatal(err)
			}
			if out.Node.State() != tt.wantState || out.Node.PathCost() != tt.wantCost {
				t.Errorf("found %v with cost %v, want <%s> with cost %v", out.Node, out.Node.PathCost(), tt.wantState, tt.wantCost)
			}
		})
	}
}

func TestBoundedCustomFrontier(t *testing.T) {
	// A queue handed in directly behaves like BreadthFirst.
	p := tree.NewUsersProblem(tree.UsersTree(), 5)
	f := frontier.NewQueue[search.Node[*tree.BinaryNode, string]]()
	out, err := search.Bounded(context.Background(), search.Problem[*tree.BinaryNode, string](p), f, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 3, 5}, userIDs(out.States())); diff != "" {
		t.Errorf("States mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundedReusedFrontier(t *testing.T) {
	ctx := context.Background()
	f := frontier.NewStack[search.Node[*tree.BinaryNode, string]]()

	// The stack pops go_right first, so node 2 is still pending at success.
	out, err := search.Bounded(ctx, search.Problem[*tree.BinaryNode, string](tree.NewUsersProblem(tree.UsersTree(), 3)), f, 3)
	if err != nil || !out.Found() {
		t.Fatalf("first search: found %v, err %v", out.Found(), err)
	}
	if f.Len() == 0 {
		t.Fatal("expected leftover nodes after an early success")
	}

	p := search.Problem[*tree.BinaryNode, string](tree.NewUsersProblem(tree.UsersTree(), 6))
	if _, err := search.Bounded(ctx, p, f, 3); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Bounded() on a non-empty frontier = %v, want INVALID_INPUT", err)
	}

	for !frontier.Empty[search.Node[*tree.BinaryNode, string]](f) {
		f.Pop()
	}
	out, err = search.Bounded(ctx, p, f, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 3, 6}, userIDs(out.States())); diff != "" {
		t.Errorf("States mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    search.Order
		wantErr bool
	}{
		{"depth-first", search.OrderDepthFirst, false},
		{"lifo", search.OrderDepthFirst, false},
		{"bfs", search.OrderBreadthFirst, false},
		{"lowest-cost", search.OrderLowestCost, false},
		{"random", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := search.ParseOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOrder(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

type event struct {
	Kind      string
	Algorithm string
	Limit     int
	Outcome   string
}

type recordingHooks struct {
	observability.NoopSearchHooks
	mu     sync.Mutex
	events []event
}

func (r *recordingHooks) OnSearchStart(_ context.Context, algo string, limit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{"start", algo, limit, ""})
}

func (r *recordingHooks) OnIteration(_ context.Context, algo string, limit int, outcome string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{"iteration", algo, limit, outcome})
}

func (r *recordingHooks) OnSearchComplete(_ context.Context, algo, outcome string, depth int, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{"complete", algo, depth, outcome})
}

func TestSearchHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetSearchHooks(rec)
	t.Cleanup(observability.Reset)

	p := tree.NewUsersProblem(tree.UsersTree(), 7)
	if _, err := search.IterativeDeepening(context.Background(), p, search.Options{}); err != nil {
		t.Fatal(err)
	}

	want := []event{
		{"start", search.AlgoIterativeDeepening, 0, ""},
		{"iteration", search.AlgoIterativeDeepening, 1, "cutoff"},
		{"iteration", search.AlgoIterativeDeepening, 2, "success"},
		{"complete", search.AlgoIterativeDeepening, 2, "success"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}
