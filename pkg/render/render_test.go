package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treesearch/pkg/search"
	"github.com/matzehuels/treesearch/pkg/statespace"
	"github.com/matzehuels/treesearch/pkg/tree"
)

func TestToDOT(t *testing.T) {
	root := tree.FilesTree()
	dir3 := root.Child("dir3")
	dir4 := dir3.Child("dir4")
	file7 := dir4.Child("file7")

	dot := ToDOT(root, Options{Paths: [][]*tree.Node{{root, dir3, dir4, file7}}})

	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("not a DOT digraph:\n%s", dot)
	}

	// Preorder ids: dir1=n0 dir2=n1 file4=n2 dir3=n3 file5=n4 file6=n5 dir4=n6 file7=n7
	wantLines := []string{
		`"n0" [label="dir1", fillcolor="#cde7ff", color="#1f6feb"];`,
		`"n1" [label="dir2"];`,
		`"n7" [label="file7", fillcolor="#cde7ff", color="#1f6feb", peripheries=2];`,
		`"n0" -> "n1";`,
		`"n0" -> "n3" [color="#1f6feb", penwidth=2.5];`,
		`"n3" -> "n6" [color="#1f6feb", penwidth=2.5];`,
		`"n6" -> "n7" [color="#1f6feb", penwidth=2.5];`,
		`"n3" -> "n4";`,
	}
	for _, line := range wantLines {
		if !strings.Contains(dot, "  "+line+"\n") {
			t.Errorf("DOT missing line %s\n%s", line, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 7 {
		t.Errorf("edge count = %d, want 7", got)
	}
}

func TestToDOTDuplicateNames(t *testing.T) {
	root := tree.New("root", tree.New("a", tree.New("README")), tree.New("b", tree.New("README")))
	dot := ToDOT(root, Options{Detailed: true})

	if got := strings.Count(dot, `label="README\ndepth: 2"`); got != 2 {
		t.Errorf("README nodes = %d, want 2 distinct nodes\n%s", got, dot)
	}
	if strings.Contains(dot, "fillcolor=\"#cde7ff\"") {
		t.Error("nothing should be highlighted without paths")
	}
}

func TestToDOTCollectedPaths(t *testing.T) {
	p := tree.NewSuffixProblem(tree.LogsTree(), ".log")
	c, err := search.DepthLimitedAll(context.Background(), p, 10)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(p.Start, Options{Paths: c.Paths})
	if got := strings.Count(dot, "peripheries=2"); got != len(c.Paths) {
		t.Errorf("goal nodes = %d, want %d", got, len(c.Paths))
	}
}

func TestGraphToDOT(t *testing.T) {
	g := statespace.New()
	for _, id := range []string{"home", "shop", "work"} {
		_ = g.AddState(statespace.State{ID: id})
	}
	_ = g.AddEdge(statespace.Edge{From: "home", To: "shop", Label: "walk", Cost: 3})
	_ = g.AddEdge(statespace.Edge{From: "shop", To: "work"})
	_ = g.AddEdge(statespace.Edge{From: "work", To: "work", Label: "stay"})

	dot := GraphToDOT(g, []string{"home", "shop", "work"})

	wantLines := []string{
		`"home" [label="home", fillcolor="#cde7ff", color="#1f6feb"];`,
		`"work" [label="work", fillcolor="#cde7ff", color="#1f6feb", peripheries=2];`,
		`"home" -> "shop" [label="walk (3)", color="#1f6feb", penwidth=2.5];`,
		`"shop" -> "work" [label="work", color="#1f6feb", penwidth=2.5];`,
		`"work" -> "work" [label="stay"];`,
	}
	for _, line := range wantLines {
		if !strings.Contains(dot, "  "+line+"\n") {
			t.Errorf("DOT missing line %s\n%s", line, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(tree.FilesTree(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("file7")) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
