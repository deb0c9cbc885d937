package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

func node(t swapi.EntityType, id, name string) *swapi.Node {
	return &swapi.Node{Key: swapi.NodeKey{Type: t, ID: id}, Name: name}
}

func TestToDOT(t *testing.T) {
	center := node(swapi.Vehicles, "14", "Snowspeeder")
	neighbors := []*swapi.Node{
		node(swapi.People, "1", "Luke Skywalker"),
		node(swapi.Films, "2", "The Empire Strikes Back"),
		node(swapi.People, "1", "Luke Skywalker"),
	}

	dot := ToDOT(center, neighbors, Options{})

	for _, want := range []string{
		"digraph G {",
		`"vehicles/14" [label="Snowspeeder", fillcolor="#d9f99d", penwidth=3];`,
		`"people/1" [label="Luke Skywalker", fillcolor="#fde68a"];`,
		`"vehicles/14" -> "people/1";`,
		`"vehicles/14" -> "films/2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 2 {
		t.Errorf("got %d edges, want 2 (duplicates drawn once)", n)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTDetailedAndUnnamed(t *testing.T) {
	center := node(swapi.Planets, "20", "Stewjon")
	dot := ToDOT(center, []*swapi.Node{node("droids", "7", "")}, Options{Detailed: true})

	if !strings.Contains(dot, `label="Stewjon\nplanets/20"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `"droids/7" [label="droids/7"];`) {
		t.Errorf("unnamed node should fall back to its key without fill:\n%s", dot)
	}
}

func TestToDOTSelfReference(t *testing.T) {
	center := node(swapi.People, "1", "Luke Skywalker")
	dot := ToDOT(center, []*swapi.Node{center}, Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("self reference should not produce an edge:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
