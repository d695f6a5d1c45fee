package similarity

import (
	"math"
	"testing"
)

func TestParseMeasures(t *testing.T) {
	t.Parallel()

	measures, err := ParseMeasures([]string{" Jaccard ", "jaccard-2", "cosine-1", "COSINE-2", "fuzzy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"jaccard", "jaccard-2", "cosine-1", "cosine-2", "fuzzy"}
	for i, m := range measures {
		if m.Name() != want[i] {
			t.Fatalf("measure %d: expected %s, got %s", i, want[i], m.Name())
		}
	}

	if _, err := ParseMeasures([]string{"bm25"}); err == nil {
		t.Fatalf("expected error for unknown measure")
	}

	if _, err := ParseMeasures(nil); err == nil {
		t.Fatalf("expected error for empty measure list")
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(WithPhrases(nil))
	a := analyzer.Analyze("go kubernetes docker")
	b := analyzer.Analyze("go docker terraform ansible")

	// shared {go, docker}, union {go, kubernetes, docker, terraform, ansible}
	if got := (Jaccard{N: 1}).Compare(a, b); math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("expected 0.4, got %v", got)
	}

	if got := (Jaccard{N: 2}).Compare(a, b); got != 0 {
		t.Fatalf("expected no shared bigrams, got %v", got)
	}
}

func TestCosine(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(WithPhrases(nil))

	same := analyzer.Analyze("go go kubernetes")
	if got := (Cosine{N: 1}).Compare(same, same); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected 1 for identical documents, got %v", got)
	}

	disjoint := analyzer.Analyze("python django")
	if got := (Cosine{N: 1}).Compare(same, disjoint); got != 0 {
		t.Fatalf("expected 0 for disjoint documents, got %v", got)
	}

	partial := analyzer.Analyze("go python")
	got := (Cosine{N: 1}).Compare(same, partial)
	if got <= 0 || got >= 1 {
		t.Fatalf("expected partial overlap strictly between 0 and 1, got %v", got)
	}
}

func TestFuzzyToleratesInflections(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(WithPhrases(nil))
	a := analyzer.Analyze("kubernetes developer")
	b := analyzer.Analyze("kubernetes developers")

	fuzzy := Fuzzy{Threshold: DefaultFuzzyThreshold}
	if got := fuzzy.Compare(a, b); got != 1 {
		t.Fatalf("expected every token to find a close match, got %v", got)
	}

	if exact := (Jaccard{N: 1}).Compare(a, b); exact >= 1 {
		t.Fatalf("expected exact overlap to be lower than fuzzy, got %v", exact)
	}

	c := analyzer.Analyze("accountant")
	if got := fuzzy.Compare(a, c); got != 0 {
		t.Fatalf("expected unrelated tokens not to match, got %v", got)
	}
}

func TestMeasuresHandleEmptyDocuments(t *testing.T) {
	t.Parallel()

	empty := &Document{}
	doc := NewAnalyzer().Analyze("golang developer")

	for _, m := range []Measure{Jaccard{N: 1}, Cosine{N: 1}, Cosine{N: 2}, Fuzzy{Threshold: DefaultFuzzyThreshold}} {
		if got := m.Compare(empty, doc); got != 0 {
			t.Fatalf("%s: expected 0 for empty document, got %v", m.Name(), got)
		}
	}
}
