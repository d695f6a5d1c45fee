package similarity

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "   ", want: ""},
		{input: "Python Developer", want: "python developer"},
		{input: " Go\t\tand\nKubernetes  ", want: "go and kubernetes"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "punctuation", input: "Hello, World!", want: []string{"hello", "world"}},
		{name: "stop words", input: "state-of-the-art", want: []string{"state", "art"}},
		{name: "numbers", input: "Go 1.22 and k8s", want: []string{"go", "1", "22", "k8s"}},
		{name: "unicode letters", input: "Разработчик Go", want: []string{"разработчик", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Tokenize(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNGrams(t *testing.T) {
	t.Parallel()

	tokens := []string{"senior", "go", "developer"}

	if got := NGrams(tokens, 1); !reflect.DeepEqual(got, tokens) {
		t.Fatalf("unexpected unigrams: %v", got)
	}

	want := []string{"senior go", "go developer"}
	if got := NGrams(tokens, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected bigrams: %v", got)
	}

	if got := NGrams(tokens, 4); len(got) != 0 {
		t.Fatalf("expected no 4-grams, got %v", got)
	}

	if got := NGrams(tokens, 0); len(got) != 0 {
		t.Fatalf("expected no grams for n=0, got %v", got)
	}
}

func TestAnalyzePhrasesOnWordBoundaries(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "no phrase inside other words", input: "good morning", want: []string{}},
		{name: "single words", input: "Go and Kubernetes", want: []string{"go", "kubernetes"}},
		{name: "symbols", input: "senior C# engineer", want: []string{"c#"}},
		{name: "multi word across whitespace", input: "Machine\n  Learning engineer", want: []string{"machine learning"}},
		{name: "non-ascii separators", input: "—python«", want: []string{"python"}},
		{name: "non-ascii letters are not boundaries", input: "épython", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := analyzer.Analyze(tt.input)
			if !reflect.DeepEqual(doc.Phrases, tt.want) {
				t.Fatalf("phrases for %q = %v, want %v", tt.input, doc.Phrases, tt.want)
			}
		})
	}
}

func TestAnalyzeWithCustomPhrases(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(WithPhrases([]string{"  Event  Sourcing ", "event sourcing", ""}))
	doc := analyzer.Analyze("We use event sourcing and Go")

	if !reflect.DeepEqual(doc.Phrases, []string{"event sourcing"}) {
		t.Fatalf("unexpected phrases: %v", doc.Phrases)
	}

	empty := NewAnalyzer(WithPhrases(nil)).Analyze("python and go")
	if len(empty.Phrases) != 0 {
		t.Fatalf("expected phrase detection to be disabled, got %v", empty.Phrases)
	}
}

func TestAnalyzeWithStemming(t *testing.T) {
	t.Parallel()

	doc := NewAnalyzer(WithStemming(true), WithPhrases(nil)).Analyze("Running tests in Go")
	want := []string{"run", "test", "go"}
	if !reflect.DeepEqual(doc.Tokens, want) {
		t.Fatalf("unexpected stemmed tokens: %v, want %v", doc.Tokens, want)
	}

	plain := NewAnalyzer(WithPhrases(nil)).Analyze("Running tests in Go")
	if !reflect.DeepEqual(plain.Tokens, []string{"running", "tests", "go"}) {
		t.Fatalf("unexpected tokens without stemming: %v", plain.Tokens)
	}
}

func TestDocumentTerms(t *testing.T) {
	t.Parallel()

	doc := NewAnalyzer().Analyze("Python developer")
	want := []string{"python developer", "python"}
	if got := doc.Terms(2); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected bigram terms: %v, want %v", got, want)
	}
}
