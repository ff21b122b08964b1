package textnorm

import (
	"strings"
	"testing"
	"unicode"
)

func TestCleanCNNoise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "newlines removed", input: "好看\n\n真好看", want: "好看真好看"},
		{name: "spaces stripped", input: "剧情 很 \t 好", want: "剧情很好"},
		{name: "ideographic space stripped", input: "剧情　很好", want: "剧情很好"},
		{name: "repeated full stop", input: "结束了。。。", want: "结束了。"},
		{name: "repeated exclamation", input: "太棒了！！！！", want: "太棒了！"},
		{name: "ellipsis run", input: "嗯……", want: "嗯…"},
		{name: "ascii period run", input: "好...", want: "好."},
		{name: "runs joined after whitespace removal", input: "好！ ！", want: "好！"},
		{name: "different marks untouched", input: "真的？！？！", want: "真的？！？！"},
		{name: "ascii exclamation not in set", input: "好!!", want: "好!!"},
		{name: "non punctuation repeats kept", input: "哈哈哈", want: "哈哈哈"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCNNoise(tt.input); got != tt.want {
				t.Errorf("CleanCNNoise(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanENNoise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "newline becomes space", input: "good\nmovie", want: "good movie"},
		{name: "whitespace squeezed", input: "good \t\n  movie", want: "good movie"},
		{name: "edges kept as single space", input: "  good  ", want: " good "},
		{name: "identical runs collapse", input: "!!??", want: "!?"},
		{name: "alternating untouched", input: "!?!?", want: "!?!?"},
		{name: "ellipsis", input: "well...", want: "well."},
		{name: "quotes", input: `""quoted''`, want: `"quoted'`},
		{name: "brackets", input: "((a))[[b]]", want: "(a)[b]"},
		{name: "backslash not collapsed", input: `a\\b`, want: `a\\b`},
		{name: "letters kept", input: "sooo goood", want: "sooo goood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanENNoise(tt.input); got != tt.want {
				t.Errorf("CleanENNoise(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

var noisySamples = []string{
	"",
	"plain",
	"Great movie!!! \n\n Loved it...   10/10",
	"剧情 很好！！！\n演员。。。 也不错",
	"mixed 中文 and English ?? ？？",
	"\t\t\n  　",
	"!?!?..,,;;",
	"a - - b -- c",
}

func TestCleanCNNoiseStripsAllWhitespace(t *testing.T) {
	for _, s := range noisySamples {
		got := CleanCNNoise(s)
		if strings.IndexFunc(got, unicode.IsSpace) >= 0 {
			t.Errorf("CleanCNNoise(%q) = %q contains whitespace", s, got)
		}
	}
}

func TestCleanersAreIdempotent(t *testing.T) {
	cleaners := map[string]func(string) string{
		"cn": CleanCNNoise,
		"en": CleanENNoise,
	}
	for name, clean := range cleaners {
		for _, s := range noisySamples {
			once := clean(s)
			if twice := clean(once); twice != once {
				t.Errorf("%s: clean(clean(%q)) = %q, want %q", name, s, twice, once)
			}
		}
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "no markup here", want: "no markup here"},
		{name: "tags removed", input: "<p>Great <b>film</b></p>", want: "Great film"},
		{name: "br becomes newline", input: "line one<br>line two", want: "line one\nline two"},
		{name: "entities decoded", input: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{name: "scripts dropped", input: "ok<script>alert(1)</script>", want: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripMarkup(tt.input)
			if err != nil {
				t.Fatalf("StripMarkup() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
