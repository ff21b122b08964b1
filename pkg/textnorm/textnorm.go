// Package textnorm removes layout noise from review text.
//
// Two variants exist. CN-site text is not whitespace-tokenized, so all
// whitespace is stripped. Text from other sites keeps single spaces as word
// separators. Both collapse runs of one repeated punctuation character.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// cnPunctuation lists the characters whose repeated runs CleanCNNoise collapses.
const cnPunctuation = "。，！？#＄¥％＆＊＋－／：；（）＜＝＞＠［＼］＾＿｀｛｜｝～｟｠｢｣､、〃》「」『』【】〔〕〖〗〘〙〚〛〜〝〞〟–—‘’‛“”„‟…‧﹏."

// enPunctuation lists the characters whose repeated runs CleanENNoise collapses.
const enPunctuation = "!?#$%&'()*+,-./:;<=>@[]^_`{|}~\""

var (
	cnPunct = runeSet(cnPunctuation)
	enPunct = runeSet(enPunctuation)

	// Go's \s is ASCII only; reviews carry ideographic and no-break spaces too.
	whitespaceRE = regexp.MustCompile(`[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]+`)
)

// CleanCNNoise drops newlines, strips every whitespace character and
// collapses runs of the same CN punctuation mark to one.
func CleanCNNoise(text string) string {
	text = strings.ReplaceAll(text, "\n", "")
	text = whitespaceRE.ReplaceAllString(text, "")
	return collapseRuns(text, cnPunct)
}

// CleanENNoise turns newlines into spaces, squeezes whitespace runs to a
// single space and collapses runs of the same ASCII punctuation mark to one.
func CleanENNoise(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return collapseRuns(text, enPunct)
}

// collapseRuns keeps the first rune of every maximal run of an identical
// rune from set. Alternating marks such as "!?!?" are left alone.
func collapseRuns(text string, set map[rune]struct{}) string {
	var b strings.Builder
	b.Grow(len(text))

	prev := utf8.RuneError
	for _, r := range text {
		if r == prev {
			if _, ok := set[r]; ok {
				continue
			}
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func runeSet(chars string) map[rune]struct{} {
	set := make(map[rune]struct{}, utf8.RuneCountInString(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}
