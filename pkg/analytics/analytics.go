// Package analytics summarizes processed review datasets: level
// distributions and keyword frequencies.
package analytics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// NoValue is the distribution key for rows with a null level.
const NoValue = "(none)"

type Analytics struct{}

var wordRE = regexp.MustCompile(`[\p{L}\p{N}_']+`)

// commonWords are ignored in frequency analysis.
var commonWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all almost also although always am
		among an and another any anyone anything are aren't around as at
		be became because become been before being below between both but by
		can can't cannot could couldn't did didn't do does doesn't doing don't
		done down during each either else enough even ever every few for from
		further had hadn't has hasn't have haven't having he he'd he's her here
		hers herself him himself his how however i i'd i'll i'm i've if in into
		is isn't it it's its itself just last least less let's like made make
		many may maybe me might more most much must my myself neither never no
		nor not nothing now of off often on once one only or other our ours out
		over own per perhaps quite rather really same see seem seems she she's
		should since so some something still such than that that's the their
		them then there there's these they they're this those through thus to
		too under until up upon us very was wasn't we we're were weren't what
		when where whether which while who whose why will with within without
		won't would wouldn't yet you you're your yours yourself
		movie movies film films watch watched watching`) {
		commonWords[w] = struct{}{}
	}
}

// IsStopword checks if a word is ignored in keyword counts.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts lowercase word tokens in text, skipping stopwords
// and single characters.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range wordRE.FindAllString(strings.ToLower(text), -1) {
		word = strings.Trim(word, "'")
		if len([]rune(word)) < 2 {
			continue
		}
		if IsStopword(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

// Distribution counts the values of column across every row. Null cells
// are counted under NoValue.
func (a *Analytics) Distribution(d *dataset.Dataset, column string) map[string]int {
	counts := make(map[string]int)
	for _, v := range d.Column(column) {
		switch label := v.(type) {
		case nil:
			counts[NoValue]++
		case string:
			counts[label]++
		default:
			counts[fmt.Sprint(label)]++
		}
	}
	return counts
}
