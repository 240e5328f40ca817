package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

// stopwordsDefault is a bilingual (Hinglish + English) stopword list, one
// word per line, used when no custom list is supplied.
//
//go:embed stopwords_default.txt
var stopwordsDefault string

// topWordsLimit caps the ranked word table.
const topWordsLimit = 20

// FrequencyConfig configures a FrequencyAnalyzer. Both fields are plain
// configuration inputs so the analyzer stays reusable across locales.
type FrequencyConfig struct {
	// Stopwords are dropped from every tokenized body (compared lowercase).
	// If nil, the embedded default bilingual list is used.
	Stopwords []string

	// MediaSentinels are whole-message markers for omitted or edited
	// content ("<Media omitted>" and friends); messages equal to one of
	// them are skipped entirely. If nil, DefaultMediaSentinels() is used.
	MediaSentinels []string
}

// DefaultStopwords returns the embedded bilingual stopword list.
func DefaultStopwords() []string {
	return splitWordList(stopwordsDefault)
}

// DefaultMediaSentinels returns the whole-message markers recognized in
// WhatsApp exports for omitted media and edited messages.
func DefaultMediaSentinels() []string {
	return []string{
		"<Media omitted>",
		"<media omitted>",
		"<omitted media>",
		"<this edited>",
	}
}

// LoadStopwords reads a newline-delimited stopword file.
func LoadStopwords(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadStopwords: read file: %w", err)
	}
	words := splitWordList(string(b))
	if len(words) == 0 {
		return nil, fmt.Errorf("LoadStopwords: %s contains no words", path)
	}
	return words, nil
}

func splitWordList(s string) []string {
	var words []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(line)
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// WordFrequency is one row of a ranked word table.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FrequencyAnalyzer performs stopword-filtered tokenization over message
// bodies. Construct it with NewFrequencyAnalyzer; the zero value is not
// usable.
type FrequencyAnalyzer struct {
	stopwords map[string]struct{}
	sentinels map[string]struct{}
}

// NewFrequencyAnalyzer builds an analyzer, filling defaults for any nil
// config field.
func NewFrequencyAnalyzer(cfg FrequencyConfig) *FrequencyAnalyzer {
	stop := cfg.Stopwords
	if stop == nil {
		stop = DefaultStopwords()
	}
	sent := cfg.MediaSentinels
	if sent == nil {
		sent = DefaultMediaSentinels()
	}

	a := &FrequencyAnalyzer{
		stopwords: make(map[string]struct{}, len(stop)),
		sentinels: make(map[string]struct{}, len(sent)),
	}
	for _, w := range stop {
		a.stopwords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	for _, s := range sent {
		a.sentinels[s] = struct{}{}
	}
	return a
}

// TopWords lower-cases each body in the selection, splits on whitespace,
// drops stopwords and sentinel-only messages, and returns the 20 most
// frequent remaining tokens. Ties rank in first-encountered order.
func (a *FrequencyAnalyzer) TopWords(msgs []Message, selection string) []WordFrequency {
	counts := make(map[string]int)
	var order []string
	a.eachToken(msgs, selection, func(tok string) {
		if _, ok := counts[tok]; !ok {
			order = append(order, tok)
		}
		counts[tok]++
	})

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	n := len(order)
	if n > topWordsLimit {
		n = topWordsLimit
	}
	rows := make([]WordFrequency, 0, n)
	for _, w := range order[:n] {
		rows = append(rows, WordFrequency{Word: w, Count: counts[w]})
	}
	return rows
}

// CleanedCorpus returns the selection's surviving tokens joined by single
// spaces: the input expected by an external word-cloud renderer.
func (a *FrequencyAnalyzer) CleanedCorpus(msgs []Message, selection string) string {
	var b strings.Builder
	a.eachToken(msgs, selection, func(tok string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	})
	return b.String()
}

func (a *FrequencyAnalyzer) eachToken(msgs []Message, selection string, fn func(string)) {
	for _, m := range selectMessages(msgs, selection) {
		if _, ok := a.sentinels[m.Body]; ok {
			continue
		}
		for _, tok := range strings.Fields(strings.ToLower(m.Body)) {
			if _, ok := a.stopwords[tok]; ok {
				continue
			}
			fn(tok)
		}
	}
}
