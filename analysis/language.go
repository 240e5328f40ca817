package analysis

import (
	"sort"

	"github.com/abadojack/whatlanggo"
)

// LanguageShare is one row of a per-language message breakdown.
type LanguageShare struct {
	Language string  `json:"language"`
	Messages int     `json:"messages"`
	Percent  float64 `json:"percent"`
}

// LanguageBreakdown detects the dominant language of each body in the
// selection and tallies messages per language. Empty bodies and
// sentinel-only messages (omitted media, edits) are skipped. Rows are
// ordered by descending count, then language name; percentages are of the
// detected messages and rounded to two decimals.
//
// Detection is heuristic and per-message. Short chat messages are noisy
// input for trigram detection, so this is a coarse view, not a per-message
// verdict.
func LanguageBreakdown(msgs []Message, selection string, sentinels []string) []LanguageShare {
	if sentinels == nil {
		sentinels = DefaultMediaSentinels()
	}
	skip := make(map[string]struct{}, len(sentinels))
	for _, s := range sentinels {
		skip[s] = struct{}{}
	}

	counts := make(map[string]int)
	total := 0
	for _, m := range selectMessages(msgs, selection) {
		if m.Body == "" {
			continue
		}
		if _, ok := skip[m.Body]; ok {
			continue
		}
		info := whatlanggo.Detect(m.Body)
		counts[info.Lang.String()]++
		total++
	}
	if total == 0 {
		return nil
	}

	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})

	rows := make([]LanguageShare, 0, len(langs))
	for _, l := range langs {
		rows = append(rows, LanguageShare{
			Language: l,
			Messages: counts[l],
			Percent:  round2(float64(counts[l]) / float64(total) * 100),
		})
	}
	return rows
}
