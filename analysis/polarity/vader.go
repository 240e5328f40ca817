// Package polarity provides sentiment polarity scorers: a local VADER
// lexicon scorer and a remote OpenAI-backed one. Both return a scalar in
// [-1, 1] and satisfy the analysis.Scorer interface.
package polarity

import (
	"context"
	"sync"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text with the VADER lexicon, entirely offline. The
// compound score is already normalized to [-1, 1].
type VaderScorer struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds a scorer with the default VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text. It never fails; an empty text
// scores 0. govader does not document concurrent use, so calls are
// serialized.
func (s *VaderScorer) Score(_ context.Context, text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.PolarityScores(text).Compound, nil
}
