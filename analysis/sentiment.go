package analysis

import (
	"context"
	"fmt"
	"sync"
)

// Scorer produces a polarity score in [-1, 1] for a piece of text. It is
// assumed pure and stateless: the text alone determines the score.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Classification thresholds form a symmetric open dead-zone: a mean of
// exactly 0.02 or -0.02 is still Neutral.
const (
	positiveThreshold = 0.02
	negativeThreshold = -0.02
)

// SentimentLabel is the three-way classification of a mean polarity score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// ClassifySentiment maps a mean score to its label.
func ClassifySentiment(mean float64) SentimentLabel {
	switch {
	case mean > positiveThreshold:
		return SentimentPositive
	case mean < negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// SentimentRow is the mean score and label for one grouping key (a sender or
// a month name).
type SentimentRow struct {
	Key      string         `json:"key"`
	Score    float64        `json:"score"`
	Label    SentimentLabel `json:"label"`
	Messages int            `json:"messages"`
}

// SentimentView is a fresh derived projection over one selection. When the
// selection is empty, HasData is false and Average/Label report 0/Neutral
// instead of an undefined mean.
type SentimentView struct {
	HasData bool           `json:"has_data"`
	Average float64        `json:"average"`
	Label   SentimentLabel `json:"label"`
	ByUser  []SentimentRow `json:"by_user"`
	ByMonth []SentimentRow `json:"by_month"`
}

// SentimentOptions controls how BuildSentimentViewWithOptions scores the
// selection.
type SentimentOptions struct {
	// Concurrency is the maximum number of in-flight Score calls. Values
	// below 2 mean sequential scoring. Useful when the scorer is remote.
	Concurrency int
}

// BuildSentimentView scores every message in the selection exactly once and
// derives the average, per-user, and per-month-name projections from that
// single pass. Group rows appear in first-seen order. The underlying message
// slice is never mutated.
func BuildSentimentView(ctx context.Context, msgs []Message, selection string, scorer Scorer) (SentimentView, error) {
	return BuildSentimentViewWithOptions(ctx, msgs, selection, scorer, SentimentOptions{})
}

// BuildSentimentViewWithOptions is BuildSentimentView with an explicit
// scoring concurrency bound.
func BuildSentimentViewWithOptions(ctx context.Context, msgs []Message, selection string, scorer Scorer, opts SentimentOptions) (SentimentView, error) {
	if scorer == nil {
		return SentimentView{}, fmt.Errorf("BuildSentimentView: scorer is nil")
	}

	sel := selectMessages(msgs, selection)
	if len(sel) == 0 {
		return SentimentView{Label: SentimentNeutral}, nil
	}

	scores, err := scoreAll(ctx, sel, scorer, opts.Concurrency)
	if err != nil {
		return SentimentView{}, err
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	mean := total / float64(len(scores))

	return SentimentView{
		HasData: true,
		Average: mean,
		Label:   ClassifySentiment(mean),
		ByUser:  groupMeans(sel, scores, func(m Message) string { return m.Sender }),
		ByMonth: groupMeans(sel, scores, func(m Message) string { return m.MonthName }),
	}, nil
}

func scoreAll(ctx context.Context, msgs []Message, scorer Scorer, concurrency int) ([]float64, error) {
	scores := make([]float64, len(msgs))

	if concurrency < 2 {
		for i, m := range msgs {
			s, err := scorer.Score(ctx, m.Body)
			if err != nil {
				return nil, fmt.Errorf("BuildSentimentView: score message from %s: %w", m.Sender, err)
			}
			scores[i] = s
		}
		return scores, nil
	}

	sem := make(chan struct{}, concurrency)
	errCh := make(chan error, len(msgs))
	var wg sync.WaitGroup
	for i := range msgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			s, err := scorer.Score(ctx, msgs[i].Body)
			if err != nil {
				errCh <- fmt.Errorf("BuildSentimentView: score message from %s: %w", msgs[i].Sender, err)
				return
			}
			scores[i] = s
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

func groupMeans(msgs []Message, scores []float64, key func(Message) string) []SentimentRow {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for i, m := range msgs {
		k := key(m)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		sums[k] += scores[i]
		counts[k]++
	}

	rows := make([]SentimentRow, 0, len(order))
	for _, k := range order {
		mean := sums[k] / float64(counts[k])
		rows = append(rows, SentimentRow{
			Key:      k,
			Score:    mean,
			Label:    ClassifySentiment(mean),
			Messages: counts[k],
		})
	}
	return rows
}
