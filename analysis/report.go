package analysis

import (
	"context"
	"fmt"
)

// PrepareTranscript runs the front half of the pipeline: scan the blob into
// raw entries, normalize them into Messages, and drop system notices. The
// result is the immutable record set every view derives from.
func PrepareTranscript(text string) []Message {
	return FilterSystemMessages(NormalizeEntries(ScanTranscript(text)))
}

// ReportOptions controls the derived views of BuildReport.
type ReportOptions struct {
	// Frequency configures stopwords and media sentinels for the word
	// table and corpus. Zero value means all defaults.
	Frequency FrequencyConfig

	// ScoreConcurrency bounds in-flight Score calls; below 2 means
	// sequential.
	ScoreConcurrency int

	// SkipLanguages disables the per-language breakdown.
	SkipLanguages bool
}

// Report is every derived view for one selection, ready for a presentation
// layer to render. All slices are snapshots; nothing points back into the
// underlying message set.
type Report struct {
	Selection string   `json:"selection"`
	Senders   []string `json:"senders"`

	Totals    Totals     `json:"totals"`
	BusyUsers *BusyUsers `json:"busy_users,omitempty"`

	MonthlyTimeline []TimelineRow `json:"monthly_timeline"`
	DailyTimeline   []TimelineRow `json:"daily_timeline"`
	WeekdayTimeline []TimelineRow `json:"weekday_timeline"`
	MonthTimeline   []TimelineRow `json:"month_timeline"`

	TopWords  []WordFrequency `json:"top_words"`
	Sentiment SentimentView   `json:"sentiment"`
	Languages []LanguageShare `json:"languages,omitempty"`
}

// BuildReport computes every view over the filtered message set for one
// selection ("Overall" or a sender name). The busy-users table is only
// meaningful without a sender restriction and is omitted otherwise. An empty
// message set produces a zero-valued report, not an error.
func BuildReport(ctx context.Context, msgs []Message, selection string, scorer Scorer, opts ReportOptions) (Report, error) {
	if selection == "" {
		selection = Overall
	}

	freq := NewFrequencyAnalyzer(opts.Frequency)

	sentiment, err := BuildSentimentViewWithOptions(ctx, msgs, selection, scorer, SentimentOptions{Concurrency: opts.ScoreConcurrency})
	if err != nil {
		return Report{}, fmt.Errorf("BuildReport: %w", err)
	}

	r := Report{
		Selection:       selection,
		Senders:         Senders(msgs),
		Totals:          CollectTotals(msgs, selection),
		MonthlyTimeline: MonthlyTimeline(msgs, selection),
		DailyTimeline:   DailyTimeline(msgs, selection),
		WeekdayTimeline: WeekdayTimeline(msgs, selection),
		MonthTimeline:   MonthTimeline(msgs, selection),
		TopWords:        freq.TopWords(msgs, selection),
		Sentiment:       sentiment,
	}

	if selection == Overall {
		bu := MostBusyUsers(msgs)
		r.BusyUsers = &bu
	}
	if !opts.SkipLanguages {
		r.Languages = LanguageBreakdown(msgs, selection, opts.Frequency.MediaSentinels)
	}
	return r, nil
}
