package analysis

import (
	"sort"
	"time"
)

// Overall is the selection sentinel meaning "no sender restriction".
const Overall = "Overall"

// Message is the canonical, normalized unit of the pipeline. The calendar
// fields are derived from Timestamp exactly once at normalization time and
// never mutated afterward.
type Message struct {
	Timestamp time.Time
	Sender    string
	Body      string

	Year        int
	MonthNumber int
	MonthName   string
	Day         int
	WeekdayName string
	Hour        int
	Minute      int
}

// Date layouts are day-first. Two-digit years follow the Go stdlib pivot:
// 69-99 parse as 1969-1999 and 00-68 as 2000-2068.
const (
	dateLayoutLong  = "2/1/2006"
	dateLayoutShort = "2/1/06"
	timeLayout      = "15:04"
)

// NormalizeEntries converts raw entries into Messages, dropping any entry
// whose date or time fails to parse. The batch continues past individual
// failures; input order is preserved.
func NormalizeEntries(entries []RawEntry) []Message {
	msgs := make([]Message, 0, len(entries))
	for _, e := range entries {
		m, ok := normalizeEntry(e)
		if !ok {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func normalizeEntry(e RawEntry) (Message, bool) {
	day, err := time.Parse(dateLayoutLong, e.DateText)
	if err != nil {
		day, err = time.Parse(dateLayoutShort, e.DateText)
		if err != nil {
			return Message{}, false
		}
	}

	// Strict H:MM / HH:MM, 24-hour. AM/PM markers (or any trailing text)
	// never make it through headerPattern, and would fail here regardless.
	tod, err := time.Parse(timeLayout, e.TimeText)
	if err != nil {
		return Message{}, false
	}

	ts := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
	return Message{
		Timestamp:   ts,
		Sender:      e.Sender,
		Body:        e.Body,
		Year:        ts.Year(),
		MonthNumber: int(ts.Month()),
		MonthName:   ts.Month().String(),
		Day:         ts.Day(),
		WeekdayName: ts.Weekday().String(),
		Hour:        ts.Hour(),
		Minute:      ts.Minute(),
	}, true
}

// Senders returns the sorted unique sender names in msgs, for populating a
// participant selector in a presentation layer.
func Senders(msgs []Message) []string {
	seen := make(map[string]struct{}, len(msgs))
	var out []string
	for _, m := range msgs {
		if _, ok := seen[m.Sender]; ok {
			continue
		}
		seen[m.Sender] = struct{}{}
		out = append(out, m.Sender)
	}
	sort.Strings(out)
	return out
}

// selectMessages applies the Overall/sender restriction shared by every view.
func selectMessages(msgs []Message, selection string) []Message {
	if selection == Overall || selection == "" {
		return msgs
	}
	var out []Message
	for _, m := range msgs {
		if m.Sender == selection {
			out = append(out, m)
		}
	}
	return out
}
