package analysis

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"mvdan.cc/xurls/v2"
)

// MediaOmittedMarker is the literal substring WhatsApp substitutes for
// attachments in text exports.
const MediaOmittedMarker = "<Media omitted>"

// urlPattern uses the relaxed matcher so bare domains count, matching how
// chats actually contain links.
var urlPattern = xurls.Relaxed()

// Totals are the scalar statistics for one selection.
type Totals struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// CollectTotals computes message, whitespace-token word, media, and link
// counts over the selection. A message containing two URLs contributes two
// to Links.
func CollectTotals(msgs []Message, selection string) Totals {
	sel := selectMessages(msgs, selection)

	var t Totals
	t.Messages = len(sel)
	for _, m := range sel {
		// A media placeholder is not prose; it counts as media, not words.
		if strings.Contains(m.Body, MediaOmittedMarker) {
			t.Media++
			continue
		}
		t.Words += len(strings.Fields(m.Body))
		t.Links += len(urlPattern.FindAllString(m.Body, -1))
	}
	return t
}

// UserCount is one row of a per-sender message tally.
type UserCount struct {
	Sender   string `json:"sender"`
	Messages int    `json:"messages"`
}

// UserShare is one row of the percentage-of-total table.
type UserShare struct {
	Sender  string  `json:"sender"`
	Percent float64 `json:"percent"`
}

// BusyUsers holds the top senders by message count plus the full share table.
type BusyUsers struct {
	Top    []UserCount `json:"top"`
	Shares []UserShare `json:"shares"`
}

// MostBusyUsers ranks senders by message count: the top five, and every
// sender's percentage of the total rounded to two decimals. Rows are ordered
// by descending count, then sender name among exact ties. The percentages
// sum to ~100 modulo rounding.
func MostBusyUsers(msgs []Message) BusyUsers {
	counts := make(map[string]int)
	var order []string
	for _, m := range msgs {
		if _, ok := counts[m.Sender]; !ok {
			order = append(order, m.Sender)
		}
		counts[m.Sender]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	var bu BusyUsers
	total := len(msgs)
	for i, sender := range order {
		if i < 5 {
			bu.Top = append(bu.Top, UserCount{Sender: sender, Messages: counts[sender]})
		}
		pct := float64(counts[sender]) / float64(total) * 100
		bu.Shares = append(bu.Shares, UserShare{Sender: sender, Percent: round2(pct)})
	}
	return bu
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TimelineRow is one time bucket and its message count. Rows appear in
// first-seen order of the bucket key, which is chronological for well-formed
// exports.
type TimelineRow struct {
	Label    string `json:"label"`
	Messages int    `json:"messages"`
}

// MonthlyTimeline counts messages per (year, month) bucket, labeled
// "MonthName-Year" (e.g. "January-2023").
func MonthlyTimeline(msgs []Message, selection string) []TimelineRow {
	return bucketCounts(selectMessages(msgs, selection), func(m Message) string {
		return m.MonthName + "-" + strconv.Itoa(m.Year)
	})
}

// DailyTimeline counts messages per calendar date.
func DailyTimeline(msgs []Message, selection string) []TimelineRow {
	return bucketCounts(selectMessages(msgs, selection), func(m Message) string {
		return m.Timestamp.Format("2006-01-02")
	})
}

// WeekdayTimeline counts messages per weekday name.
func WeekdayTimeline(msgs []Message, selection string) []TimelineRow {
	return bucketCounts(selectMessages(msgs, selection), func(m Message) string {
		return m.WeekdayName
	})
}

// MonthTimeline counts messages per month name across all years.
func MonthTimeline(msgs []Message, selection string) []TimelineRow {
	return bucketCounts(selectMessages(msgs, selection), func(m Message) string {
		return m.MonthName
	})
}

func bucketCounts(msgs []Message, key func(Message) string) []TimelineRow {
	counts := make(map[string]int)
	var order []string
	for _, m := range msgs {
		k := key(m)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]TimelineRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, TimelineRow{Label: k, Messages: counts[k]})
	}
	return rows
}
