package analysis

import (
	"regexp"
	"strings"
)

// RawEntry is one logical message as extracted from the transcript text,
// before any date/time validation.
type RawEntry struct {
	DateText string
	TimeText string
	Sender   string
	Body     string
}

// headerPattern recognizes the start of a logical message: a day-first date,
// a 24-hour time, and the " - " separator, anchored at the start of a line.
// Example: "14/3/23, 9:05 - ". The sender/body split happens after the scan
// because service notices carry no "sender: body" colon at all.
var headerPattern = regexp.MustCompile(`(?m)^(\d{1,2}/\d{1,2}/\d{2,4}), (\d{1,2}:\d{2}) - `)

// ScanTranscript splits a transcript blob into ordered raw entries.
//
// It locates every header match first and then slices each message body
// between consecutive header offsets, so a body may contain embedded newlines
// or header-looking text mid-line without confusing the scan. Text before the
// first header is dropped. A blob with no header matches yields nil, which is
// not an error; downstream views handle the empty sequence.
func ScanTranscript(text string) []RawEntry {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	locs := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	entries := make([]RawEntry, 0, len(locs))
	for i, loc := range locs {
		segEnd := len(text)
		if i+1 < len(locs) {
			segEnd = locs[i+1][0]
		}

		dateText := text[loc[2]:loc[3]]
		timeText := text[loc[4]:loc[5]]
		rest := strings.TrimSuffix(text[loc[1]:segEnd], "\n")

		sender, body := splitSenderBody(rest)
		if sender == "" {
			continue
		}

		entries = append(entries, RawEntry{
			DateText: dateText,
			TimeText: timeText,
			Sender:   sender,
			Body:     strings.TrimSpace(body),
		})
	}
	return entries
}

// splitSenderBody separates "Sender: body..." at the first ": " on the header
// line. Service notices ("Alice joined using this invite link") have no colon;
// the whole first line becomes the sender so the system-message filter can
// match against it, and any following lines become the body.
func splitSenderBody(rest string) (sender, body string) {
	firstLine := rest
	tail := ""
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine = rest[:nl]
		tail = rest[nl+1:]
	}

	if sep := strings.Index(firstLine, ": "); sep >= 0 {
		sender = firstLine[:sep]
		body = firstLine[sep+2:]
		if tail != "" {
			body += "\n" + tail
		}
		return sender, body
	}

	return strings.TrimSpace(firstLine), tail
}
