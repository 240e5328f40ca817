package analysis

import "strings"

// systemSenderKeywords match platform-generated notices (joins, leaves,
// renames) by case-insensitive substring against the sender field only.
// A participant literally named "Left Turn" matches "left" and is filtered.
var systemSenderKeywords = []string{
	"added",
	"removed",
	"changed",
	"created",
	"pinned",
	"left",
	"deleted",
	"joined",
}

var systemSenderPhrases = []string{
	"~",
	"changed their phone number",
	"this group",
}

// IsSystemSender reports whether sender looks like a platform notice rather
// than a participant.
func IsSystemSender(sender string) bool {
	lower := strings.ToLower(sender)
	for _, kw := range systemSenderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, p := range systemSenderPhrases {
		if strings.Contains(sender, p) {
			return true
		}
	}
	return false
}

// FilterSystemMessages returns a fresh slice holding only participant
// messages, in input order. Applying it twice yields the same result.
func FilterSystemMessages(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if IsSystemSender(m.Sender) {
			continue
		}
		out = append(out, m)
	}
	return out
}
