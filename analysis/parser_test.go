package analysis

import (
	"strings"
	"testing"
)

func TestScanTranscript_BasicMessages(t *testing.T) {
	t.Parallel()

	text := "1/1/23, 10:00 - Alice: hello world\n" +
		"1/1/23, 10:05 - Bob: <Media omitted>\n"

	entries := ScanTranscript(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}
	if entries[0].DateText != "1/1/23" || entries[0].TimeText != "10:00" {
		t.Fatalf("entry0 date=%q time=%q", entries[0].DateText, entries[0].TimeText)
	}
	if entries[0].Sender != "Alice" || entries[0].Body != "hello world" {
		t.Fatalf("entry0 sender=%q body=%q", entries[0].Sender, entries[0].Body)
	}
	if entries[1].Sender != "Bob" || entries[1].Body != "<Media omitted>" {
		t.Fatalf("entry1 sender=%q body=%q", entries[1].Sender, entries[1].Body)
	}
}

func TestScanTranscript_MultilineBody(t *testing.T) {
	t.Parallel()

	text := "1/1/23, 10:00 - Alice: first line\nsecond line\nthird line\n" +
		"1/1/23, 10:05 - Bob: ok\n"

	entries := ScanTranscript(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}
	want := "first line\nsecond line\nthird line"
	if entries[0].Body != want {
		t.Fatalf("body=%q, want %q", entries[0].Body, want)
	}
}

func TestScanTranscript_HeaderLookingTextMidLine(t *testing.T) {
	t.Parallel()

	// A header-shaped fragment that is not at a line start belongs to the
	// body of the current message.
	text := "1/1/23, 10:00 - Alice: see 2/2/23, 11:00 - Carol: quoted\n" +
		"1/1/23, 10:05 - Bob: ok\n"

	entries := ScanTranscript(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}
	if !strings.Contains(entries[0].Body, "2/2/23, 11:00 - Carol: quoted") {
		t.Fatalf("body=%q lost the embedded fragment", entries[0].Body)
	}
}

func TestScanTranscript_ServiceNoticeWithoutColon(t *testing.T) {
	t.Parallel()

	text := "1/1/23, 09:00 - Alice joined using this invite link\n" +
		"1/1/23, 10:00 - Alice: hello\n"

	entries := ScanTranscript(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}
	if entries[0].Sender != "Alice joined using this invite link" {
		t.Fatalf("sender=%q", entries[0].Sender)
	}
	if entries[0].Body != "" {
		t.Fatalf("body=%q, want empty", entries[0].Body)
	}
}

func TestScanTranscript_PreambleDropped(t *testing.T) {
	t.Parallel()

	text := "Messages to this chat are secured.\nsome export junk\n" +
		"1/1/23, 10:00 - Alice: hello\n"

	entries := ScanTranscript(text)
	if len(entries) != 1 {
		t.Fatalf("len(entries)=%d, want 1", len(entries))
	}
	if entries[0].Sender != "Alice" {
		t.Fatalf("sender=%q", entries[0].Sender)
	}
}

func TestScanTranscript_NoHeaders(t *testing.T) {
	t.Parallel()

	if entries := ScanTranscript("no headers anywhere\njust text\n"); entries != nil {
		t.Fatalf("entries=%v, want nil", entries)
	}
	if entries := ScanTranscript(""); entries != nil {
		t.Fatalf("entries=%v, want nil", entries)
	}
}

func TestScanTranscript_CRLF(t *testing.T) {
	t.Parallel()

	text := "1/1/23, 10:00 - Alice: hello\r\n1/1/23, 10:05 - Bob: hi\r\n"
	entries := ScanTranscript(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries)=%d, want 2", len(entries))
	}
	if entries[0].Body != "hello" {
		t.Fatalf("body=%q", entries[0].Body)
	}
}

func TestScanTranscript_FourDigitYear(t *testing.T) {
	t.Parallel()

	entries := ScanTranscript("14/12/2023, 23:59 - Alice: late\n")
	if len(entries) != 1 {
		t.Fatalf("len(entries)=%d, want 1", len(entries))
	}
	if entries[0].DateText != "14/12/2023" || entries[0].TimeText != "23:59" {
		t.Fatalf("date=%q time=%q", entries[0].DateText, entries[0].TimeText)
	}
}

func TestScanTranscript_AMPMHeaderNotRecognized(t *testing.T) {
	t.Parallel()

	// 12-hour exports use a different header shape and are out of contract.
	entries := ScanTranscript("1/1/23, 9:00 AM - Alice: hello\n")
	if len(entries) != 0 {
		t.Fatalf("len(entries)=%d, want 0", len(entries))
	}
}
