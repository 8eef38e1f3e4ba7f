package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkSplitsAtLimit(t *testing.T) {
	text := strings.Repeat("a", 4001)
	chunks := Chunk(text, 4000)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0]) != 4000 || len(chunks[1]) != 1 {
		t.Errorf("chunk sizes = %d, %d", len(chunks[0]), len(chunks[1]))
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble the input")
	}
}

func TestChunkCountsRunes(t *testing.T) {
	text := strings.Repeat("ქ", 10)
	chunks := Chunk(text, 4)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for _, c := range chunks {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %q is not valid UTF-8", c)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble the input")
	}
}

func TestChunkShortAndEmpty(t *testing.T) {
	if got := Chunk("", 10); len(got) != 0 {
		t.Errorf("empty text gave %d chunks", len(got))
	}
	if got := Chunk("hello", 10); len(got) != 1 || got[0] != "hello" {
		t.Errorf("short text gave %q", got)
	}
	if got := Chunk(strings.Repeat("x", 10), 10); len(got) != 1 {
		t.Errorf("exact-size text gave %d chunks", len(got))
	}
}

func TestChunkLinesMode(t *testing.T) {
	text := "line one\nline two\nline three"
	chunks := ChunkMode(text, 12, ModeLines)
	want := []string{"line one\n", "line two\n", "line three"}
	if len(chunks) != len(want) {
		t.Fatalf("got %q, want %q", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}

	// No newline in the window: hard split.
	long := strings.Repeat("y", 25)
	chunks = ChunkMode(long, 10, ModeLines)
	if len(chunks) != 3 || strings.Join(chunks, "") != long {
		t.Errorf("hard split gave %q", chunks)
	}
}
