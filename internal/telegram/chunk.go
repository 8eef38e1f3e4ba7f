package telegram

// DefaultChunkSize stays under Telegram's 4096 character message limit.
const DefaultChunkSize = 4000

const (
	ModeChars = "chars"
	ModeLines = "lines"
)

// Chunk splits text into pieces of at most limit characters (runes).
// Concatenating the chunks in order reproduces text exactly.
func Chunk(text string, limit int) []string {
	return ChunkMode(text, limit, ModeChars)
}

// ChunkMode is Chunk with a choice of cut point. In ModeLines a chunk ends
// after the last newline inside the window, or at the limit if there is none.
func ChunkMode(text string, limit int, mode string) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultChunkSize
	}

	runes := []rune(text)
	var chunks []string
	for len(runes) > 0 {
		n := len(runes)
		if n > limit {
			n = limit
			if mode == ModeLines {
				if i := lastNewline(runes[:limit]); i >= 0 {
					n = i + 1
				}
			}
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

func lastNewline(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '\n' {
			return i
		}
	}
	return -1
}
