package index

import (
	"strings"
)

// Boundary preference order: paragraph, line, sentence, word. When none of
// these produce small enough pieces the splitter falls back to a hard cut.
var separators = []string{"\n\n", "\n", ". ", " "}

// Split breaks text into chunks of at most chunkSize characters with no
// overlap, preferring natural boundaries over mid-word cuts.
func Split(text string, chunkSize int) []string {
	return splitRecursive(strings.TrimSpace(text), chunkSize, separators)
}

func splitRecursive(text string, chunkSize int, seps []string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, chunkSize)
	}

	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		// Separator absent; try the next finer boundary
		return splitRecursive(text, chunkSize, seps[1:])
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	for _, part := range parts {
		if part == "" {
			continue
		}

		// Oversized piece: flush what we have and recurse on finer boundaries
		if len(part) > chunkSize {
			flush()
			chunks = append(chunks, splitRecursive(part, chunkSize, seps[1:])...)
			continue
		}

		if current.Len() > 0 && current.Len()+len(sep)+len(part) > chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}
	flush()

	return chunks
}

// hardCut slices by runes so multi-byte characters survive intact.
func hardCut(text string, chunkSize int) []string {
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
