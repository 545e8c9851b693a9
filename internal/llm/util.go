package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock strips markdown code fences and conversational text around a
// JSON payload. A candidate is only accepted when it is valid JSON; otherwise
// text is returned exactly as received so a raw fallback keeps the model's reply.
func CleanJSONBlock(text string) string {
	trimmed := stripFences(strings.TrimSpace(text))
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '{' && trimmed[i] != '[' {
			continue
		}
		if span, ok := balancedSpan(trimmed[i:]); ok && json.Valid([]byte(span)) {
			return span
		}
	}
	return text
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// balancedSpan scans from an opening bracket to its matching close, skipping
// brackets inside string literals.
func balancedSpan(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	open := text[0]
	var closing byte
	switch open {
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	default:
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1], true
			}
		}
	}
	return "", false
}
