// Package ingestion turns pasted text, files and profile URLs into clean
// profile text for skill extraction.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxProfileChars bounds the text sent for extraction.
const MaxProfileChars = 20000

// ErrEmptyProfile is returned when nothing usable remains after cleaning.
var ErrEmptyProfile = errors.New("profile text is empty")

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	invisibleRune = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "", "\u00a0", " ")
)

// CleanText normalizes profile text while keeping headings and list structure.
// Unicode bullets become "- ", runs of spaces collapse, at most one blank line
// separates paragraphs, and the result is capped at MaxProfileChars.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = invisibleRune.Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	result = strings.TrimSpace(result)
	return truncateRunes(result, MaxProfileChars)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := ""
	if n := len(line) - len(trimmed); n > 0 {
		indent = strings.Repeat(" ", n)
	}

	for _, bullet := range []string{"• ", "· ", "▪ ", "– "} {
		if strings.HasPrefix(trimmed, bullet) {
			trimmed = "- " + strings.TrimPrefix(trimmed, bullet)
			break
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		return spaceRun.ReplaceAllString(trimmed, " ")
	}
	return indent + spaceRun.ReplaceAllString(trimmed, " ")
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// ReadProfile reads profile text from r as written, minus surrounding
// whitespace. Cleaning for the prompt happens at submission.
func ReadProfile(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxProfileChars*4))
	if err != nil {
		return "", fmt.Errorf("failed to read profile: %w", err)
	}
	if CleanText(string(data)) == "" {
		return "", ErrEmptyProfile
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadProfileFile reads profile text from path, or from stdin when path is "-".
func ReadProfileFile(path string) (string, error) {
	if path == "-" {
		return ReadProfile(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadProfile(f)
}
