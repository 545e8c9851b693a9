package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jonathan/career-navigator/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// Source describes where imported profile text came from.
type Source struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Hash     string `json:"hash"`
	Chars    int    `json:"chars"`
}

// FromURL fetches a public profile page and returns its cleaned main text.
func FromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Source, error) {
	platform := fetch.DetectPlatform(urlStr)

	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := fetch.ExtractMainText(result.HTML,
		fetch.PlatformContentSelectors(platform),
		fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, ErrEmptyProfile)
	}

	sum := sha256.Sum256([]byte(cleaned))
	return cleaned, &Source{
		URL:      urlStr,
		Platform: string(platform),
		Hash:     hex.EncodeToString(sum[:]),
		Chars:    len([]rune(cleaned)),
	}, nil
}
