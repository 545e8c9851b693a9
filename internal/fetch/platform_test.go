package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://github.com/ada", PlatformGitHub},
		{"https://www.github.com/ada", PlatformGitHub},
		{"https://ada.github.io/", PlatformGitHub},
		{"https://www.linkedin.com/in/ada", PlatformLinkedIn},
		{"https://uk.linkedin.com/in/ada", PlatformLinkedIn},
		{"https://stackoverflow.com/users/1/ada", PlatformStackOverflow},
		{"https://notgithub.com/ada", PlatformUnknown},
		{"https://ada.dev/about", PlatformUnknown},
		{"::bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, "article.markdown-body", PlatformContentSelectors(PlatformGitHub)[0])
	assert.Contains(t, PlatformContentSelectors(PlatformLinkedIn), "main")

	unknown := PlatformContentSelectors(PlatformUnknown)
	assert.Contains(t, unknown, "main")
	assert.Contains(t, unknown, "#about")
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, ".cookie-consent")

	linkedin := PlatformNoiseSelectors(PlatformLinkedIn)
	assert.Contains(t, linkedin, ".sign-in-modal")
	assert.Greater(t, len(linkedin), len(common))
}
