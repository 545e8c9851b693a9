package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile host.
type Platform string

const (
	// PlatformGitHub is a GitHub user or profile README page
	PlatformGitHub Platform = "github"
	// PlatformLinkedIn is a public LinkedIn profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformStackOverflow is a Stack Overflow user page
	PlatformStackOverflow Platform = "stackoverflow"
	// PlatformUnknown is a personal site or anything else
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the profile host from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	switch {
	case host == "github.com" || strings.HasSuffix(host, ".github.io"):
		return PlatformGitHub
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	case host == "stackoverflow.com":
		return PlatformStackOverflow
	default:
		return PlatformUnknown
	}
}

// PlatformContentSelectors returns content selectors for a profile host.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGitHub:
		return []string{
			"article.markdown-body", // profile README
			".js-profile-editable-area",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			"main.main",
			".core-rail",
			"main",
		}
	case PlatformStackOverflow:
		return []string{
			"#user-card",
			"#mainbar-full",
			"main",
		}
	default:
		return append(DefaultTextSelectors(), "#about", ".about", ".resume")
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a profile host.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGitHub:
		return append(common, ".js-pinned-items-reorder-container", ".js-yearly-contributions", ".UnderlineNav")
	case PlatformLinkedIn:
		return append(common, ".sign-in-modal", ".join-form", ".right-rail", ".contextual-sign-in-modal")
	case PlatformStackOverflow:
		return append(common, ".s-sidebarwidget", "#left-sidebar")
	default:
		return common
	}
}
