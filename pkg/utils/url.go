package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// JoinOrigin appends a site-relative href to the base origin. The registry
// links detail pages as "/projects/...", so plain concatenation is what the
// site expects. An href that already carries a scheme and host is returned
// unchanged.
func JoinOrigin(base, href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() && u.Host != "" {
		return href
	}
	return strings.TrimRight(base, "/") + ensureLeadingSlash(href)
}

func ensureLeadingSlash(href string) string {
	if href == "" || strings.HasPrefix(href, "/") {
		return href
	}
	return "/" + href
}
