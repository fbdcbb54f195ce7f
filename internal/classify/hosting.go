package classify

import (
	"net/url"
	"strings"
)

// Host represents a known static hosting provider.
type Host string

const (
	// HostNetlify serves sites under netlify.app
	HostNetlify Host = "netlify"
	// HostVercel serves sites under vercel.app
	HostVercel Host = "vercel"
	// HostUnknown is any other host
	HostUnknown Host = "unknown"
)

// staticHostSuffixes maps hostname suffixes to their provider.
var staticHostSuffixes = map[string]Host{
	"netlify.app": HostNetlify,
	"vercel.app":  HostVercel,
}

// DetectHost identifies the static hosting provider of a link from its hostname suffix.
func DetectHost(link string) Host {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return HostUnknown
	}

	host := strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
	if host == "" {
		return HostUnknown
	}

	for suffix, provider := range staticHostSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return provider
		}
	}
	return HostUnknown
}

// AnyStaticHost reports whether any link points at a known static hosting provider.
func AnyStaticHost(links []string) bool {
	for _, link := range links {
		if DetectHost(link) != HostUnknown {
			return true
		}
	}
	return false
}
