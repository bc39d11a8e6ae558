package ssllabs

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

const (
	maxHostnameLen = 253
	maxLabelLen    = 63
)

// UrlValidator performs the preflight syntax checks applied before any request.
type UrlValidator struct{}

// IsValid reports whether host is a well formed hostname, IP literal or
// absolute http(s) URL. It never touches the network.
func (UrlValidator) IsValid(host string) bool {
	if host == "" || strings.TrimSpace(host) != host || strings.ContainsAny(host, " \t\r\n") {
		return false
	}

	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return false
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false
		}
		if u.User != nil {
			return false
		}
		if !validPort(u.Port()) {
			return false
		}
		if strings.HasPrefix(u.Host, "[") {
			return isIPv6Literal(u.Hostname())
		}
		host = u.Hostname()
		if host == "" {
			return false
		}
	}

	// Brackets are only allowed as one matched pair around an IPv6 address.
	if strings.ContainsAny(host, "[]") {
		if len(host) < 3 || host[0] != '[' || host[len(host)-1] != ']' {
			return false
		}
		return isIPv6Literal(host[1 : len(host)-1])
	}

	if net.ParseIP(host) != nil {
		return true
	}
	return validHostname(host)
}

func isIPv6Literal(s string) bool {
	return strings.Contains(s, ":") && net.ParseIP(s) != nil
}

// validPort accepts an absent port or a decimal in 1..65535.
func validPort(port string) bool {
	if port == "" {
		return true
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

func validHostname(host string) bool {
	ascii, err := idna.Lookup.ToASCII(strings.ToLower(strings.TrimSuffix(host, ".")))
	if err != nil || ascii == "" || len(ascii) > maxHostnameLen {
		return false
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > maxLabelLen {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	// A numeric TLD is an IPv4 typo, not a hostname.
	tld := labels[len(labels)-1]
	return strings.Trim(tld, "0123456789") != ""
}

// Format normalizes a base API URL: a missing scheme becomes https and the
// result always ends with a single slash.
func (UrlValidator) Format(apiURL string) string {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return ""
	}
	if !strings.Contains(apiURL, "://") {
		apiURL = "https://" + apiURL
	}
	return strings.TrimRight(apiURL, "/") + "/"
}
