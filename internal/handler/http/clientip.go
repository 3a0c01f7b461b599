package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client address of a request.
//
// X-Forwarded-For and X-Real-IP are honoured only when the direct peer is one
// of the trusted proxies. Without trusted proxies RemoteAddr is always used,
// so a client cannot pick its own identity by sending forwarding headers.
type IPExtractor struct {
	trusted []netip.Prefix
}

// NewIPExtractor creates an extractor trusting forwarding headers from the given networks.
func NewIPExtractor(trusted []netip.Prefix) IPExtractor {
	return IPExtractor{trusted: trusted}
}

// ClientIP returns the client IP address for r.
func (e IPExtractor) ClientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if !e.isTrusted(peer) {
		if r.Header.Get("X-Forwarded-For") != "" || r.Header.Get("X-Real-IP") != "" {
			slog.Debug("ignoring forwarding headers from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr))
		}
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String()
		}
	}

	return peer
}

func (e IPExtractor) isTrusted(peer string) bool {
	if len(e.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range e.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// remoteHost strips the port from a RemoteAddr value.
func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// firstIP parses the first address of a comma-separated list.
func firstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
