package server

import (
	"encoding/json"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// localPath returns raw when it is a path on this site ("/fr/about?x=1"),
// otherwise "".
func localPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return raw
}

// proxySet holds the networks whose forwarding headers are believed.
type proxySet []netip.Prefix

// parseProxies accepts single addresses and CIDR ranges. Invalid entries are
// skipped.
func parseProxies(values []string) proxySet {
	var out proxySet
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(v); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(v); err == nil {
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return out
}

func (p proxySet) contains(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the visitor's address. X-Forwarded-For is walked from the
// right and the first hop that is not a trusted proxy wins, so a client cannot
// spoof its address by sending the header itself.
func clientIP(r *http.Request, trusted proxySet) string {
	host := r.RemoteAddr
	if addrPort, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		host = addrPort.Addr().Unmap().String()
	}
	if len(trusted) == 0 || !trusted.contains(host) {
		return host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !trusted.contains(hop) {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return host
}
