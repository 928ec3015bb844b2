package middleware

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limit for loopback and private-network clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// AllowPrefixes bypasses the limit for clients inside any of the given
// entries. An entry is a CIDR or a bare address; malformed entries are
// skipped. Returns nil when nothing usable is left.
func AllowPrefixes(entries []string) AllowFunc {
	prefixes := parsePrefixes(entries)
	if len(prefixes) == 0 {
		return nil
	}
	return func(c *gin.Context) bool {
		a, err := netip.ParseAddr(ipFromCtx(c))
		if err != nil {
			return false
		}
		a = a.Unmap()
		for _, p := range prefixes {
			if p.Contains(a) {
				return true
			}
		}
		return false
	}
}

// parsePrefixes reads CIDRs and bare addresses, skipping malformed entries.
func parsePrefixes(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			a = a.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return prefixes
}

// AllowAny bypasses the limit when one of fns does. Nil entries are ignored.
func AllowAny(fns ...AllowFunc) AllowFunc {
	live := make([]AllowFunc, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(c *gin.Context) bool {
		for _, fn := range live {
			if fn(c) {
				return true
			}
		}
		return false
	}
}
