package middleware

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP in the context (key: "real_ip"). Forwarding
// headers are honored only when the direct peer is one of the trusted proxy
// entries (IPs or CIDRs); otherwise the peer address is the client.
//
// From a trusted peer, CF-Connecting-IP wins, then X-Forwarded-For read
// right to left, skipping trusted hops.
func RealIP(trusted ...string) gin.HandlerFunc {
	proxies := parsePrefixes(trusted)
	isTrusted := func(a netip.Addr) bool {
		for _, p := range proxies {
			if p.Contains(a) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		peer, ok := peerAddr(c.Request.RemoteAddr)
		if !ok {
			c.Set("real_ip", c.ClientIP())
			c.Next()
			return
		}
		ip := peer
		if isTrusted(peer) {
			if cf, err := netip.ParseAddr(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); err == nil {
				ip = cf.Unmap()
			} else if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
				hops := strings.Split(xff, ",")
				for i := len(hops) - 1; i >= 0; i-- {
					hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
					if err != nil {
						break
					}
					ip = hop.Unmap()
					if !isTrusted(ip) {
						break
					}
				}
			}
		}
		c.Set("real_ip", ip.String())
		c.Next()
	}
}

func peerAddr(remote string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(strings.TrimSpace(remote))
	if err != nil {
		host = remote
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}
