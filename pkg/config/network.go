package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParsePrefixes parses IP addresses and CIDR blocks. A bare address becomes a
// single-host prefix (/32 or /128). Empty entries are skipped.
//
// Example:
//
//	prefixes, err := ParsePrefixes([]string{"10.0.0.0/8", "192.168.1.1"})
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(v)
		if err != nil {
			addr, addrErr := netip.ParseAddr(v)
			if addrErr != nil {
				return nil, fmt.Errorf("invalid IP or CIDR format '%s'", v)
			}
			addr = addr.Unmap()
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes, nil
}
