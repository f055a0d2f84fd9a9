package setup

import "github.com/fastforge/fastforge/pkg/schema"

// ApplyTrustProxyPrecedence computes the effective trust-proxy value from
// the raw trust-proxy options and stores it under the synthetic key. It
// mutates resolved in place and is idempotent.
//
// Precedence, first match wins: a boolean enable flag (false counts, the
// check is on type, not truthiness), then a non-empty address string, then a
// hop count, then unset.
func ApplyTrustProxyPrecedence(resolved schema.ResolvedOptions) {
	if enabled, ok := resolved[schema.KeyTrustProxyEnabled].(bool); ok {
		resolved[schema.KeyTrustProxyEffective] = enabled
		return
	}
	if addrs, ok := resolved[schema.KeyTrustProxyIPs].(string); ok && addrs != "" {
		resolved[schema.KeyTrustProxyEffective] = addrs
		return
	}
	if hops, ok := resolved[schema.KeyTrustProxyHops].(int); ok {
		resolved[schema.KeyTrustProxyEffective] = hops
		return
	}
	resolved[schema.KeyTrustProxyEffective] = nil
}
