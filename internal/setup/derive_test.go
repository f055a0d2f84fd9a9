package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastforge/fastforge/pkg/schema"
)

func TestApplyTrustProxyPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		enabled any
		addrs   any
		hops    any
		want    any
	}{
		{
			name:    "boolean true wins",
			enabled: true,
			addrs:   "10.0.0.0/8",
			hops:    2,
			want:    true,
		},
		{
			name:    "boolean false still wins over everything",
			enabled: false,
			addrs:   "10.0.0.0/8",
			hops:    2,
			want:    false,
		},
		{
			name:  "non-empty string outranks number",
			addrs: "10.0.0.0/8",
			hops:  2,
			want:  "10.0.0.0/8",
		},
		{
			name:  "empty string does not count",
			addrs: "",
			hops:  2,
			want:  2,
		},
		{
			name: "number alone",
			hops: 3,
			want: 3,
		},
		{
			name: "nothing set",
			want: nil,
		},
		{
			name:    "wrong types fall through",
			enabled: "true",
			addrs:   7,
			hops:    "2",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := schema.ResolvedOptions{
				schema.KeyTrustProxyEnabled: tt.enabled,
				schema.KeyTrustProxyIPs:     tt.addrs,
				schema.KeyTrustProxyHops:    tt.hops,
			}

			ApplyTrustProxyPrecedence(resolved)
			assert.Equal(t, tt.want, resolved[schema.KeyTrustProxyEffective])

			// Idempotent: a second application changes nothing.
			ApplyTrustProxyPrecedence(resolved)
			assert.Equal(t, tt.want, resolved[schema.KeyTrustProxyEffective])
		})
	}
}

func TestApplyTrustProxyPrecedenceAlwaysSetsKey(t *testing.T) {
	resolved := schema.ResolvedOptions{}
	ApplyTrustProxyPrecedence(resolved)

	value, present := resolved[schema.KeyTrustProxyEffective]
	assert.True(t, present)
	assert.Nil(t, value)
}
