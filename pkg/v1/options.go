package v1

import "github.com/tranvuongquocdat/life-companition-AI-sub000/internal"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	vaultDir string
	gateway  *internal.Gateway
}

// WithVault forces a specific vault directory instead of the resolved default.
func WithVault(dir string) Option {
	return func(c *clientConfig) {
		c.vaultDir = dir
	}
}

// WithGateway supplies an embedding gateway, bypassing config resolution.
func WithGateway(gw *internal.Gateway) Option {
	return func(c *clientConfig) {
		c.gateway = gw
	}
}
