package clock

import (
	"context"

	solclient "github.com/lugondev/go-brewstake/internal/solana"
)

// RPC reads the slot from a Solana RPC endpoint.
type RPC struct {
	client *solclient.Client
}

// NewRPC creates a slot clock backed by the given client.
func NewRPC(client *solclient.Client) *RPC {
	return &RPC{client: client}
}

// CurrentSlot implements Clock.
func (c *RPC) CurrentSlot(ctx context.Context) (uint64, error) {
	return c.client.GetSlot(ctx)
}
