// pkg/network/cosmos/nodeinfo.go
package cosmos

import (
	"context"

	"github.com/tidwall/gjson"
)

// NodeInfo describes the node behind the LCD.
type NodeInfo struct {
	Network string
	Moniker string
	Version string
}

// NodeInfo fetches the node's identity.
func (c *Client) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	var info *NodeInfo
	err := c.retryRead(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			Get("/cosmos/base/tendermint/v1beta1/node_info")
		if err != nil {
			return &RPCError{Operation: "node info", Message: err.Error()}
		}
		if resp.IsError() {
			return readError("node info", resp.StatusCode(), resp.Body())
		}

		parsed := gjson.ParseBytes(resp.Body())
		network := parsed.Get("default_node_info.network").String()
		if network == "" {
			return permanent(&RPCError{Operation: "node info", Message: "response has no network"})
		}
		info = &NodeInfo{
			Network: network,
			Moniker: parsed.Get("default_node_info.moniker").String(),
			Version: parsed.Get("application_version.version").String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// VerifyChainID checks that the node serves the configured chain.
func (c *Client) VerifyChainID(ctx context.Context) error {
	if c.chainID == "" {
		return nil
	}
	info, err := c.NodeInfo(ctx)
	if err != nil {
		return err
	}
	if info.Network != c.chainID {
		return &ChainIDMismatchError{Expected: c.chainID, Actual: info.Network}
	}
	return nil
}
