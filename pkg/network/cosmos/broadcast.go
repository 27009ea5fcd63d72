// pkg/network/cosmos/broadcast.go
package cosmos

import (
	"encoding/json"
	"strconv"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// BroadcastMode specifies how to broadcast a transaction.
type BroadcastMode string

const (
	BroadcastModeSync  BroadcastMode = "sync"
	BroadcastModeAsync BroadcastMode = "async"
	BroadcastModeBlock BroadcastMode = "block"
)

// BroadcastRequest is the body of POST /txs. Tx is an encoded StdTx.
type BroadcastRequest struct {
	Tx   json.RawMessage `json:"tx"`
	Mode BroadcastMode   `json:"mode"`
}

// BroadcastResponse is the legacy LCD transaction response.
type BroadcastResponse struct {
	Height    string  `json:"height"`
	TxHash    string  `json:"txhash"`
	Code      uint32  `json:"code"`
	Codespace string  `json:"codespace"`
	RawLog    string  `json:"raw_log"`
	Logs      []txLog `json:"logs"`
	GasWanted string  `json:"gas_wanted"`
	GasUsed   string  `json:"gas_used"`
}

type txLog struct {
	MsgIndex int                `json:"msg_index"`
	Log      string             `json:"log"`
	Events   []network.RawEvent `json:"events"`
}

// toResult converts the LCD response into a BroadcastResult. RawLog is copied
// verbatim.
func (r *BroadcastResponse) toResult() *network.BroadcastResult {
	result := &network.BroadcastResult{
		Success:   r.Code == 0,
		Code:      r.Code,
		Codespace: r.Codespace,
		TxHash:    r.TxHash,
		RawLog:    r.RawLog,
	}

	if height, err := strconv.ParseInt(r.Height, 10, 64); err == nil {
		result.Height = height
	}

	var all []network.RawEvent
	for _, l := range r.Logs {
		result.Logs = append(result.Logs, network.MsgLog{
			MsgIndex: l.MsgIndex,
			Events:   network.GroupEvents(l.Events),
		})
		all = append(all, l.Events...)
	}
	result.Events = network.GroupEvents(all)

	return result
}
