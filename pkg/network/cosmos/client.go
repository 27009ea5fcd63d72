// pkg/network/cosmos/client.go
package cosmos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/altuslabsxyz/arbctl/pkg/network"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// DefaultTimeout bounds every LCD round trip.
const DefaultTimeout = 30 * time.Second

// ClientConfig configures the LCD client.
type ClientConfig struct {
	// LCDURL is the base URL of the light client daemon.
	LCDURL string

	// ChainID is the chain the client expects to talk to.
	ChainID string

	// Timeout for each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// QueryRetries is how many times a failed read is retried.
	// Broadcasts are never retried.
	QueryRetries uint64
}

// Client talks to a Terra LCD over the legacy REST routes.
type Client struct {
	http    *resty.Client
	chainID string
	retries uint64
}

// NewClient creates an LCD client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.LCDURL == "" {
		return nil, fmt.Errorf("LCD URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.LCDURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		chainID: cfg.ChainID,
		retries: cfg.QueryRetries,
	}, nil
}

// ChainID returns the chain ID the client was configured with.
func (c *Client) ChainID() string {
	return c.chainID
}

// QueryContract runs a smart query. req is encoded canonically and the
// query_result field of the response is returned.
func (c *Client) QueryContract(ctx context.Context, contract string, req any) (json.RawMessage, error) {
	queryMsg, err := wasm.EncodeBinary(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	var result json.RawMessage
	err = c.retryRead(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("contract", contract).
			SetQueryParam("query_msg", queryMsg).
			Get("/terra/wasm/v1beta1/contracts/{contract}/store")
		if err != nil {
			return &RPCError{Operation: "contract query", Message: err.Error()}
		}
		if resp.IsError() {
			return readError("contract query", resp.StatusCode(), resp.Body())
		}

		field := gjson.GetBytes(resp.Body(), "query_result")
		if !field.Exists() {
			return permanent(&RPCError{Operation: "contract query", Message: "response has no query_result"})
		}
		result = json.RawMessage(field.Raw)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type estimateRequest struct {
	Tx            StdTx  `json:"tx"`
	GasPrices     string `json:"gas_prices"`
	GasAdjustment string `json:"gas_adjustment"`
}

// EstimateGas asks the node to simulate the draft. The returned figure is the
// node's unadjusted estimate; callers apply their own adjustment.
func (c *Client) EstimateGas(ctx context.Context, draft *network.Draft, data network.SignerData) (uint64, error) {
	body := estimateRequest{
		Tx: StdTx{
			Msg:        network.WrapAmino(draft.Msgs),
			Fee:        network.Fee{},
			Signatures: []StdSignature{},
			Memo:       draft.Memo,
		},
		GasPrices:     draft.Fee.GasPrice.String(),
		GasAdjustment: "1",
	}

	var gas uint64
	err := c.retryRead(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post("/txs/estimate_fee")
		if err != nil {
			return &RPCError{Operation: "estimate fee", Message: err.Error()}
		}
		if resp.IsError() {
			return readError("estimate fee", resp.StatusCode(), resp.Body())
		}

		field := gjson.GetBytes(resp.Body(), "result.fee.gas")
		if !field.Exists() {
			return permanent(&RPCError{Operation: "estimate fee", Message: "response has no gas estimate"})
		}
		gas = field.Uint()
		return nil
	})
	if err != nil {
		return 0, err
	}
	if gas == 0 {
		return 0, &RPCError{Operation: "estimate fee", Message: "node returned zero gas"}
	}

	return gas, nil
}

// Broadcast submits tx in block mode. The request is sent once; transport
// errors surface to the caller without a retry.
func (c *Client) Broadcast(ctx context.Context, tx *network.SignedTx) (*network.BroadcastResult, error) {
	if tx == nil || len(tx.Tx) == 0 {
		return nil, fmt.Errorf("signed transaction is empty")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(BroadcastRequest{Tx: tx.Tx, Mode: BroadcastModeBlock}).
		Post("/txs")
	if err != nil {
		return nil, &RPCError{Operation: "broadcast", Message: err.Error()}
	}

	var txResp BroadcastResponse
	if err := json.Unmarshal(resp.Body(), &txResp); err != nil || txResp.TxHash == "" {
		if resp.IsError() {
			return nil, statusError("broadcast", resp.StatusCode(), resp.Body())
		}
		return nil, &RPCError{Operation: "broadcast", Message: "failed to parse broadcast response"}
	}

	return txResp.toResult(), nil
}

// retryRead runs a read-only operation, retrying transient failures when the
// client was configured with QueryRetries.
func (c *Client) retryRead(ctx context.Context, op func() error) error {
	if c.retries == 0 {
		err := op()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	return backoff.Retry(op, policy)
}

// permanent stops the retry loop for err. A nil err stays nil.
func permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// readError is statusError for retried reads. Client errors are not retried.
func readError(operation string, status int, body []byte) error {
	err := statusError(operation, status, body)
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return backoff.Permanent(err)
	}
	return err
}

// statusError converts an HTTP error status into an RPCError.
func statusError(operation string, status int, body []byte) *RPCError {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	return &RPCError{Operation: operation, StatusCode: status, Message: msg}
}

// Ensure Client implements network.LedgerClient.
var _ network.LedgerClient = (*Client)(nil)
