// pkg/network/cosmos/account.go
package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// accountResponse represents the REST API response for account queries.
type accountResponse struct {
	Account accountWrapper `json:"account"`
}

// accountWrapper handles both BaseAccount and ModuleAccount types.
type accountWrapper struct {
	Type          string `json:"@type"`
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`

	// For ModuleAccount and vesting account types
	BaseAccount *baseAccountInfo `json:"base_account"`
}

// baseAccountInfo is used for nested account info (like in ModuleAccount).
type baseAccountInfo struct {
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`
}

// Account queries the account number and current sequence for address.
// Every call hits the node; sequences are never cached.
func (c *Client) Account(ctx context.Context, address string) (*network.AccountInfo, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	var info *network.AccountInfo
	err := c.retryRead(ctx, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("address", address).
			Get("/cosmos/auth/v1beta1/accounts/{address}")
		if err != nil {
			return &RPCError{Operation: "account", Message: err.Error()}
		}

		if resp.StatusCode() == http.StatusNotFound {
			return permanent(&NotFoundError{Resource: fmt.Sprintf("account %s", address)})
		}
		if resp.IsError() {
			return readError("account", resp.StatusCode(), resp.Body())
		}

		var accResp accountResponse
		if err := json.Unmarshal(resp.Body(), &accResp); err != nil {
			return permanent(&RPCError{Operation: "account", Message: "failed to parse account response"})
		}

		info, err = parseAccountInfo(&accResp.Account)
		return permanent(err)
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// parseAccountInfo extracts AccountInfo from the account wrapper.
// It handles both BaseAccount and ModuleAccount types.
func parseAccountInfo(wrapper *accountWrapper) (*network.AccountInfo, error) {
	address, accountNumStr, seqStr := wrapper.Address, wrapper.AccountNumber, wrapper.Sequence
	if wrapper.BaseAccount != nil {
		address = wrapper.BaseAccount.Address
		accountNumStr = wrapper.BaseAccount.AccountNumber
		seqStr = wrapper.BaseAccount.Sequence
	}

	accountNumber, err := strconv.ParseUint(accountNumStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account number: %w", err)
	}

	sequence, err := strconv.ParseUint(seqStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sequence: %w", err)
	}

	return &network.AccountInfo{
		Address:       address,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}, nil
}
