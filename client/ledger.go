package client

import (
	"context"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/app"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/txlog"
	"github.com/quorumnet/ledger/x/wallet"
)

// Typed accessors for the ledger's query interface. Each runs one
// abci query against the connected node and parses the result sets
// into the extension's models.

// GetWallet returns the current wallet state for an account, or nil
// when the account has never been created.
func (c *Client) GetWallet(ctx context.Context, key ledger.PublicKey) (*wallet.Wallet, error) {
	resp, err := c.abciQuery("/wallets", key)
	if err != nil {
		return nil, err
	}
	var w wallet.Wallet
	if err := app.UnmarshalOneResult(resp.Value, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	if w.PubKey == nil {
		return nil, nil
	}
	return &w, nil
}

// GetTransfer returns the escrowed transfer created by the operation
// with the given hash, or nil when no such transfer exists.
func (c *Client) GetTransfer(ctx context.Context, hash ledger.TxHash) (*escrow.MultisigTransfer, error) {
	resp, err := c.abciQuery("/escrows", hash)
	if err != nil {
		return nil, err
	}
	var res app.ResultSet
	if err := res.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return nil, nil
	}
	var t escrow.MultisigTransfer
	if err := t.Unmarshal(res.Results[0]); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return &t, nil
}

// GetRecord returns the operation log record for the operation with
// the given hash, or nil when the operation was never delivered.
func (c *Client) GetRecord(ctx context.Context, hash ledger.TxHash) (*txlog.TxRecord, error) {
	resp, err := c.abciQuery("/txlog", hash)
	if err != nil {
		return nil, err
	}
	var res app.ResultSet
	if err := res.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return nil, nil
	}
	var r txlog.TxRecord
	if err := r.Unmarshal(res.Results[0]); err != nil {
		return nil, errors.Wrap(err, "record")
	}
	return &r, nil
}

// GetHistory returns the committed operation history of an account in
// order. Unknown accounts are an error, an account without history is
// an empty slice.
func (c *Client) GetHistory(ctx context.Context, key ledger.PublicKey) ([]txlog.HistoryEntry, error) {
	resp, err := c.abciQuery("/wallets/history", key)
	if err != nil {
		return nil, err
	}
	var res app.ResultSet
	if err := res.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	entries := make([]txlog.HistoryEntry, len(res.Results))
	for i, bz := range res.Results {
		if err := entries[i].Unmarshal(bz); err != nil {
			return nil, errors.Wrap(err, "history entry")
		}
	}
	return entries, nil
}

func (c *Client) abciQuery(path string, data []byte) (ResponseQuery, error) {
	resp := c.Query(RequestQuery{Path: path, Data: data})
	if resp.Code != 0 {
		return ResponseQuery{}, errors.ABCIError(resp.Code, resp.Log)
	}
	return resp, nil
}
