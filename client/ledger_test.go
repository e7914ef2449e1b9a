package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/app"
	"github.com/quorumnet/ledger/crypto"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/wallet"
)

// commit builds an operation envelope, submits it and waits for it to
// land in a block. It returns the commit result together with the
// ledger-internal hash approvals use to reference the operation.
func commit(t *testing.T, ctx context.Context, c *Client, author crypto.KeyPair, msg ledger.Msg) (*CommitResult, ledger.TxHash) {
	t.Helper()
	tx, err := app.BuildTx(author.PublicKey(), msg)
	require.NoError(t, err)
	raw, err := tx.Marshal()
	require.NoError(t, err)

	res, err := c.CommitTx(ctx, tx)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res, ledger.NewTxHash(raw)
}

func TestLedgerRoundtrip(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	bob := crypto.GenKeyPair()
	carl := crypto.GenKeyPair()
	_ = carl

	// the faucet wallet was seeded through the genesis file
	fw, err := c.GetWallet(ctx, faucet.PublicKey())
	require.NoError(t, err)
	require.NotNil(t, fw)
	assert.Equal(t, "faucet", fw.Name)
	funds := fw.Balance

	res, _ := commit(t, ctx, c, bob, &wallet.CreateWalletMsg{Name: "bob"})
	require.NoError(t, res.Err)

	res, sendHash := commit(t, ctx, c, faucet, &wallet.SendMsg{
		To:     bob.PublicKey(),
		Amount: 1200,
		Seed:   1,
	})
	require.NoError(t, res.Err)

	bw, err := c.GetWallet(ctx, bob.PublicKey())
	require.NoError(t, err)
	require.NotNil(t, bw)
	assert.Equal(t, uint64(1200), bw.Balance)

	fw, err = c.GetWallet(ctx, faucet.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, funds-1200, fw.Balance)

	// the send is recorded in the operation log and in both histories
	rec, err := c.GetRecord(ctx, sendHash)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, uint32(0), rec.Result)
	assert.Equal(t, faucet.PublicKey(), rec.Author)

	hist, err := c.GetHistory(ctx, bob.PublicKey())
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, sendHash, hist[0].TxHash)

	// unknown accounts have no wallet and no history
	ghost := crypto.GenKeyPair()
	gw, err := c.GetWallet(ctx, ghost.PublicKey())
	require.NoError(t, err)
	assert.Nil(t, gw)
	_, err = c.GetHistory(ctx, ghost.PublicKey())
	assert.Error(t, err)
}

func TestLedgerMultisigTransfer(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	recv := crypto.GenKeyPair()
	approver := crypto.GenKeyPair()

	res, _ := commit(t, ctx, c, recv, &wallet.CreateWalletMsg{Name: "receiver"})
	require.NoError(t, res.Err)

	res, initHash := commit(t, ctx, c, faucet, &escrow.TransferMultisigMsg{
		To:        recv.PublicKey(),
		Approvers: []ledger.PublicKey{approver.PublicKey()},
		Amount:    500,
		Seed:      2,
	})
	require.NoError(t, res.Err)
	assert.Equal(t, initHash, res.OperationHash())

	held, err := c.GetTransfer(ctx, initHash)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.Equal(t, escrow.State_IN_PROCESS, held.State)
	assert.Empty(t, held.ApprovedBy)

	// funds are reserved, not delivered yet
	rw, err := c.GetWallet(ctx, recv.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rw.Balance)

	// a stranger cannot approve, rejected already in the mempool check
	stranger := crypto.GenKeyPair()
	badTx, err := app.BuildTx(stranger.PublicKey(), &escrow.ApproveTransferMsg{TxHash: initHash})
	require.NoError(t, err)
	_, err = c.SubmitTx(ctx, badTx)
	require.Error(t, err)
	assert.True(t, escrow.ErrNotApprover.Is(err))

	res, _ = commit(t, ctx, c, approver, &escrow.ApproveTransferMsg{TxHash: initHash})
	require.NoError(t, res.Err)

	held, err = c.GetTransfer(ctx, initHash)
	require.NoError(t, err)
	assert.Equal(t, escrow.State_DONE, held.State)
	require.Len(t, held.ApprovedBy, 1)
	assert.Equal(t, approver.PublicKey(), held.ApprovedBy[0])

	rw, err = c.GetWallet(ctx, recv.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(500), rw.Balance)
}

func TestLedgerSubmitRejected(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	poor := crypto.GenKeyPair()
	res, _ := commit(t, ctx, c, poor, &wallet.CreateWalletMsg{Name: "poor"})
	require.NoError(t, res.Err)

	tx, err := app.BuildTx(poor.PublicKey(), &wallet.SendMsg{
		To:     faucet.PublicKey(),
		Amount: 999999999,
		Seed:   3,
	})
	require.NoError(t, err)
	_, err = c.SubmitTx(ctx, tx)
	require.Error(t, err)
	assert.True(t, wallet.ErrInsufficientFunds.Is(err))
}
