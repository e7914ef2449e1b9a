package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/txlog"
	"github.com/quorumnet/ledger/x/wallet"
)

// harness drives the complete abci application, one operation per
// block, the way the ordering node would.
type harness struct {
	t      *testing.T
	app    BaseApp
	height int64
}

func newHarness(t *testing.T, appState string) *harness {
	t.Helper()
	abciApp, err := GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)

	h := &harness{t: t, app: abciApp.(BaseApp)}
	h.app.InitChain(abci.RequestInitChain{
		ChainId:       "test-ledger-22",
		AppStateBytes: []byte(appState),
	})
	require.Equal(t, "test-ledger-22", h.app.GetChainID())

	// commit the genesis state in an empty first block
	h.height = 1
	h.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: h.height}})
	h.app.EndBlock(abci.RequestEndBlock{})
	h.app.Commit()
	return h
}

// submit runs one operation through a full block and returns the
// deliver response along with the operation hash.
func (h *harness) submit(key ledger.PublicKey, msg ledger.Msg) (abci.ResponseDeliverTx, ledger.TxHash) {
	h.t.Helper()
	tx, err := BuildTx(key, msg)
	require.NoError(h.t, err)
	bz, err := tx.Marshal()
	require.NoError(h.t, err)

	h.height++
	h.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: h.height}})
	check := h.app.CheckTx(bz)
	res := h.app.DeliverTx(bz)
	assert.Equal(h.t, res.Code, check.Code, "check disagrees with deliver: %q / %q", check.Log, res.Log)
	h.app.EndBlock(abci.RequestEndBlock{})
	h.app.Commit()
	return res, ledger.NewTxHash(bz)
}

func (h *harness) wallet(key ledger.PublicKey) *wallet.Wallet {
	h.t.Helper()
	res := h.app.Query(abci.RequestQuery{Path: "/wallets", Data: key})
	require.Equal(h.t, uint32(0), res.Code, res.Log)
	var set ResultSet
	require.NoError(h.t, set.Unmarshal(res.Value))
	if len(set.Results) == 0 {
		return nil
	}
	var w wallet.Wallet
	require.NoError(h.t, w.Unmarshal(set.Results[0]))
	return &w
}

func (h *harness) balance(key ledger.PublicKey) uint64 {
	h.t.Helper()
	w := h.wallet(key)
	require.NotNil(h.t, w, "wallet %s", key)
	return w.Balance
}

func (h *harness) transfer(hash ledger.TxHash) *escrow.MultisigTransfer {
	h.t.Helper()
	res := h.app.Query(abci.RequestQuery{Path: "/escrows", Data: hash})
	require.Equal(h.t, uint32(0), res.Code, res.Log)
	var set ResultSet
	require.NoError(h.t, set.Unmarshal(res.Value))
	if len(set.Results) == 0 {
		return nil
	}
	var tr escrow.MultisigTransfer
	require.NoError(h.t, tr.Unmarshal(set.Results[0]))
	return &tr
}

func (h *harness) record(hash ledger.TxHash) *txlog.TxRecord {
	h.t.Helper()
	res := h.app.Query(abci.RequestQuery{Path: "/txlog", Data: hash})
	require.Equal(h.t, uint32(0), res.Code, res.Log)
	var set ResultSet
	require.NoError(h.t, set.Unmarshal(res.Value))
	if len(set.Results) == 0 {
		return nil
	}
	var rec txlog.TxRecord
	require.NoError(h.t, rec.Unmarshal(set.Results[0]))
	return &rec
}

func (h *harness) history(key ledger.PublicKey) []txlog.HistoryEntry {
	h.t.Helper()
	res := h.app.Query(abci.RequestQuery{Path: "/wallets/history", Data: key})
	require.Equal(h.t, uint32(0), res.Code, res.Log)
	var set ResultSet
	require.NoError(h.t, set.Unmarshal(res.Value))
	out := make([]txlog.HistoryEntry, len(set.Results))
	for i, bz := range set.Results {
		require.NoError(h.t, out[i].Unmarshal(bz))
	}
	return out
}

func genesisAccounts(accounts ...wallet.GenesisAccount) string {
	state := `{"wallets": [`
	for i, acct := range accounts {
		if i > 0 {
			state += ","
		}
		state += fmt.Sprintf(`{"name": %q, "pub_key": %q, "balance": %d}`,
			acct.Name, acct.PubKey.String(), acct.Balance)
	}
	return state + `]}`
}

func TestAppSendAndQuery(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()

	h := newHarness(t, genesisAccounts(
		wallet.GenesisAccount{PubKey: alice, Name: "alice", Balance: 10000},
		wallet.GenesisAccount{PubKey: bob, Name: "bob"},
	))

	assert.Equal(t, uint64(10000), h.balance(alice))
	assert.Equal(t, uint64(0), h.balance(bob))

	res, sendHash := h.submit(alice, &wallet.SendMsg{To: bob, Amount: 2000, Seed: 1})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(8000), h.balance(alice))
	assert.Equal(t, uint64(2000), h.balance(bob))

	// overdraft is rejected with the documented code, and recorded
	res, overdraftHash := h.submit(bob, &wallet.SendMsg{To: alice, Amount: 5000, Seed: 2})
	assert.Equal(t, uint32(3), res.Code, res.Log)
	assert.Equal(t, uint64(8000), h.balance(alice))
	assert.Equal(t, uint64(2000), h.balance(bob))

	rec := h.record(overdraftHash)
	require.NotNil(t, rec)
	assert.Equal(t, uint64(1), rec.Position)
	assert.Equal(t, bob, rec.Author)
	assert.Equal(t, uint32(3), rec.Result)

	// the failed operation left no trace in any history
	aliceHistory := h.history(alice)
	require.Len(t, aliceHistory, 1)
	assert.Equal(t, sendHash, aliceHistory[0].TxHash)
	assert.Equal(t, uint64(0), aliceHistory[0].Position)

	bobHistory := h.history(bob)
	require.Len(t, bobHistory, 1)
	assert.Equal(t, sendHash, bobHistory[0].TxHash)
}

func TestAppCreateAndIssue(t *testing.T) {
	dave := ledgertest.GenIdentity()
	h := newHarness(t, `{}`)

	// issuing before the wallet exists fails
	res, _ := h.submit(dave, &wallet.IssueMsg{Amount: 500, Seed: 1})
	assert.Equal(t, uint32(2), res.Code, res.Log)

	res, _ = h.submit(dave, &wallet.CreateWalletMsg{Name: "dave"})
	require.Equal(t, uint32(0), res.Code, res.Log)

	// a wallet is created once
	res, _ = h.submit(dave, &wallet.CreateWalletMsg{Name: "dave again"})
	assert.Equal(t, uint32(12), res.Code, res.Log)

	res, issueHash := h.submit(dave, &wallet.IssueMsg{Amount: 500, Seed: 2})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(500), h.balance(dave))

	history := h.history(dave)
	require.Len(t, history, 1)
	assert.Equal(t, issueHash, history[0].TxHash)
}

func TestAppMultisigTransfer(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	carl := ledgertest.GenIdentity()
	dana := ledgertest.GenIdentity()
	eve := ledgertest.GenIdentity()

	h := newHarness(t, genesisAccounts(
		wallet.GenesisAccount{PubKey: alice, Name: "alice", Balance: 1000},
		wallet.GenesisAccount{PubKey: bob, Name: "bob"},
	))

	res, initHash := h.submit(alice, &escrow.TransferMultisigMsg{
		To:        bob,
		Approvers: []ledger.PublicKey{carl, dana},
		Amount:    400,
		Seed:      1,
	})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, []byte(initHash), res.Data)

	// amount reserved on initiation
	assert.Equal(t, uint64(600), h.balance(alice))
	assert.Equal(t, uint64(0), h.balance(bob))

	tr := h.transfer(initHash)
	require.NotNil(t, tr)
	assert.Equal(t, escrow.State_IN_PROCESS, tr.State)
	assert.Empty(t, tr.ApprovedBy)

	// an outsider cannot approve
	res, _ = h.submit(eve, &escrow.ApproveTransferMsg{TxHash: initHash})
	assert.Equal(t, uint32(10), res.Code, res.Log)

	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: initHash})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(0), h.balance(bob), "funds move only on full quorum")

	// the identical approval bytes replayed are refused as duplicate
	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: initHash})
	assert.Equal(t, uint32(1005), res.Code, res.Log)

	res, doneHash := h.submit(dana, &escrow.ApproveTransferMsg{TxHash: initHash})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(600), h.balance(alice))
	assert.Equal(t, uint64(400), h.balance(bob))

	tr = h.transfer(initHash)
	require.NotNil(t, tr)
	assert.Equal(t, escrow.State_DONE, tr.State)
	assert.Len(t, tr.ApprovedBy, 2)

	// terminal states cannot be resolved again
	res, _ = h.submit(carl, &escrow.RejectTransferMsg{TxHash: initHash})
	assert.Equal(t, uint32(8), res.Code, res.Log)

	// the recipient history points at the completing approval
	bobHistory := h.history(bob)
	require.Len(t, bobHistory, 1)
	assert.Equal(t, doneHash, bobHistory[0].TxHash)
}

func TestAppMultisigReject(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	carl := ledgertest.GenIdentity()
	dana := ledgertest.GenIdentity()

	h := newHarness(t, genesisAccounts(
		wallet.GenesisAccount{PubKey: alice, Name: "alice", Balance: 1000},
		wallet.GenesisAccount{PubKey: bob, Name: "bob"},
	))

	res, initHash := h.submit(alice, &escrow.TransferMultisigMsg{
		To:        bob,
		Approvers: []ledger.PublicKey{carl, dana},
		Amount:    400,
		Seed:      1,
	})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(600), h.balance(alice))

	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: initHash})
	require.Equal(t, uint32(0), res.Code, res.Log)

	// one rejection refunds the sender, no matter how many approved
	res, _ = h.submit(dana, &escrow.RejectTransferMsg{TxHash: initHash})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(1000), h.balance(alice))
	assert.Equal(t, uint64(0), h.balance(bob))

	tr := h.transfer(initHash)
	require.NotNil(t, tr)
	assert.Equal(t, escrow.State_REJECTED, tr.State)
	// collected approvals stay on the audit record
	assert.Len(t, tr.ApprovedBy, 1)

	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: initHash})
	assert.Equal(t, uint32(8), res.Code, res.Log)
}

func TestAppReplayKeepsLogImmutable(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	carl := ledgertest.GenIdentity()

	h := newHarness(t, genesisAccounts(
		wallet.GenesisAccount{PubKey: alice, Name: "alice", Balance: 1000},
		wallet.GenesisAccount{PubKey: bob, Name: "bob"},
	))

	msg := &escrow.TransferMultisigMsg{
		To:        bob,
		Approvers: []ledger.PublicKey{carl},
		Amount:    400,
		Seed:      1,
	}
	res, initHash := h.submit(alice, msg)
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(600), h.balance(alice))

	// the same bytes again in a later block change nothing
	res, replayHash := h.submit(alice, msg)
	assert.Equal(t, uint32(1005), res.Code, res.Log)
	require.Equal(t, initHash, replayHash)
	assert.Equal(t, uint64(600), h.balance(alice))

	// the committed record survives the replay untouched
	rec := h.record(initHash)
	require.NotNil(t, rec)
	assert.Equal(t, uint64(0), rec.Position)
	assert.Equal(t, uint32(0), rec.Result)

	// and the transfer is still resolvable
	tr := h.transfer(initHash)
	require.NotNil(t, tr)
	assert.Equal(t, escrow.State_IN_PROCESS, tr.State)

	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: initHash})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, uint64(400), h.balance(bob))

	// the replay consumed no position in the log
	res, sendHash := h.submit(alice, &wallet.SendMsg{To: bob, Amount: 1, Seed: 2})
	require.Equal(t, uint32(0), res.Code, res.Log)
	rec = h.record(sendHash)
	require.NotNil(t, rec)
	assert.Equal(t, uint64(2), rec.Position)
}

func TestAppInitiateErrorCodes(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	carl := ledgertest.GenIdentity()
	eve := ledgertest.GenIdentity()

	h := newHarness(t, genesisAccounts(
		wallet.GenesisAccount{PubKey: alice, Name: "alice", Balance: 1000},
		wallet.GenesisAccount{PubKey: bob, Name: "bob"},
	))

	approvers := []ledger.PublicKey{carl}
	cases := map[string]struct {
		author   ledger.PublicKey
		msg      ledger.Msg
		wantCode uint32
	}{
		"unknown sender": {
			author:   eve,
			msg:      &escrow.TransferMultisigMsg{To: bob, Approvers: approvers, Amount: 5, Seed: 1},
			wantCode: 1,
		},
		"unknown receiver": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: eve, Approvers: approvers, Amount: 5, Seed: 2},
			wantCode: 2,
		},
		"insufficient funds": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: bob, Approvers: approvers, Amount: 9999, Seed: 3},
			wantCode: 3,
		},
		"self transfer": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: alice, Approvers: approvers, Amount: 5, Seed: 4},
			wantCode: 4,
		},
		"no approvers": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: bob, Amount: 5, Seed: 5},
			wantCode: 5,
		},
		"too many approvers": {
			author: alice,
			msg: &escrow.TransferMultisigMsg{
				To: bob,
				Approvers: []ledger.PublicKey{
					ledgertest.GenIdentity(), ledgertest.GenIdentity(),
					ledgertest.GenIdentity(), ledgertest.GenIdentity(),
					ledgertest.GenIdentity(), ledgertest.GenIdentity(),
				},
				Amount: 5,
				Seed:   6,
			},
			wantCode: 6,
		},
		"duplicate approvers": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: bob, Approvers: []ledger.PublicKey{carl, carl}, Amount: 5, Seed: 7},
			wantCode: 13,
		},
		"zero amount": {
			author:   alice,
			msg:      &escrow.TransferMultisigMsg{To: bob, Approvers: approvers, Seed: 8},
			wantCode: 11,
		},
		"approve unknown transfer": {
			author:   carl,
			msg:      &escrow.ApproveTransferMsg{TxHash: ledger.NewTxHash([]byte("never logged"))},
			wantCode: 7,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, _ := h.submit(tc.author, tc.msg)
			assert.Equal(t, tc.wantCode, res.Code, res.Log)
			assert.Equal(t, uint64(1000), h.balance(alice))
			assert.Equal(t, uint64(0), h.balance(bob))
		})
	}

	// referencing an operation that is no initiation
	res, sendHash := h.submit(alice, &wallet.SendMsg{To: bob, Amount: 1, Seed: 9})
	require.Equal(t, uint32(0), res.Code, res.Log)
	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: sendHash})
	assert.Equal(t, uint32(9), res.Code, res.Log)

	// referencing an initiation that itself failed
	res, failedHash := h.submit(alice, &escrow.TransferMultisigMsg{To: bob, Approvers: approvers, Amount: 9999, Seed: 10})
	require.Equal(t, uint32(3), res.Code, res.Log)
	res, _ = h.submit(carl, &escrow.ApproveTransferMsg{TxHash: failedHash})
	assert.Equal(t, uint32(8), res.Code, res.Log)
}
