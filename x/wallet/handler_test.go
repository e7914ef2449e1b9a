package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

func TestCreateWalletHandler(t *testing.T) {
	db := store.MemStore()
	key := ledgertest.GenIdentity()
	auth := &ledgertest.Auth{Signer: key}
	control := NewController(NewWalletBucket())
	h := CreateWalletHandler{auth: auth, control: control}
	ctx := context.Background()

	tx := &ledgertest.Tx{Msg: &CreateWalletMsg{Name: "alice"}}

	res, err := h.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, createWalletCost, res.GasAllocated)

	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)

	w, err := control.Wallet(db, key)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "alice", w.Name)
	assert.EqualValues(t, 0, w.Balance)

	// a second creation for the same identity must fail
	_, err = h.Deliver(ctx, db, tx)
	assert.True(t, ErrDuplicateWallet.Is(err))

	// a bad display name never reaches the state
	_, err = h.Deliver(ctx, db, &ledgertest.Tx{Msg: &CreateWalletMsg{Name: "b\nd"}})
	assert.True(t, errors.ErrInput.Is(err))

	// no author, no wallet
	noone := CreateWalletHandler{auth: &ledgertest.Auth{}, control: control}
	_, err = noone.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestIssueHandler(t *testing.T) {
	db := store.MemStore()
	key := ledgertest.GenIdentity()
	auth := &ledgertest.Auth{Signer: key}
	control := NewController(NewWalletBucket())
	h := IssueHandler{auth: auth, control: control}
	ctx := ledger.WithTxHash(context.Background(), ledger.NewTxHash([]byte("issue op")))

	tx := &ledgertest.Tx{Msg: &IssueMsg{Amount: 500, Seed: 1}}

	// issuing to a missing wallet fails
	_, err := h.Deliver(ctx, db, tx)
	assert.True(t, ErrReceiverNotFound.Is(err))

	require.NoError(t, control.Create(db, key, "alice"))

	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)

	w, err := control.Wallet(db, key)
	require.NoError(t, err)
	assert.EqualValues(t, 500, w.Balance)
	assert.EqualValues(t, 1, w.HistoryLen)

	total, err := control.TotalIssued(db)
	require.NoError(t, err)
	assert.EqualValues(t, 500, total)

	_, err = h.Deliver(ctx, db, &ledgertest.Tx{Msg: &IssueMsg{Amount: 0}})
	assert.True(t, ErrInvalidAmount.Is(err))
}

func TestSendHandler(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	stranger := ledgertest.GenIdentity()

	setup := func(t *testing.T) (ledger.KVStore, Controller) {
		db := store.MemStore()
		control := NewController(NewWalletBucket())
		require.NoError(t, control.Create(db, alice, "alice"))
		require.NoError(t, control.Create(db, bob, "bob"))
		require.NoError(t, control.Issue(db, alice, 100, nil))
		return db, control
	}

	cases := map[string]struct {
		signer   ledger.PublicKey
		msg      *SendMsg
		wantErr  *errors.Error
		wantCode uint32
	}{
		"happy path": {
			signer: alice,
			msg:    &SendMsg{To: bob, Amount: 30, Seed: 7},
		},
		"sender has no wallet": {
			signer:   stranger,
			msg:      &SendMsg{To: bob, Amount: 30},
			wantErr:  ErrSenderNotFound,
			wantCode: 1,
		},
		"receiver has no wallet": {
			signer:   alice,
			msg:      &SendMsg{To: stranger, Amount: 30},
			wantErr:  ErrReceiverNotFound,
			wantCode: 2,
		},
		"insufficient funds": {
			signer:   alice,
			msg:      &SendMsg{To: bob, Amount: 101},
			wantErr:  ErrInsufficientFunds,
			wantCode: 3,
		},
		"self transfer": {
			signer:   alice,
			msg:      &SendMsg{To: alice, Amount: 30},
			wantErr:  ErrSameAccount,
			wantCode: 4,
		},
		"zero amount": {
			signer:   alice,
			msg:      &SendMsg{To: bob, Amount: 0},
			wantErr:  ErrInvalidAmount,
			wantCode: 11,
		},
		"malformed recipient": {
			signer:  alice,
			msg:     &SendMsg{To: []byte("bogus"), Amount: 30},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, control := setup(t)
			h := SendHandler{auth: &ledgertest.Auth{Signer: tc.signer}, control: control}
			ctx := ledger.WithTxHash(context.Background(), ledger.NewTxHash([]byte(testName)))
			tx := &ledgertest.Tx{Msg: tc.msg}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				if tc.wantCode != 0 {
					code, _ := errors.ABCIInfo(err, false)
					assert.Equal(t, tc.wantCode, code)
				}
				return
			}
			require.NoError(t, err)

			sender, err := control.Wallet(db, alice)
			require.NoError(t, err)
			assert.EqualValues(t, 100-tc.msg.Amount, sender.Balance)
			assert.EqualValues(t, 1, sender.HistoryLen)

			recipient, err := control.Wallet(db, tc.msg.To)
			require.NoError(t, err)
			assert.EqualValues(t, tc.msg.Amount, recipient.Balance)
			assert.EqualValues(t, 1, recipient.HistoryLen)
		})
	}
}

func TestGenesisInitializer(t *testing.T) {
	db := store.MemStore()
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()

	opts := ledger.Options{
		"wallets": []byte(`[
			{"pub_key": "` + alice.String() + `", "name": "alice", "balance": 1000},
			{"pub_key": "` + bob.String() + `", "name": "bob", "balance": 0}
		]`),
	}

	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	control := NewController(NewWalletBucket())

	a, err := control.Wallet(db, alice)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.EqualValues(t, 1000, a.Balance)
	// genesis credits do not touch the audit trail
	assert.EqualValues(t, 0, a.HistoryLen)

	b, err := control.Wallet(db, bob)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.EqualValues(t, 0, b.Balance)

	total, err := control.TotalIssued(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, total)
}
