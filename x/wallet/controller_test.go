package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

func TestControllerCreate(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewWalletBucket())
	key := ledgertest.GenIdentity()

	require.NoError(t, control.Create(db, key, "alice"))

	w, err := control.Wallet(db, key)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "alice", w.Name)
	assert.EqualValues(t, 0, w.Balance)

	err = control.Create(db, key, "alice again")
	assert.True(t, ErrDuplicateWallet.Is(err))
}

func TestControllerMove(t *testing.T) {
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()
	nobody := ledgertest.GenIdentity()

	// fresh store with alice at 100 and bob at 10
	setup := func(t *testing.T) (ledger.KVStore, Controller) {
		db := store.MemStore()
		control := NewController(NewWalletBucket())
		require.NoError(t, control.Create(db, alice, "alice"))
		require.NoError(t, control.Create(db, bob, "bob"))
		require.NoError(t, control.Issue(db, alice, 100, nil))
		require.NoError(t, control.Issue(db, bob, 10, nil))
		return db, control
	}

	cases := map[string]struct {
		src     ledger.PublicKey
		dest    ledger.PublicKey
		amount  uint64
		wantErr *errors.Error
	}{
		"happy path": {
			src: alice, dest: bob, amount: 60,
		},
		"whole balance": {
			src: alice, dest: bob, amount: 100,
		},
		"missing sender": {
			src: nobody, dest: bob, amount: 5,
			wantErr: ErrSenderNotFound,
		},
		"missing receiver": {
			src: alice, dest: nobody, amount: 5,
			wantErr: ErrReceiverNotFound,
		},
		"insufficient funds": {
			src: alice, dest: bob, amount: 101,
			wantErr: ErrInsufficientFunds,
		},
		"self transfer": {
			src: alice, dest: alice, amount: 5,
			wantErr: ErrSameAccount,
		},
		"insufficient funds reported before self transfer": {
			src: alice, dest: alice, amount: 101,
			wantErr: ErrInsufficientFunds,
		},
		"missing sender reported before missing receiver": {
			src: nobody, dest: nobody, amount: 5,
			wantErr: ErrSenderNotFound,
		},
		"zero amount": {
			src: alice, dest: bob, amount: 0,
			wantErr: ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, control := setup(t)
			txhash := ledger.NewTxHash([]byte(testName))

			err := control.Move(db, tc.src, tc.dest, tc.amount, txhash)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			sender, err := control.Wallet(db, tc.src)
			require.NoError(t, err)
			assert.EqualValues(t, 100-tc.amount, sender.Balance)
			assert.EqualValues(t, 1, sender.HistoryLen)

			recipient, err := control.Wallet(db, tc.dest)
			require.NoError(t, err)
			assert.EqualValues(t, 10+tc.amount, recipient.Balance)
			assert.EqualValues(t, 1, recipient.HistoryLen)

			// both accounts got an indexed history entry
			for _, acct := range []ledger.PublicKey{tc.src, tc.dest} {
				raw, err := db.Get(HistoryKey(acct, 0))
				require.NoError(t, err)
				assert.EqualValues(t, txhash, ledger.TxHash(raw))
			}
		})
	}
}

func TestControllerIssue(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewWalletBucket())
	key := ledgertest.GenIdentity()

	err := control.Issue(db, key, 50, nil)
	assert.True(t, ErrReceiverNotFound.Is(err))

	require.NoError(t, control.Create(db, key, "alice"))

	err = control.Issue(db, key, 0, nil)
	assert.True(t, ErrInvalidAmount.Is(err))

	require.NoError(t, control.Issue(db, key, 50, nil))
	require.NoError(t, control.Issue(db, key, 25, ledger.NewTxHash([]byte("issue"))))

	w, err := control.Wallet(db, key)
	require.NoError(t, err)
	assert.EqualValues(t, 75, w.Balance)
	// only the hashed issuance shows up in the audit trail
	assert.EqualValues(t, 1, w.HistoryLen)

	total, err := control.TotalIssued(db)
	require.NoError(t, err)
	assert.EqualValues(t, 75, total)
}

func TestControllerConservation(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewWalletBucket())
	alice := ledgertest.GenIdentity()
	bob := ledgertest.GenIdentity()

	require.NoError(t, control.Create(db, alice, "alice"))
	require.NoError(t, control.Create(db, bob, "bob"))
	require.NoError(t, control.Issue(db, alice, 1000, nil))
	require.NoError(t, control.Issue(db, bob, 500, nil))

	for i := 0; i < 10; i++ {
		txhash := ledger.NewTxHash([]byte{byte(i)})
		require.NoError(t, control.Move(db, alice, bob, 7, txhash))
	}

	a, err := control.Wallet(db, alice)
	require.NoError(t, err)
	b, err := control.Wallet(db, bob)
	require.NoError(t, err)
	total, err := control.TotalIssued(db)
	require.NoError(t, err)
	assert.Equal(t, total, a.Balance+b.Balance)
}
