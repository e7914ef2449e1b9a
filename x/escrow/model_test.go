package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/ledgertest"
	"github.com/quorumnet/ledger/store"
)

func TestTransferValidate(t *testing.T) {
	ok := MultisigTransfer{
		ApprovedBy: []ledger.PublicKey{ledgertest.GenIdentity()},
		State:      State_IN_PROCESS,
	}
	assert.NoError(t, ok.Validate())

	empty := MultisigTransfer{State: State_DONE}
	assert.NoError(t, empty.Validate())

	badKey := MultisigTransfer{ApprovedBy: []ledger.PublicKey{[]byte("short")}}
	assert.Error(t, badKey.Validate())

	badState := MultisigTransfer{State: State(9)}
	assert.Error(t, badState.Validate())
}

func TestTransferCopy(t *testing.T) {
	x := ledgertest.GenIdentity()
	tr := &MultisigTransfer{
		ApprovedBy: []ledger.PublicKey{x},
		State:      State_IN_PROCESS,
	}
	cpy := tr.Copy().(*MultisigTransfer)
	assert.Equal(t, tr, cpy)

	cpy.ApprovedBy = append(cpy.ApprovedBy, ledgertest.GenIdentity())
	cpy.State = State_DONE
	assert.Len(t, tr.ApprovedBy, 1)
	assert.Equal(t, State_IN_PROCESS, tr.State)

	assert.True(t, tr.HasApproved(x))
	assert.False(t, tr.HasApproved(ledgertest.GenIdentity()))
}

func TestTransferBucketRoundtrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewTransferBucket()
	hash := ledger.NewTxHash([]byte("init op"))

	missing, err := bucket.GetTransfer(db, hash)
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved := &MultisigTransfer{
		ApprovedBy: []ledger.PublicKey{ledgertest.GenIdentity()},
		State:      State_IN_PROCESS,
	}
	require.NoError(t, bucket.Save(db, NewTransfer(hash, saved)))

	loaded, err := bucket.GetTransfer(db, hash)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, loaded)
}
