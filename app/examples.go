package app

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/commands"
	"github.com/quorumnet/ledger/crypto"
	"github.com/quorumnet/ledger/x/escrow"
	"github.com/quorumnet/ledger/x/txlog"
	"github.com/quorumnet/ledger/x/wallet"
)

func mustKeyPair(seed byte) crypto.KeyPair {
	bz := make([]byte, crypto.SeedLength)
	for i := range bz {
		bz[i] = seed
	}
	pair, err := crypto.KeyPairFromSeed(bz)
	if err != nil {
		panic(err)
	}
	return pair
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	alice := mustKeyPair(1).PublicKey()
	bob := mustKeyPair(2).PublicKey()
	carl := mustKeyPair(3).PublicKey()

	acct := &wallet.Wallet{
		PubKey:  alice,
		Name:    "alice",
		Balance: 123456789,
	}

	send := &wallet.SendMsg{
		To:     bob,
		Amount: 250,
		Seed:   1,
	}
	sendTx := &Tx{
		Author: alice,
		Sum:    &Tx_SendMsg{send},
	}
	raw, err := sendTx.Marshal()
	if err != nil {
		panic(err)
	}
	sendHash := ledger.NewTxHash(raw)

	initiate := &escrow.TransferMultisigMsg{
		To:        bob,
		Approvers: []ledger.PublicKey{carl},
		Amount:    500,
		Seed:      2,
	}
	approve := &escrow.ApproveTransferMsg{TxHash: sendHash}
	held := &escrow.MultisigTransfer{
		ApprovedBy: []ledger.PublicKey{carl},
		State:      escrow.State_DONE,
	}

	record := &txlog.TxRecord{
		Position: 7,
		Author:   alice,
		Raw:      raw,
		Result:   0,
	}

	return []commands.Example{
		{Filename: "wallet", Obj: acct},
		{Filename: "create_wallet_msg", Obj: &wallet.CreateWalletMsg{Name: "alice"}},
		{Filename: "issue_msg", Obj: &wallet.IssueMsg{Amount: 1000, Seed: 3}},
		{Filename: "send_msg", Obj: send},
		{Filename: "send_tx", Obj: sendTx},
		{Filename: "initiate_msg", Obj: initiate},
		{Filename: "approve_msg", Obj: approve},
		{Filename: "multisig_transfer", Obj: held},
		{Filename: "tx_record", Obj: record},
	}
}
