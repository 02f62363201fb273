package nft_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qstn-network/nft-contract/nft"
	"github.com/qstn-network/nft-contract/runtime"
)

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(aliceAcct).Invoke(t, nil,
		nft.MethodTransfer, nft.TransferArgs{Receiver: bobAcct, TokenID: "t1", Memo: "gift"})

	q := l.query(aliceAcct)
	expected := nft.Token{TokenID: "t1", OwnerID: bobAcct, Metadata: testMetadata("t1")}
	q.Invoke(t, &expected, nft.MethodGetToken, nft.TokenArgs{TokenID: "t1"})
	q.Invoke(t, uint64(0), nft.MethodBalanceOf, nft.OwnerArgs{Owner: aliceAcct})
	q.Invoke(t, uint64(1), nft.MethodBalanceOf, nft.OwnerArgs{Owner: bobAcct})
	q.Invoke(t, []nft.Token{expected}, nft.MethodTokensOf, nft.OwnerPageArgs{Owner: bobAcct, Limit: 10})

	require.Contains(t, l.RT.Events(), runtime.Event{
		Contract: ledgerAcct,
		Name:     nft.EventTransfer,
		Body:     nft.TransferEvent{From: aliceAcct, To: bobAcct, TokenID: "t1", Memo: "gift"},
	})
}

func TestTransferSameOwner(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(aliceAcct).InvokeFail(t, nft.ErrSameOwner,
		nft.MethodTransfer, nft.TransferArgs{Receiver: aliceAcct, TokenID: "t1"})
}

func TestTransferUnauthorized(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)

	before := l.Store.Dump()
	l.as(carolAcct).InvokeFail(t, nft.ErrNotAuthorized,
		nft.MethodTransfer, nft.TransferArgs{Receiver: carolAcct, TokenID: "t1"})
	// A failed call leaves the ledger byte for byte as it was.
	require.Equal(t, before, l.Store.Dump())
}

func TestTransferValidation(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(aliceAcct).InvokeFail(t, nft.ErrTokenNotFound,
		nft.MethodTransfer, nft.TransferArgs{Receiver: bobAcct, TokenID: "nope"})
	l.as(aliceAcct).InvokeFail(t, nft.ErrInvalidArgument,
		nft.MethodTransfer, nft.TransferArgs{Receiver: "", TokenID: "t1"})
}
