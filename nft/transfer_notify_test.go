package nft_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
	"github.com/qstn-network/nft-contract/internal/testcontracts/nftrecv"
	"github.com/qstn-network/nft-contract/nft"
	"github.com/qstn-network/nft-contract/runtime"
)

const recvAcct = host.AccountID("recv.app")

// newNotifyLedger is newLedger plus a receiver contract implementing
// the onTokenTransfer hook.
func newNotifyLedger(t *testing.T) *ledger {
	t.Helper()
	l := newLedger(t)
	require.NoError(t, l.RT.Register(recvAcct, nftrecv.Methods(), runtime.NewMemStore()))
	l.RT.NewAccount(recvAcct, accountFunds)
	return l
}

func notifyArgs(payload string) nft.TransferNotifyArgs {
	a := nft.TransferNotifyArgs{Receiver: recvAcct, TokenID: "t1", Memo: "hello"}
	if payload != "" {
		a.Payload = []byte(payload)
	}
	return a
}

func (l *ledger) requireOwner(t *testing.T, tokenID string, owner host.AccountID) {
	t.Helper()
	var tok *nft.Token
	data, err := l.query(ownerAcct).Call(nft.MethodGetToken, nft.TokenArgs{TokenID: tokenID})
	require.NoError(t, err)
	require.NoError(t, common.Unmarshal(data, &tok))
	require.NotNil(t, tok)
	require.Equal(t, owner, tok.OwnerID)
}

func TestTransferNotifyAccepted(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(aliceAcct).Invoke(t, true, nft.MethodTransferNotify, notifyArgs("keep"))
	l.requireOwner(t, "t1", recvAcct)
	l.query(ownerAcct).Invoke(t, uint64(1), nft.MethodBalanceOf, nft.OwnerArgs{Owner: recvAcct})

	// The receiver saw the acknowledgment request.
	recv := runtime.NewInvoker(l.RT, recvAcct, ownerAcct)
	recv.Invoke(t, nftrecv.Call{
		Sender:        aliceAcct,
		PreviousOwner: aliceAcct,
		TokenID:       "t1",
		Payload:       []byte("keep"),
	}, "lastCall", nil)

	// The previous owner lost all rights with the commit.
	l.as(aliceAcct).InvokeFail(t, nft.ErrNotAuthorized, nft.MethodTransferNotify, notifyArgs("keep"))
}

func TestTransferNotifyRejected(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)
	l.as(aliceAcct).Invoke(t, uint64(0), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})

	l.as(aliceAcct).Invoke(t, false, nft.MethodTransferNotify, notifyArgs("reject"))

	// The transfer was unwound, approvals included.
	l.requireOwner(t, "t1", aliceAcct)
	q := l.query(ownerAcct)
	q.Invoke(t, uint64(0), nft.MethodBalanceOf, nft.OwnerArgs{Owner: recvAcct})
	q.Invoke(t, true, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct, ApprovalID: u64ptr(0)})

	data, err := q.Call(nft.MethodTokensOf, nft.OwnerPageArgs{Owner: recvAcct, Limit: 10})
	require.NoError(t, err)
	var toks []nft.Token
	require.NoError(t, common.Unmarshal(data, &toks))
	require.Empty(t, toks)

	require.Contains(t, l.RT.Events(), runtime.Event{
		Contract: ledgerAcct,
		Name:     nft.EventTransfer,
		Body:     nft.TransferEvent{From: recvAcct, To: aliceAcct, TokenID: "t1", Memo: "revert"},
	})
}

func TestTransferNotifyHookFailure(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(aliceAcct).Invoke(t, false, nft.MethodTransferNotify, notifyArgs("panic"))
	l.requireOwner(t, "t1", aliceAcct)
}

func TestTransferNotifyPlainReceiver(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)

	// An account without a hook cannot acknowledge; the transfer is
	// unwound.
	args := notifyArgs("keep")
	args.Receiver = carolAcct
	l.as(aliceAcct).Invoke(t, false, nft.MethodTransferNotify, args)
	l.requireOwner(t, "t1", aliceAcct)
}

func TestTransferNotifyTimeout(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)

	// A hook that never answers counts as rejection.
	l.RT.TimeoutNext(recvAcct)
	l.as(aliceAcct).Invoke(t, false, nft.MethodTransferNotify, notifyArgs("keep"))
	l.requireOwner(t, "t1", aliceAcct)
}

func TestTransferNotifyInterimMove(t *testing.T) {
	l := newNotifyLedger(t)
	l.mint(t, "t1", aliceAcct)

	// Commit the ownership change but hold the queue before the hook
	// runs.
	outer := l.RT.Submit(aliceAcct, ledgerAcct, nft.MethodTransferNotify,
		common.MarshalPanic(notifyArgs("reject")), uint256.NewInt(callDeposit))
	require.True(t, l.RT.Step())
	l.requireOwner(t, "t1", recvAcct)

	// The receiver forwards the token before rejecting it.
	l.RT.SubmitUrgent(recvAcct, ledgerAcct, nft.MethodTransfer,
		common.MarshalPanic(nft.TransferArgs{Receiver: carolAcct, TokenID: "t1"}), uint256.NewInt(callDeposit))
	l.RT.Drain()

	// The rejection must not clobber the forward: the token is no
	// longer where the commit left it.
	data, err := outer.Result()
	require.NoError(t, err)
	var kept bool
	require.NoError(t, common.Unmarshal(data, &kept))
	require.False(t, kept)
	l.requireOwner(t, "t1", carolAcct)
}

func TestResolveTransferIsPrivate(t *testing.T) {
	l := newNotifyLedger(t)
	l.as(aliceAcct).InvokeFail(t, common.ErrSelfWitnessFailed, nft.MethodResolveTransfer, nil)
}
