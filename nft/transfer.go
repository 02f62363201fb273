package nft

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// revertMemo marks the compensating Transfer notification of a rejected
// transfer-and-notify.
const revertMemo = "revert"

// OnTransferArgs is the payload delivered to the receiver account's
// onTokenTransfer hook. The hook returns true to keep the token and
// false to return it; any failure counts as rejection.
type OnTransferArgs struct {
	Sender        host.AccountID `json:"sender"`
	PreviousOwner host.AccountID `json:"previous_owner"`
	TokenID       string         `json:"token_id"`
	Payload       []byte         `json:"payload,omitempty"`
}

type resolveTransferArgs struct {
	PendingID string
}

// Transfer moves the token to receiver within a single synchronous
// call. The sender must be the current owner or hold a valid approval;
// with a non-nil approvalID the stored approval id must match exactly.
// All outstanding approvals are cleared on success, they were scoped to
// the previous owner's trust decision.
func Transfer(env host.Env, receiver host.AccountID, tokenID string, approvalID *uint64, memo string) {
	before := env.UsedStorage()
	prev, _ := applyTransfer(env, tokenID, env.CallerAccount(), receiver, approvalID)
	env.Notify(EventTransfer, TransferEvent{From: prev, To: receiver, TokenID: tokenID, Memo: memo})
	settleStorage(env, before)
}

// TransferNotify is the transfer-and-notify protocol. The ownership
// change commits eagerly exactly as in Transfer, a durable compensation
// record is written, and the receiver's onTokenTransfer hook is invoked
// asynchronously. ResolveTransfer finalizes or unwinds once the hook's
// outcome is known. The value of the call is the resolve callback's
// value: whether the token ended up at the receiver.
func TransferNotify(env host.Env, receiver host.AccountID, tokenID string, approvalID *uint64, memo string, payload []byte) interface{} {
	before := env.UsedStorage()
	sender := env.CallerAccount()
	prev, prevApprovals := applyTransfer(env, tokenID, sender, receiver, approvalID)
	env.Notify(EventTransfer, TransferEvent{From: prev, To: receiver, TokenID: tokenID, Memo: memo})

	s := env.IssueCall(receiver, MethodOnTokenTransfer, common.MarshalPanic(OnTransferArgs{
		Sender:        sender,
		PreviousOwner: prev,
		TokenID:       tokenID,
		Payload:       payload,
	}))
	common.SetSerialized(env.Storage(), pendingKey(s.ID), PendingTransfer{
		TokenID:           tokenID,
		PreviousOwner:     prev,
		PreviousApprovals: prevApprovals,
		Receiver:          receiver,
	})
	env.Then(s, MethodResolveTransfer, common.MarshalPanic(resolveTransferArgs{PendingID: s.ID}))

	settleStorage(env, before)
	return s
}

// ResolveTransfer is the contract-private resolve callback of
// TransferNotify. Rejection, failure, a missing hook and a timeout are
// treated uniformly: the transfer is unwound, but only if the token is
// still where the commit phase left it. A token moved or burned by a
// call that ran between the commit and this callback is left intact, a
// blind revert would clobber the later legitimate state. Returns
// whether the token ended up at the receiver.
func ResolveTransfer(env host.Env, pendingID string) bool {
	common.CheckSelfWitness(env)
	s := env.Storage()

	var pend PendingTransfer
	if !common.GetSerialized(s, pendingKey(pendingID), &pend) {
		panic(ErrPendingNotFound)
	}
	s.Delete(pendingKey(pendingID))

	keep := false
	if data, ok := env.PromiseResult(); ok {
		// A malformed hook response counts as rejection.
		if err := common.Unmarshal(data, &keep); err != nil {
			keep = false
		}
	}

	st := getTokenState(s, pend.TokenID)
	atReceiver := st != nil && st.Owner == pend.Receiver
	if keep || !atReceiver {
		return atReceiver
	}

	st.Owner = pend.PreviousOwner
	st.Approvals = pend.PreviousApprovals
	putTokenState(s, pend.TokenID, st)
	accountRemove(s, pend.Receiver, pend.TokenID)
	accountAdd(s, pend.PreviousOwner, pend.TokenID)
	env.Notify(EventTransfer, TransferEvent{
		From:    pend.Receiver,
		To:      pend.PreviousOwner,
		TokenID: pend.TokenID,
		Memo:    revertMemo,
	})
	env.Log("transfer of %s to %s reverted", pend.TokenID, pend.Receiver)
	return false
}

// applyTransfer performs the ownership change shared by the synchronous
// and the notify transfer variants and returns the previous owner with
// its approval map for possible compensation.
func applyTransfer(env host.Env, tokenID string, sender, receiver host.AccountID, approvalID *uint64) (host.AccountID, map[host.AccountID]uint64) {
	checkAccount(receiver)
	s := env.Storage()
	st := mustTokenState(s, tokenID)
	if sender != st.Owner && !st.approvalMatches(sender, approvalID) {
		panic(ErrNotAuthorized)
	}
	if st.Owner == receiver {
		panic(ErrSameOwner)
	}

	prev := st.Owner
	prevApprovals := st.Approvals
	st.Owner = receiver
	st.Approvals = nil
	putTokenState(s, tokenID, st)
	accountRemove(s, prev, tokenID)
	accountAdd(s, receiver, tokenID)
	return prev, prevApprovals
}
