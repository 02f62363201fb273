package nft

import (
	"sort"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Approvals delegate transfer rights for a single token. Every grant
// allocates a fresh id from a per-token monotonic counter; the id is
// never reissued within the token's lifetime, which closes the replay
// window between a revoke and a later re-grant of the same account
// slot.

// Approve grants account the right to transfer the token and returns
// the allocated approval id. Re-approving an already approved account
// refreshes its id, invalidating the previous one.
func Approve(env host.Env, tokenID string, account host.AccountID) uint64 {
	before := env.UsedStorage()
	s := env.Storage()
	st := mustTokenState(s, tokenID)
	common.CheckOwnerWitness(env, st.Owner)
	checkAccount(account)

	id := st.NextApprovalID
	if st.Approvals == nil {
		st.Approvals = map[host.AccountID]uint64{}
	}
	st.Approvals[account] = id
	st.NextApprovalID++
	putTokenState(s, tokenID, st)

	env.Notify(EventApprove, ApproveEvent{
		Owner:      st.Owner,
		Approved:   account,
		TokenID:    tokenID,
		ApprovalID: id,
	})
	settleStorage(env, before)
	return id
}

// Revoke withdraws the approval of account. Revoking an account that
// holds no approval is a no-op, not an error.
func Revoke(env host.Env, tokenID string, account host.AccountID) {
	before := env.UsedStorage()
	s := env.Storage()
	st := mustTokenState(s, tokenID)
	common.CheckOwnerWitness(env, st.Owner)

	if _, ok := st.Approvals[account]; ok {
		delete(st.Approvals, account)
		if len(st.Approvals) == 0 {
			st.Approvals = nil
		}
		putTokenState(s, tokenID, st)
		env.Notify(EventRevoke, RevokeEvent{Owner: st.Owner, Revoked: account, TokenID: tokenID})
	}
	settleStorage(env, before)
}

// RevokeAll withdraws every outstanding approval of the token.
func RevokeAll(env host.Env, tokenID string) {
	before := env.UsedStorage()
	s := env.Storage()
	st := mustTokenState(s, tokenID)
	common.CheckOwnerWitness(env, st.Owner)

	if len(st.Approvals) > 0 {
		accounts := make([]host.AccountID, 0, len(st.Approvals))
		for account := range st.Approvals {
			accounts = append(accounts, account)
		}
		// Map iteration order must not leak into the notification log.
		sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })
		for _, account := range accounts {
			env.Notify(EventRevoke, RevokeEvent{Owner: st.Owner, Revoked: account, TokenID: tokenID})
		}
		st.Approvals = nil
		putTokenState(s, tokenID, st)
	}
	settleStorage(env, before)
}

// IsApproved reports whether account holds a currently valid approval
// for the token. With a non-nil approvalID the stored id must match
// exactly.
func IsApproved(env host.Env, tokenID string, account host.AccountID, approvalID *uint64) bool {
	st := mustTokenState(env.Storage(), tokenID)
	return st.approvalMatches(account, approvalID)
}

func (st *TokenState) approvalMatches(account host.AccountID, approvalID *uint64) bool {
	stored, ok := st.Approvals[account]
	if !ok {
		return false
	}
	return approvalID == nil || *approvalID == stored
}
