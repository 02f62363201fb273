package nft_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
	"github.com/qstn-network/nft-contract/nft"
)

func TestApprovalIDs(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)
	alice := l.as(aliceAcct)

	alice.Invoke(t, uint64(0), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	alice.Invoke(t, uint64(1), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: carolAcct})
	// Re-approving refreshes the account's id; the old one no longer
	// matches.
	alice.Invoke(t, uint64(2), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})

	q := l.query(aliceAcct)
	q.Invoke(t, true, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct, ApprovalID: u64ptr(0)})
	q.Invoke(t, true, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct, ApprovalID: u64ptr(2)})
	q.Invoke(t, true, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: carolAcct, ApprovalID: u64ptr(1)})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: ownerAcct})
}

func TestApproveRequiresOwner(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)

	l.as(bobAcct).InvokeFail(t, common.ErrOwnerWitnessFailed,
		nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	l.as(aliceAcct).InvokeFail(t, nft.ErrTokenNotFound,
		nft.MethodApprove, nft.ApprovalArgs{TokenID: "nope", Account: bobAcct})
}

func TestRevoke(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)
	alice := l.as(aliceAcct)
	q := l.query(aliceAcct)

	alice.Invoke(t, uint64(0), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	l.as(bobAcct).InvokeFail(t, common.ErrOwnerWitnessFailed,
		nft.MethodRevoke, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})

	alice.Invoke(t, nil, nft.MethodRevoke, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct})

	// Revoking an account that holds no approval is a no-op.
	alice.Invoke(t, nil, nft.MethodRevoke, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})

	// A later grant draws a fresh id; the revoked one stays dead.
	alice.Invoke(t, uint64(1), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct, ApprovalID: u64ptr(0)})
	q.Invoke(t, true, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct, ApprovalID: u64ptr(1)})
}

func TestRevokeAll(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)
	alice := l.as(aliceAcct)

	alice.Invoke(t, uint64(0), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: carolAcct})
	alice.Invoke(t, uint64(1), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: ownerAcct})
	alice.Invoke(t, uint64(2), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
	alice.Invoke(t, nil, nft.MethodRevokeAll, nft.TokenArgs{TokenID: "t1"})

	q := l.query(aliceAcct)
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: bobAcct})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: carolAcct})
	q.Invoke(t, false, nft.MethodIsApproved, nft.IsApprovedArgs{TokenID: "t1", Account: ownerAcct})

	// One Revoke notification per approval, in account order rather
	// than map order.
	var revoked []host.AccountID
	for _, ev := range l.RT.Events() {
		if ev.Name == nft.EventRevoke {
			revoked = append(revoked, ev.Body.(nft.RevokeEvent).Revoked)
		}
	}
	require.Equal(t, []host.AccountID{bobAcct, carolAcct, ownerAcct}, revoked)

	// The id counter survives revocation.
	alice.Invoke(t, uint64(3), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})
}

func TestApprovedTransfer(t *testing.T) {
	l := newLedger(t)
	l.mint(t, "t1", aliceAcct)
	l.as(aliceAcct).Invoke(t, uint64(0), nft.MethodApprove, nft.ApprovalArgs{TokenID: "t1", Account: bobAcct})

	// The optional approval id must match the stored one exactly.
	l.as(bobAcct).InvokeFail(t, nft.ErrNotAuthorized,
		nft.MethodTransfer, nft.TransferArgs{Receiver: carolAcct, TokenID: "t1", ApprovalID: u64ptr(7)})
	l.as(bobAcct).Invoke(t, nil,
		nft.MethodTransfer, nft.TransferArgs{Receiver: carolAcct, TokenID: "t1", ApprovalID: u64ptr(0)})

	expected := nft.Token{TokenID: "t1", OwnerID: carolAcct, Metadata: testMetadata("t1")}
	l.query(aliceAcct).Invoke(t, &expected, nft.MethodGetToken, nft.TokenArgs{TokenID: "t1"})

	// The transfer consumed every approval of the token.
	l.as(bobAcct).InvokeFail(t, nft.ErrNotAuthorized,
		nft.MethodTransfer, nft.TransferArgs{Receiver: aliceAcct, TokenID: "t1"})
}
