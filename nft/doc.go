/*
Package nft contains a non-divisible non-fungible token ledger contract.
Token identifiers are caller-chosen opaque strings minted to owning
accounts, with per-token metadata, delegated transfer approvals and
paginated enumeration of the whole collection and of per-owner holdings.

Minting is gated by a tri-state policy (closed, open, whitelisted)
switched by the contract owner; transfers are never gated. Every
mutating entry point is metered: the attached deposit must cover the
net growth of persisted storage at the configured per-byte price,
released storage and unused deposit are refunded to the caller.

Besides the plain transfer, the contract supports a transfer-and-notify
protocol: the token is moved to the receiver, the receiver account's
onTokenTransfer hook is invoked asynchronously and the transfer is
unwound if the hook rejects it, fails or is not implemented.

Contract notifications

Mint notification:

	Mint:
	  - name: owner
	    type: AccountID
	  - name: tokenID
	    type: String

Transfer notification:

	Transfer:
	  - name: from
	    type: AccountID
	  - name: to
	    type: AccountID
	  - name: tokenID
	    type: String
	  - name: memo
	    type: String

Burn notification:

	Burn:
	  - name: owner
	    type: AccountID
	  - name: tokenID
	    type: String

Approve notification:

	Approve:
	  - name: owner
	    type: AccountID
	  - name: approved
	    type: AccountID
	  - name: tokenID
	    type: String
	  - name: approvalID
	    type: Integer

Revoke notification:

	Revoke:
	  - name: owner
	    type: AccountID
	  - name: revoked
	    type: AccountID
	  - name: tokenID
	    type: String

SetMintPolicy notification:

	SetMintPolicy:
	  - name: policy
	    type: String
*/
package nft
