package nft

import "github.com/qstn-network/nft-contract/host"

// Notification names emitted by the contract.
const (
	EventMint          = "Mint"
	EventTransfer      = "Transfer"
	EventBurn          = "Burn"
	EventApprove       = "Approve"
	EventRevoke        = "Revoke"
	EventSetMintPolicy = "SetMintPolicy"
)

// MintEvent is the body of the Mint notification.
type MintEvent struct {
	Owner   host.AccountID `json:"owner"`
	TokenID string         `json:"token_id"`
}

// TransferEvent is the body of the Transfer notification. A reverted
// transfer-and-notify emits a second Transfer back to the previous
// owner.
type TransferEvent struct {
	From    host.AccountID `json:"from"`
	To      host.AccountID `json:"to"`
	TokenID string         `json:"token_id"`
	Memo    string         `json:"memo,omitempty"`
}

// BurnEvent is the body of the Burn notification.
type BurnEvent struct {
	Owner   host.AccountID `json:"owner"`
	TokenID string         `json:"token_id"`
}

// ApproveEvent is the body of the Approve notification.
type ApproveEvent struct {
	Owner      host.AccountID `json:"owner"`
	Approved   host.AccountID `json:"approved"`
	TokenID    string         `json:"token_id"`
	ApprovalID uint64         `json:"approval_id"`
}

// RevokeEvent is the body of the Revoke notification.
type RevokeEvent struct {
	Owner   host.AccountID `json:"owner"`
	Revoked host.AccountID `json:"revoked"`
	TokenID string         `json:"token_id"`
}

// PolicyEvent is the body of the SetMintPolicy notification.
type PolicyEvent struct {
	Policy string `json:"policy"`
}
