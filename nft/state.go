package nft

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains the number of live tokens.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from owner to the number of tokens
	// owned.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (length-prefixed owner +
	// token id) to token id, the per-owner enumeration set.
	prefixAccountToken byte = 0x02
	// prefixEnumSeq contains map from big-endian insertion sequence
	// number to token id, the global enumeration in insertion order.
	prefixEnumSeq byte = 0x03
	// prefixTokenSeq contains map from token id to its insertion
	// sequence number, the reverse lookup used on burn.
	prefixTokenSeq byte = 0x04
	// prefixToken contains map from token id to the TokenState
	// structure, the source of truth for ownership.
	prefixToken byte = 0x05
	// prefixBurned contains tombstones of burned token ids.
	prefixBurned byte = 0x06
	// prefixPending contains map from pending transfer id to the
	// PendingTransfer compensation record persisted across the
	// suspend point of a transfer-and-notify call.
	prefixPending byte = 0x07
	// prefixContractMetadata contains the collection metadata
	// singleton.
	prefixContractMetadata byte = 0x10
	// prefixContractOwner contains the designated owner account.
	prefixContractOwner byte = 0x11
	// prefixMintPolicy contains the current mint policy value.
	prefixMintPolicy byte = 0x12
	// prefixWhitelist contains the mint whitelist as an ordered list,
	// duplicates allowed.
	prefixWhitelist byte = 0x13
	// prefixEnumCounter contains the next insertion sequence number.
	prefixEnumCounter byte = 0x14
	// prefixVersion contains the deployed contract version, checked on
	// update.
	prefixVersion byte = 0x15
)

// Value constraints.
const (
	// maxTokenIDLength is the maximum length of a token id.
	maxTokenIDLength = 128
	// referenceHashLength is the required length of a metadata
	// reference integrity hash.
	referenceHashLength = 32
)

// TokenState is the persisted per-token record.
type TokenState struct {
	Owner          host.AccountID
	Metadata       TokenMetadata
	Approvals      map[host.AccountID]uint64
	NextApprovalID uint64
}

// Token is the caller-facing view of a token.
type Token struct {
	TokenID            string                    `json:"token_id"`
	OwnerID            host.AccountID            `json:"owner_id"`
	Metadata           TokenMetadata             `json:"metadata"`
	ApprovedAccountIDs map[host.AccountID]uint64 `json:"approved_account_ids,omitempty"`
}

// PendingTransfer is the durable compensation record of a
// transfer-and-notify call, written before the suspend point and
// consumed by the resolve callback.
type PendingTransfer struct {
	TokenID           string
	PreviousOwner     host.AccountID
	PreviousApprovals map[host.AccountID]uint64
	Receiver          host.AccountID
}

func tokenStateKey(tokenID string) []byte {
	return append([]byte{prefixToken}, tokenID...)
}

func burnedKey(tokenID string) []byte {
	return append([]byte{prefixBurned}, tokenID...)
}

func pendingKey(id string) []byte {
	return append([]byte{prefixPending}, id...)
}

// getTokenState returns the stored state of the token or nil if the
// token does not exist.
func getTokenState(s host.Storage, tokenID string) *TokenState {
	var st TokenState
	if !common.GetSerialized(s, tokenStateKey(tokenID), &st) {
		return nil
	}
	return &st
}

// mustTokenState returns the stored state of the token and panics with
// ErrTokenNotFound if there is none.
func mustTokenState(s host.Storage, tokenID string) *TokenState {
	st := getTokenState(s, tokenID)
	if st == nil {
		panic(ErrTokenNotFound)
	}
	return st
}

func putTokenState(s host.Storage, tokenID string, st *TokenState) {
	common.SetSerialized(s, tokenStateKey(tokenID), st)
}

func (st *TokenState) view(tokenID string) Token {
	return Token{
		TokenID:            tokenID,
		OwnerID:            st.Owner,
		Metadata:           st.Metadata,
		ApprovedAccountIDs: st.Approvals,
	}
}

func checkTokenID(tokenID string) {
	if tokenID == "" || len(tokenID) > maxTokenIDLength {
		panic(ErrInvalidArgument + ": bad token id")
	}
}

func checkAccount(account host.AccountID) {
	if !account.Valid() {
		panic(ErrInvalidArgument + ": bad account id")
	}
}
