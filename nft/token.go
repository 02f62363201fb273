package nft

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Mint creates a new token owned by receiver, subject to the mint gate.
// The token id is caller-chosen and must never have been used before,
// burned ids included.
func Mint(env host.Env, tokenID string, receiver host.AccountID, metadata TokenMetadata) Token {
	before := env.UsedStorage()
	s := env.Storage()
	getContractMetadata(s) // deploy guard

	requireMintAllowed(env)
	checkTokenID(tokenID)
	checkAccount(receiver)
	metadata.checkValid()

	if s.Get(tokenStateKey(tokenID)) != nil {
		panic(ErrDuplicateTokenID)
	}
	if s.Get(burnedKey(tokenID)) != nil {
		panic(ErrTokenBurned)
	}

	st := &TokenState{
		Owner:    receiver,
		Metadata: metadata,
	}
	putTokenState(s, tokenID, st)
	enumAppend(s, tokenID)
	accountAdd(s, receiver, tokenID)
	updateTotalSupply(s, +1)

	env.Notify(EventMint, MintEvent{Owner: receiver, TokenID: tokenID})
	settleStorage(env, before)
	return st.view(tokenID)
}

// Burn removes a token from the ledger. Only the current owner may
// burn; approvals do not extend to burning. The freed storage is
// refunded to the caller and the token id is tombstoned against reuse.
func Burn(env host.Env, tokenID string) {
	before := env.UsedStorage()
	s := env.Storage()
	st := mustTokenState(s, tokenID)
	common.CheckOwnerWitness(env, st.Owner)

	s.Delete(tokenStateKey(tokenID))
	enumRemove(s, tokenID)
	accountRemove(s, st.Owner, tokenID)
	updateTotalSupply(s, -1)
	s.Put(burnedKey(tokenID), []byte{1})

	env.Notify(EventBurn, BurnEvent{Owner: st.Owner, TokenID: tokenID})
	settleStorage(env, before)
}

// GetToken returns the token view or nil if the token does not exist.
func GetToken(env host.Env, tokenID string) *Token {
	st := getTokenState(env.Storage(), tokenID)
	if st == nil {
		return nil
	}
	t := st.view(tokenID)
	return &t
}
