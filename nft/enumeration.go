package nft

import (
	"encoding/binary"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// The enumeration index is maintained synchronously with every token
// store mutation, so it can never observe a state it has not caught up
// with. Pagination uses a stable offset: deletions happening between
// paged calls may shift subsequent results, there is no snapshot
// isolation across calls.

func enumSeqKey(seq uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = prefixEnumSeq
	binary.BigEndian.PutUint64(key[1:], seq)
	return key
}

func tokenSeqKey(tokenID string) []byte {
	return append([]byte{prefixTokenSeq}, tokenID...)
}

// accountTokenPrefix builds the per-owner namespace of the enumeration
// set. Account and token ids are opaque byte strings, so the owner is
// length-prefixed: without it, owner+tokenID concatenations of
// different owners could collide on the same key.
func accountTokenPrefix(owner host.AccountID) []byte {
	key := append([]byte{prefixAccountToken}, byte(len(owner)))
	return append(key, owner...)
}

func accountTokenKey(owner host.AccountID, tokenID string) []byte {
	return append(accountTokenPrefix(owner), tokenID...)
}

func balanceKey(owner host.AccountID) []byte {
	return append([]byte{prefixBalance}, owner...)
}

// enumAppend records a freshly minted token at the tail of the global
// enumeration.
func enumAppend(s host.Storage, tokenID string) {
	seq := common.GetUint64(s, []byte{prefixEnumCounter})
	s.Put(enumSeqKey(seq), []byte(tokenID))
	common.SetSerialized(s, tokenSeqKey(tokenID), seq)
	common.SetSerialized(s, []byte{prefixEnumCounter}, seq+1)
}

// enumRemove removes a burned token from the global enumeration.
func enumRemove(s host.Storage, tokenID string) {
	var seq uint64
	if !common.GetSerialized(s, tokenSeqKey(tokenID), &seq) {
		panic(ErrTokenNotFound)
	}
	s.Delete(enumSeqKey(seq))
	s.Delete(tokenSeqKey(tokenID))
}

// accountAdd inserts the token into the owner's enumeration set and
// bumps the owner's balance.
func accountAdd(s host.Storage, owner host.AccountID, tokenID string) {
	s.Put(accountTokenKey(owner, tokenID), []byte(tokenID))
	key := balanceKey(owner)
	common.PutUint64(s, key, common.GetUint64(s, key)+1)
}

// accountRemove drops the token from the owner's enumeration set and
// decrements the owner's balance. A zero balance is deleted from
// storage.
func accountRemove(s host.Storage, owner host.AccountID, tokenID string) {
	s.Delete(accountTokenKey(owner, tokenID))
	key := balanceKey(owner)
	common.PutUint64(s, key, common.GetUint64(s, key)-1)
}

func updateTotalSupply(s host.Storage, diff int64) {
	key := []byte{prefixTotalSupply}
	common.PutUint64(s, key, uint64(int64(common.GetUint64(s, key))+diff))
}

// TotalSupply returns the number of live tokens.
func TotalSupply(env host.Env) uint64 {
	return common.GetUint64(env.Storage(), []byte{prefixTotalSupply})
}

// BalanceOf returns the number of tokens owned by the account.
func BalanceOf(env host.Env, owner host.AccountID) uint64 {
	checkAccount(owner)
	return common.GetUint64(env.Storage(), balanceKey(owner))
}

func checkLimit(limit int) {
	if limit <= 0 {
		panic(ErrInvalidArgument + ": limit must be positive")
	}
}

// Tokens returns up to limit tokens of the global enumeration starting
// at fromIndex, in insertion order.
func Tokens(env host.Env, fromIndex uint64, limit int) []Token {
	checkLimit(limit)
	s := env.Storage()
	tokens := []Token{}
	var skipped uint64
	s.Seek([]byte{prefixEnumSeq}, func(_, value []byte) bool {
		if skipped < fromIndex {
			skipped++
			return true
		}
		id := string(value)
		tokens = append(tokens, mustTokenState(s, id).view(id))
		return len(tokens) < limit
	})
	return tokens
}

// TokensOf returns up to limit tokens owned by the account starting at
// fromIndex.
func TokensOf(env host.Env, owner host.AccountID, fromIndex uint64, limit int) []Token {
	checkAccount(owner)
	checkLimit(limit)
	s := env.Storage()
	prefix := accountTokenPrefix(owner)
	tokens := []Token{}
	var skipped uint64
	s.Seek(prefix, func(_, value []byte) bool {
		if skipped < fromIndex {
			skipped++
			return true
		}
		id := string(value)
		tokens = append(tokens, mustTokenState(s, id).view(id))
		return len(tokens) < limit
	})
	return tokens
}
