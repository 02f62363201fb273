package nft

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// MintPolicy gates the creation of new tokens. It never gates
// transfers.
type MintPolicy byte

const (
	// PolicyClosed refuses all minting. It is the initial policy.
	PolicyClosed MintPolicy = iota
	// PolicyOpen allows anyone to mint.
	PolicyOpen
	// PolicyWhitelisted allows minting only by whitelisted accounts.
	PolicyWhitelisted
)

// Mint policy literals accepted by setMintPolicy.
const (
	PolicyValueClosed      = "closed"
	PolicyValueOpen        = "open"
	PolicyValueWhitelisted = "whitelisted"
)

func (p MintPolicy) String() string {
	switch p {
	case PolicyClosed:
		return PolicyValueClosed
	case PolicyOpen:
		return PolicyValueOpen
	case PolicyWhitelisted:
		return PolicyValueWhitelisted
	}
	panic(ErrInvalidPolicyValue)
}

func parseMintPolicy(v string) MintPolicy {
	switch v {
	case PolicyValueClosed:
		return PolicyClosed
	case PolicyValueOpen:
		return PolicyOpen
	case PolicyValueWhitelisted:
		return PolicyWhitelisted
	}
	panic(ErrInvalidPolicyValue + ": " + v)
}

func getMintPolicy(s host.Storage) MintPolicy {
	var p byte
	common.GetSerialized(s, []byte{prefixMintPolicy}, &p)
	return MintPolicy(p)
}

func putMintPolicy(s host.Storage, p MintPolicy) {
	common.SetSerialized(s, []byte{prefixMintPolicy}, byte(p))
}

// contractOwner returns the designated owner account recorded at
// deploy.
func contractOwner(s host.Storage) host.AccountID {
	var owner host.AccountID
	if !common.GetSerialized(s, []byte{prefixContractOwner}, &owner) {
		panic(ErrNotInitialized)
	}
	return owner
}

// SetMintPolicy transitions the mint policy. Only the contract owner
// may call it; an unrecognized policy literal aborts the call.
func SetMintPolicy(env host.Env, policy string) {
	before := env.UsedStorage()
	s := env.Storage()
	common.CheckWitness(env, contractOwner(s))
	p := parseMintPolicy(policy)
	putMintPolicy(s, p)
	env.Notify(EventSetMintPolicy, PolicyEvent{Policy: p.String()})
	env.Log("mint policy set to %s", p)
	settleStorage(env, before)
}

// MintPolicyValue returns the current mint policy literal.
func MintPolicyValue(env host.Env) string {
	return getMintPolicy(env.Storage()).String()
}

// requireMintAllowed evaluates the mint gate for the current caller.
// The contract acting on its own behalf always may mint.
func requireMintAllowed(env host.Env) {
	if env.CallerAccount() == env.ContractAccount() {
		return
	}
	s := env.Storage()
	switch getMintPolicy(s) {
	case PolicyOpen:
		return
	case PolicyWhitelisted:
		caller := env.CallerAccount()
		for _, a := range getWhitelist(s) {
			if a == caller {
				return
			}
		}
		panic(ErrNotWhitelisted)
	default:
		panic(ErrMintingDisabled)
	}
}

func getWhitelist(s host.Storage) []host.AccountID {
	var list []host.AccountID
	common.GetSerialized(s, []byte{prefixWhitelist}, &list)
	return list
}

func putWhitelist(s host.Storage, list []host.AccountID) {
	if len(list) == 0 {
		s.Delete([]byte{prefixWhitelist})
		return
	}
	common.SetSerialized(s, []byte{prefixWhitelist}, list)
}

// AddWhitelistAccount appends an account to the mint whitelist. Only
// the contract owner may call it. Duplicate entries are permitted.
func AddWhitelistAccount(env host.Env, account host.AccountID) {
	before := env.UsedStorage()
	s := env.Storage()
	common.CheckWitness(env, contractOwner(s))
	checkAccount(account)
	putWhitelist(s, append(getWhitelist(s), account))
	settleStorage(env, before)
}

// RemoveWhitelistAccount removes the first matching whitelist entry.
// Removing an absent account is a no-op.
func RemoveWhitelistAccount(env host.Env, account host.AccountID) {
	before := env.UsedStorage()
	s := env.Storage()
	common.CheckWitness(env, contractOwner(s))
	list := getWhitelist(s)
	for i, a := range list {
		if a == account {
			putWhitelist(s, append(list[:i], list[i+1:]...))
			break
		}
	}
	settleStorage(env, before)
}

// WhitelistAccounts returns the whitelist in insertion order.
func WhitelistAccounts(env host.Env) []host.AccountID {
	return getWhitelist(env.Storage())
}
