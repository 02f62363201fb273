package nft

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Entry-point names of the contract.
const (
	MethodDeploy                 = "_deploy"
	MethodMint                   = "mint"
	MethodTransfer               = "transfer"
	MethodTransferNotify         = "transferNotify"
	MethodResolveTransfer        = "resolveTransfer"
	MethodOnTokenTransfer        = "onTokenTransfer"
	MethodApprove                = "approve"
	MethodRevoke                 = "revoke"
	MethodRevokeAll              = "revokeAll"
	MethodBurn                   = "burn"
	MethodGetToken               = "getToken"
	MethodTokens                 = "tokens"
	MethodTokensOf               = "tokensOf"
	MethodTotalSupply            = "totalSupply"
	MethodBalanceOf              = "balanceOf"
	MethodIsApproved             = "isApproved"
	MethodMetadata               = "metadata"
	MethodSetMintPolicy          = "setMintPolicy"
	MethodMintPolicy             = "mintPolicy"
	MethodAddWhitelistAccount    = "addWhitelistAccount"
	MethodRemoveWhitelistAccount = "removeWhitelistAccount"
	MethodWhitelistAccounts      = "whitelistAccounts"
)

// DeployArgs initializes or updates the contract.
type DeployArgs struct {
	Owner    host.AccountID
	Metadata ContractMetadata
	Update   bool
}

// MintArgs are the arguments of mint.
type MintArgs struct {
	TokenID  string
	Receiver host.AccountID
	Metadata TokenMetadata
}

// TransferArgs are the arguments of transfer.
type TransferArgs struct {
	Receiver   host.AccountID
	TokenID    string
	ApprovalID *uint64
	Memo       string
}

// TransferNotifyArgs are the arguments of transferNotify.
type TransferNotifyArgs struct {
	Receiver   host.AccountID
	TokenID    string
	ApprovalID *uint64
	Memo       string
	Payload    []byte
}

// ApprovalArgs are the arguments of approve and revoke.
type ApprovalArgs struct {
	TokenID string
	Account host.AccountID
}

// TokenArgs name a single token.
type TokenArgs struct {
	TokenID string
}

// PageArgs are the arguments of tokens.
type PageArgs struct {
	FromIndex uint64
	Limit     int
}

// OwnerPageArgs are the arguments of tokensOf.
type OwnerPageArgs struct {
	Owner     host.AccountID
	FromIndex uint64
	Limit     int
}

// OwnerArgs name a single account.
type OwnerArgs struct {
	Owner host.AccountID
}

// IsApprovedArgs are the arguments of isApproved.
type IsApprovedArgs struct {
	TokenID    string
	Account    host.AccountID
	ApprovalID *uint64
}

// PolicyArgs are the arguments of setMintPolicy.
type PolicyArgs struct {
	Policy string
}

// AccountArgs are the arguments of the whitelist mutators.
type AccountArgs struct {
	Account host.AccountID
}

// Deploy initializes the contract with its designated owner account and
// collection metadata. The mint policy starts closed. With update set
// the contract data is migrated instead: the stored version must pass
// the version check, everything else is left untouched.
func Deploy(env host.Env, owner host.AccountID, metadata ContractMetadata, update bool) {
	s := env.Storage()
	if update {
		common.CheckWitness(env, contractOwner(s))
		common.CheckVersion(int(common.GetUint64(s, []byte{prefixVersion})))
		common.PutUint64(s, []byte{prefixVersion}, common.Version)
		env.Log("contract updated to version %d", common.Version)
		return
	}
	if s.Get([]byte{prefixContractMetadata}) != nil {
		panic(ErrAlreadyInitialized)
	}
	checkAccount(owner)
	metadata.checkValid()
	common.SetSerialized(s, []byte{prefixContractMetadata}, metadata)
	common.SetSerialized(s, []byte{prefixContractOwner}, owner)
	putMintPolicy(s, PolicyClosed)
	common.PutUint64(s, []byte{prefixVersion}, common.Version)
	env.Log("contract initialized, owner %s", owner)
}

// Methods returns the contract's dispatch table. Argument structures
// are canonical CBOR; results are CBOR unless the entry point suspends.
func Methods() map[string]host.Method {
	return map[string]host.Method{
		MethodDeploy: func(env host.Env, raw []byte) interface{} {
			var a DeployArgs
			unmarshalArgs(raw, &a)
			Deploy(env, a.Owner, a.Metadata, a.Update)
			return nil
		},
		MethodMint: func(env host.Env, raw []byte) interface{} {
			var a MintArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(Mint(env, a.TokenID, a.Receiver, a.Metadata))
		},
		MethodTransfer: func(env host.Env, raw []byte) interface{} {
			var a TransferArgs
			unmarshalArgs(raw, &a)
			Transfer(env, a.Receiver, a.TokenID, a.ApprovalID, a.Memo)
			return nil
		},
		MethodTransferNotify: func(env host.Env, raw []byte) interface{} {
			var a TransferNotifyArgs
			unmarshalArgs(raw, &a)
			return TransferNotify(env, a.Receiver, a.TokenID, a.ApprovalID, a.Memo, a.Payload)
		},
		MethodResolveTransfer: func(env host.Env, raw []byte) interface{} {
			var a resolveTransferArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(ResolveTransfer(env, a.PendingID))
		},
		MethodApprove: func(env host.Env, raw []byte) interface{} {
			var a ApprovalArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(Approve(env, a.TokenID, a.Account))
		},
		MethodRevoke: func(env host.Env, raw []byte) interface{} {
			var a ApprovalArgs
			unmarshalArgs(raw, &a)
			Revoke(env, a.TokenID, a.Account)
			return nil
		},
		MethodRevokeAll: func(env host.Env, raw []byte) interface{} {
			var a TokenArgs
			unmarshalArgs(raw, &a)
			RevokeAll(env, a.TokenID)
			return nil
		},
		MethodBurn: func(env host.Env, raw []byte) interface{} {
			var a TokenArgs
			unmarshalArgs(raw, &a)
			Burn(env, a.TokenID)
			return nil
		},
		MethodGetToken: func(env host.Env, raw []byte) interface{} {
			var a TokenArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(GetToken(env, a.TokenID))
		},
		MethodTokens: func(env host.Env, raw []byte) interface{} {
			var a PageArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(Tokens(env, a.FromIndex, a.Limit))
		},
		MethodTokensOf: func(env host.Env, raw []byte) interface{} {
			var a OwnerPageArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(TokensOf(env, a.Owner, a.FromIndex, a.Limit))
		},
		MethodTotalSupply: func(env host.Env, raw []byte) interface{} {
			return common.MarshalPanic(TotalSupply(env))
		},
		MethodBalanceOf: func(env host.Env, raw []byte) interface{} {
			var a OwnerArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(BalanceOf(env, a.Owner))
		},
		MethodIsApproved: func(env host.Env, raw []byte) interface{} {
			var a IsApprovedArgs
			unmarshalArgs(raw, &a)
			return common.MarshalPanic(IsApproved(env, a.TokenID, a.Account, a.ApprovalID))
		},
		MethodMetadata: func(env host.Env, raw []byte) interface{} {
			return common.MarshalPanic(Metadata(env))
		},
		MethodSetMintPolicy: func(env host.Env, raw []byte) interface{} {
			var a PolicyArgs
			unmarshalArgs(raw, &a)
			SetMintPolicy(env, a.Policy)
			return nil
		},
		MethodMintPolicy: func(env host.Env, raw []byte) interface{} {
			return common.MarshalPanic(MintPolicyValue(env))
		},
		MethodAddWhitelistAccount: func(env host.Env, raw []byte) interface{} {
			var a AccountArgs
			unmarshalArgs(raw, &a)
			AddWhitelistAccount(env, a.Account)
			return nil
		},
		MethodRemoveWhitelistAccount: func(env host.Env, raw []byte) interface{} {
			var a AccountArgs
			unmarshalArgs(raw, &a)
			RemoveWhitelistAccount(env, a.Account)
			return nil
		},
		MethodWhitelistAccounts: func(env host.Env, raw []byte) interface{} {
			return common.MarshalPanic(WhitelistAccounts(env))
		},
	}
}

func unmarshalArgs(raw []byte, out interface{}) {
	if len(raw) == 0 {
		return
	}
	if err := common.Unmarshal(raw, out); err != nil {
		panic(ErrInvalidArgument + ": " + err.Error())
	}
}
