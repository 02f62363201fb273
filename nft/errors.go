package nft

// Contract failure messages. Entry points abort by panicking with one of
// these; the environment discards all staged state of the call and
// reports the message to the caller.
const (
	// ErrAlreadyInitialized appears on a repeated deploy attempt.
	ErrAlreadyInitialized = "contract is already initialized"
	// ErrNotInitialized appears when an entry point is called before
	// deploy.
	ErrNotInitialized = "contract is not initialized"
	// ErrDuplicateTokenID appears on minting a token id that is
	// already present in the ledger.
	ErrDuplicateTokenID = "token id already exists"
	// ErrTokenBurned appears on minting a token id that was burned.
	// Burned ids are never reused.
	ErrTokenBurned = "token id was burned"
	// ErrTokenNotFound appears on any operation against an unknown
	// token id.
	ErrTokenNotFound = "token not found"
	// ErrNotAuthorized appears when the transfer sender is neither the
	// current owner nor the holder of a matching approval.
	ErrNotAuthorized = "sender is neither the token owner nor approved"
	// ErrSameOwner appears on transferring a token to its current
	// owner.
	ErrSameOwner = "receiver already owns the token"
	// ErrInsufficientDeposit appears when the attached deposit does
	// not cover the net storage growth of the call.
	ErrInsufficientDeposit = "attached deposit does not cover storage growth"
	// ErrInvalidPolicyValue appears on an unrecognized mint policy
	// identifier.
	ErrInvalidPolicyValue = "invalid mint policy value"
	// ErrNotWhitelisted appears on minting under the whitelisted
	// policy by an account that is not in the whitelist.
	ErrNotWhitelisted = "only whitelisted accounts can mint"
	// ErrMintingDisabled appears on minting under the closed policy.
	ErrMintingDisabled = "minting is disabled"
	// ErrInvalidArgument appears on malformed call arguments.
	ErrInvalidArgument = "invalid argument"
	// ErrPendingNotFound appears when a resolve callback references an
	// unknown pending transfer record.
	ErrPendingNotFound = "pending transfer not found"
)
