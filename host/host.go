package host

import (
	"github.com/holiman/uint256"
)

// AccountID names a principal of the execution environment. Equality is
// byte-exact, no normalization is applied.
type AccountID string

// Valid reports whether the account identifier is well-formed. The
// environment does not resolve accounts, it only refuses empty and
// oversized names.
func (a AccountID) Valid() bool {
	return len(a) > 0 && len(a) <= 64
}

// Storage is the deterministic byte-keyed persistence owned by a single
// contract account. Keys of different components must use disjoint
// prefixes. Implementations panic on backend failures: a broken store is
// a host fault, not a condition contract code can handle.
type Storage interface {
	// Get returns the value stored under key or nil if there is none.
	Get(key []byte) []byte
	// Put stores value under key, overwriting any previous value.
	Put(key, value []byte)
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key []byte)
	// Seek iterates entries whose keys start with prefix in ascending
	// key order and calls fn for each. Iteration stops when fn returns
	// false.
	Seek(prefix []byte, fn func(key, value []byte) bool)
}

// Suspension identifies an asynchronous call issued during the current
// receipt. It is only meaningful to the environment that produced it.
type Suspension struct {
	// ID is the receipt identifier of the issued call. It is stable
	// across the suspend point and may be used to key durable state
	// that the resolve callback needs.
	ID string
}

// Method is a contract entry point. Args carry the canonical
// CBOR-encoded argument structure. The returned value is nil, a
// CBOR-encoded result, or a Suspension: returning a Suspension makes the
// final result of the call the result of the callback chained to it.
type Method func(env Env, args []byte) interface{}

// Env is the per-call view of the execution environment. An Env is valid
// only for the duration of the entry-point invocation it was passed to.
type Env interface {
	// ContractAccount returns the account the executing contract is
	// deployed to.
	ContractAccount() AccountID
	// CallerAccount returns the direct caller of the current receipt.
	CallerAccount() AccountID

	// AttachedDeposit returns the payment attached to the current call.
	AttachedDeposit() *uint256.Int
	// StorageCostPerByte returns the price of one persisted byte.
	StorageCostPerByte() *uint256.Int
	// UsedStorage returns the number of bytes currently persisted by
	// the executing contract, including uncommitted writes of the
	// current receipt.
	UsedStorage() uint64
	// Transfer sends amount from the contract account to the given
	// account. The transfer takes effect only if the receipt commits.
	Transfer(to AccountID, amount *uint256.Int)

	// Storage returns the contract's persistent storage.
	Storage() Storage

	// IssueCall schedules an asynchronous call of method on the
	// receiver account, delivered after the current receipt commits.
	IssueCall(receiver AccountID, method string, args []byte) Suspension
	// Then designates a callback on the executing contract, invoked
	// exactly once with the outcome of s, regardless of whether the
	// issued call succeeded, failed or the receiver does not implement
	// the method.
	Then(s Suspension, method string, args []byte)
	// PromiseResult returns the outcome of the awaited call inside a
	// resolve callback: its return value and ok=true on success, or
	// ok=false on any failure. Calling it outside a resolve callback
	// panics.
	PromiseResult() (data []byte, ok bool)

	// Notify appends an event to the environment's log sink. Events of
	// aborted receipts are discarded.
	Notify(name string, body interface{})
	// Log writes a plain diagnostic line attributed to the contract.
	Log(format string, args ...interface{})
}
