package nft

import (
	"github.com/holiman/uint256"

	"github.com/qstn-network/nft-contract/host"
)

// The storage accountant brackets every mutating entry point: storage
// usage is sampled before the mutation, and settleStorage compares it
// with the usage after. Net growth must be covered by the attached
// deposit at the host's per-byte price, otherwise the whole call aborts
// and none of the staged writes survive. Released storage and any
// unused deposit are refunded to the caller, never retained.

func settleStorage(env host.Env, before uint64) {
	after := env.UsedStorage()
	attached := env.AttachedDeposit()
	cost := env.StorageCostPerByte()

	refund := new(uint256.Int).Set(attached)
	switch {
	case after > before:
		required := new(uint256.Int).Mul(uint256.NewInt(after-before), cost)
		if attached.Lt(required) {
			panic(ErrInsufficientDeposit)
		}
		refund.Sub(attached, required)
	case before > after:
		released := new(uint256.Int).Mul(uint256.NewInt(before-after), cost)
		refund.Add(attached, released)
	}
	if !refund.IsZero() {
		env.Transfer(env.CallerAccount(), refund)
	}
}
