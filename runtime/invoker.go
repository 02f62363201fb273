package runtime

import (
	"reflect"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Invoker is a convenience wrapper for driving one contract account in
// tests: it marshals arguments, runs the queue to quiescence and
// asserts on the final value.
type Invoker struct {
	RT       *Runtime
	Contract host.AccountID

	signer  host.AccountID
	deposit *uint256.Int
}

// NewInvoker returns an invoker calling contract with the given
// default signer and no attached deposit.
func NewInvoker(rt *Runtime, contract, signer host.AccountID) *Invoker {
	return &Invoker{RT: rt, Contract: contract, signer: signer, deposit: new(uint256.Int)}
}

// WithSigner returns a copy of the invoker signing as the given
// account.
func (i *Invoker) WithSigner(signer host.AccountID) *Invoker {
	c := *i
	c.signer = signer
	return &c
}

// WithDeposit returns a copy of the invoker attaching the given
// deposit to every call.
func (i *Invoker) WithDeposit(amount uint64) *Invoker {
	c := *i
	c.deposit = uint256.NewInt(amount)
	return &c
}

// Call invokes method with args (marshalled to canonical CBOR, nil for
// no arguments) and returns the final raw value.
func (i *Invoker) Call(method string, args interface{}) ([]byte, error) {
	var raw []byte
	if args != nil {
		raw = common.MarshalPanic(args)
	}
	return i.RT.Call(i.signer, i.Contract, method, raw, i.deposit)
}

// Invoke calls method and requires it to succeed. With a non-nil
// expected value the result is decoded into the expected value's type
// and compared.
func (i *Invoker) Invoke(t testing.TB, expected interface{}, method string, args interface{}) {
	data, err := i.Call(method, args)
	require.NoError(t, err)
	if expected == nil {
		return
	}
	out := reflect.New(reflect.TypeOf(expected))
	require.NoError(t, common.Unmarshal(data, out.Interface()))
	require.Equal(t, expected, out.Elem().Interface())
}

// InvokeFail calls method and requires it to fail with a message
// containing msg.
func (i *Invoker) InvokeFail(t testing.TB, msg string, method string, args interface{}) {
	_, err := i.Call(method, args)
	require.Error(t, err)
	require.Contains(t, err.Error(), msg)
}
