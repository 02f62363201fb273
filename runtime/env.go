package runtime

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/qstn-network/nft-contract/host"
)

type moneyTransfer struct {
	to     host.AccountID
	amount *uint256.Int
}

// callEnv is the host.Env handed to a contract for the duration of one
// receipt. Everything it records is tentative until the receipt
// commits.
type callEnv struct {
	rt       *Runtime
	receipt  *Receipt
	contract *contractAccount
	staged   *stagedStore

	// available caps contract-issued transfers at the contract balance
	// plus the attached deposit.
	available *uint256.Int
	transfers []moneyTransfer

	order     []*Receipt          // issued receipts in delivery order
	calls     map[string]*Receipt // suspension id -> call receipt
	callbacks map[string]*Receipt // suspension id -> resolve callback

	events []Event
}

func (e *callEnv) ContractAccount() host.AccountID {
	return e.receipt.Receiver
}

func (e *callEnv) CallerAccount() host.AccountID {
	return e.receipt.Caller
}

func (e *callEnv) AttachedDeposit() *uint256.Int {
	return new(uint256.Int).Set(e.receipt.Deposit)
}

func (e *callEnv) StorageCostPerByte() *uint256.Int {
	return new(uint256.Int).Set(e.rt.costPerByte)
}

func (e *callEnv) UsedStorage() uint64 {
	return uint64(int64(e.contract.used) + e.staged.delta)
}

func (e *callEnv) Transfer(to host.AccountID, amount *uint256.Int) {
	if e.available.Lt(amount) {
		panic("insufficient account balance")
	}
	e.available.Sub(e.available, amount)
	e.transfers = append(e.transfers, moneyTransfer{to: to, amount: new(uint256.Int).Set(amount)})
}

func (e *callEnv) Storage() host.Storage {
	return e.staged
}

func (e *callEnv) IssueCall(receiver host.AccountID, method string, args []byte) host.Suspension {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:call:%d", e.receipt.ID, len(e.order)))).String()
	r := &Receipt{
		ID:       id,
		Signer:   e.receipt.Signer,
		Caller:   e.receipt.Receiver,
		Receiver: receiver,
		Method:   method,
		Args:     args,
		Deposit:  new(uint256.Int),
	}
	e.order = append(e.order, r)
	e.calls[id] = r
	return host.Suspension{ID: id}
}

func (e *callEnv) Then(s host.Suspension, method string, args []byte) {
	call := e.calls[s.ID]
	if call == nil {
		panic("then: unknown suspension")
	}
	if e.callbacks[s.ID] != nil {
		panic("then: callback already designated")
	}
	cb := &Receipt{
		ID:       s.ID + ":resolve",
		Signer:   e.receipt.Signer,
		Caller:   e.receipt.Receiver,
		Receiver: e.receipt.Receiver,
		Method:   method,
		Args:     args,
		Deposit:  new(uint256.Int),
		await:    call,
	}
	e.callbacks[s.ID] = cb
	e.order = append(e.order, cb)
}

func (e *callEnv) PromiseResult() ([]byte, bool) {
	if e.receipt.await == nil {
		panic("promise result is only available in a resolve callback")
	}
	return finalValue(e.receipt.await)
}

func (e *callEnv) Notify(name string, body interface{}) {
	e.events = append(e.events, Event{Contract: e.receipt.Receiver, Name: name, Body: body})
}

func (e *callEnv) Log(format string, args ...interface{}) {
	e.rt.log.WithField("contract", e.receipt.Receiver).Infof(format, args...)
}
