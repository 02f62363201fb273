package runtime

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"github.com/qstn-network/nft-contract/host"
)

// DefaultStorageCostPerByte is the storage price used unless configured
// otherwise.
const DefaultStorageCostPerByte = 10

// Event is a committed notification of a contract.
type Event struct {
	Contract host.AccountID
	Name     string
	Body     interface{}
}

// Receipt is a single scheduled invocation: a top-level call, an
// asynchronous call issued by a contract, or a resolve callback.
type Receipt struct {
	ID       string
	Signer   host.AccountID
	Caller   host.AccountID
	Receiver host.AccountID
	Method   string
	Args     []byte
	Deposit  *uint256.Int

	// await points at the receipt whose outcome this resolve callback
	// consumes; nil for ordinary receipts.
	await *Receipt

	done      bool
	failed    bool
	errMsg    string
	result    []byte
	valueFrom *Receipt
}

// Result returns the final value of the receipt, following suspension
// chains: a call that suspended resolves to the value of its callback.
func (r *Receipt) Result() ([]byte, error) {
	f := r
	for {
		if !f.done {
			return nil, fmt.Errorf("receipt %s (%s) is still pending", f.ID, f.Method)
		}
		if f.failed {
			return nil, fmt.Errorf("call %s failed: %s", f.Method, f.errMsg)
		}
		if f.valueFrom == nil {
			return f.result, nil
		}
		f = f.valueFrom
	}
}

// finalDone reports whether the receipt's whole suspension chain has
// been executed.
func finalDone(r *Receipt) bool {
	for {
		if !r.done {
			return false
		}
		if r.failed || r.valueFrom == nil {
			return true
		}
		r = r.valueFrom
	}
}

// finalValue resolves the chain to (data, ok): ok is false if any link
// failed.
func finalValue(r *Receipt) ([]byte, bool) {
	data, err := r.Result()
	if err != nil {
		return nil, false
	}
	return data, true
}

type contractAccount struct {
	store   host.Storage
	methods map[string]host.Method
	used    uint64
}

// Runtime owns all accounts, contracts and the receipt queue of one
// simulated environment. It is not safe for concurrent use: the
// environment it models is single-threaded.
type Runtime struct {
	log         logrus.FieldLogger
	costPerByte *uint256.Int
	balances    map[host.AccountID]*uint256.Int
	contracts   map[host.AccountID]*contractAccount
	queue       []*Receipt
	events      []Event
	timeouts    map[host.AccountID]int
	seq         uint64
}

// NewRuntime returns an empty runtime logging through log. A nil logger
// discards everything.
func NewRuntime(log logrus.FieldLogger) *Runtime {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Runtime{
		log:         log,
		costPerByte: uint256.NewInt(DefaultStorageCostPerByte),
		balances:    map[host.AccountID]*uint256.Int{},
		contracts:   map[host.AccountID]*contractAccount{},
		timeouts:    map[host.AccountID]int{},
	}
}

// SetStorageCostPerByte overrides the storage price.
func (rt *Runtime) SetStorageCostPerByte(cost uint64) {
	rt.costPerByte = uint256.NewInt(cost)
}

// NewAccount creates (or tops up) an account with the given funds.
func (rt *Runtime) NewAccount(id host.AccountID, funds uint64) {
	rt.credit(id, uint256.NewInt(funds))
}

// Balance returns a copy of the account's balance.
func (rt *Runtime) Balance(id host.AccountID) *uint256.Int {
	return new(uint256.Int).Set(rt.balance(id))
}

// Register deploys contract code to the given account over the given
// storage backend. Pre-existing storage is adopted as is; its usage is
// measured by a full scan.
func (rt *Runtime) Register(account host.AccountID, methods map[string]host.Method, store host.Storage) error {
	if rt.contracts[account] != nil {
		return fmt.Errorf("account %s already holds a contract", account)
	}
	rt.contracts[account] = &contractAccount{
		store:   store,
		methods: methods,
		used:    measureStore(store),
	}
	rt.balance(account)
	return nil
}

// UsedStorage returns the persisted bytes of the contract account.
func (rt *Runtime) UsedStorage(account host.AccountID) uint64 {
	ca := rt.contracts[account]
	if ca == nil {
		return 0
	}
	return ca.used
}

// Events returns all committed notifications in emission order.
func (rt *Runtime) Events() []Event {
	return append([]Event(nil), rt.events...)
}

// TimeoutNext makes the next receipt addressed to account fail without
// executing, modelling a host-level call timeout.
func (rt *Runtime) TimeoutNext(account host.AccountID) {
	rt.timeouts[account]++
}

// Submit enqueues a top-level call at the queue tail and returns its
// receipt.
func (rt *Runtime) Submit(signer, receiver host.AccountID, method string, args []byte, deposit *uint256.Int) *Receipt {
	r := rt.newReceipt(signer, signer, receiver, method, args, deposit)
	rt.queue = append(rt.queue, r)
	return r
}

// SubmitUrgent enqueues a top-level call at the queue head, ahead of
// pending receipts. Ordering between unrelated top-level calls is
// unspecified by the environment; tests use this to exercise the
// interleavings that permits.
func (rt *Runtime) SubmitUrgent(signer, receiver host.AccountID, method string, args []byte, deposit *uint256.Int) *Receipt {
	r := rt.newReceipt(signer, signer, receiver, method, args, deposit)
	rt.queue = append([]*Receipt{r}, rt.queue...)
	return r
}

// Call submits a top-level call, runs the queue to quiescence and
// returns the call's final value.
func (rt *Runtime) Call(signer, receiver host.AccountID, method string, args []byte, deposit *uint256.Int) ([]byte, error) {
	r := rt.Submit(signer, receiver, method, args, deposit)
	rt.Drain()
	return r.Result()
}

// Step executes a single receipt. It returns false once the queue is
// empty.
func (rt *Runtime) Step() bool {
	deferred := 0
	for len(rt.queue) > 0 {
		r := rt.queue[0]
		rt.queue = rt.queue[1:]
		if r.await != nil && !finalDone(r.await) {
			// The callback waits for a nested suspension chain
			// scheduled behind it.
			rt.queue = append(rt.queue, r)
			deferred++
			if deferred > len(rt.queue) {
				panic("runtime: callback awaits a receipt that is not scheduled")
			}
			continue
		}
		rt.execute(r)
		return true
	}
	return false
}

// Drain runs the queue to quiescence.
func (rt *Runtime) Drain() {
	for rt.Step() {
	}
}

func (rt *Runtime) newReceipt(signer, caller, receiver host.AccountID, method string, args []byte, deposit *uint256.Int) *Receipt {
	if deposit == nil {
		deposit = new(uint256.Int)
	}
	rt.seq++
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("receipt:%d", rt.seq))).String()
	return &Receipt{
		ID:       id,
		Signer:   signer,
		Caller:   caller,
		Receiver: receiver,
		Method:   method,
		Args:     args,
		Deposit:  new(uint256.Int).Set(deposit),
	}
}

func (rt *Runtime) execute(r *Receipt) {
	logger := rt.log.WithFields(logrus.Fields{
		"receipt": r.ID,
		"to":      r.Receiver,
		"method":  r.Method,
	})
	fail := func(msg string) {
		r.done, r.failed, r.errMsg = true, true, msg
		logger.WithField("reason", msg).Warn("receipt failed")
	}

	if rt.timeouts[r.Receiver] > 0 {
		rt.timeouts[r.Receiver]--
		fail("call timed out")
		return
	}
	ca := rt.contracts[r.Receiver]
	if ca == nil {
		fail("account is not a contract")
		return
	}
	method := ca.methods[r.Method]
	if method == nil {
		fail("method not found: " + r.Method)
		return
	}
	if rt.balance(r.Signer).Lt(r.Deposit) {
		fail("insufficient balance for attached deposit")
		return
	}

	staged := newStagedStore(ca.store)
	env := &callEnv{
		rt:        rt,
		receipt:   r,
		contract:  ca,
		staged:    staged,
		available: new(uint256.Int).Add(rt.balance(r.Receiver), r.Deposit),
		calls:     map[string]*Receipt{},
		callbacks: map[string]*Receipt{},
	}

	var result interface{}
	msg, panicked := "", true
	func() {
		defer func() {
			if p := recover(); p != nil {
				msg = panicMessage(p)
			}
		}()
		result = method(env, r.Args)
		panicked = false
	}()
	if panicked {
		fail(msg)
		return
	}

	// Commit phase: storage, money, receipts and events of the call
	// become visible together.
	staged.commit()
	ca.used = uint64(int64(ca.used) + staged.delta)
	rt.debit(r.Signer, r.Deposit)
	rt.credit(r.Receiver, r.Deposit)
	for _, tr := range env.transfers {
		rt.debit(r.Receiver, tr.amount)
		rt.credit(tr.to, tr.amount)
	}
	rt.queue = append(rt.queue, env.order...)
	for _, ev := range env.events {
		rt.events = append(rt.events, ev)
		logger.WithFields(logrus.Fields{"event": ev.Name, "body": ev.Body}).Info("notification")
	}

	r.done = true
	switch v := result.(type) {
	case nil:
	case []byte:
		r.result = v
	case host.Suspension:
		if cb := env.callbacks[v.ID]; cb != nil {
			r.valueFrom = cb
		} else {
			r.valueFrom = env.calls[v.ID]
		}
		if r.valueFrom == nil {
			panic("runtime: method returned an unknown suspension")
		}
	default:
		panic(fmt.Sprintf("runtime: unsupported method result %T", result))
	}
	logger.Debug("receipt committed")
}

func (rt *Runtime) balance(id host.AccountID) *uint256.Int {
	b := rt.balances[id]
	if b == nil {
		b = new(uint256.Int)
		rt.balances[id] = b
	}
	return b
}

func (rt *Runtime) credit(id host.AccountID, amount *uint256.Int) {
	b := rt.balance(id)
	b.Add(b, amount)
}

func (rt *Runtime) debit(id host.AccountID, amount *uint256.Int) {
	b := rt.balance(id)
	if b.Lt(amount) {
		panic("runtime: account " + string(id) + " balance underflow")
	}
	b.Sub(b, amount)
}

func measureStore(s host.Storage) uint64 {
	var used uint64
	s.Seek(nil, func(key, value []byte) bool {
		used += uint64(len(key) + len(value))
		return true
	})
	return used
}

func panicMessage(p interface{}) string {
	switch v := p.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
