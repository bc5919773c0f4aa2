package fund

import (
	"time"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/orm"
	"github.com/causefund/fundmgr/x/cash"
)

// stateKey is where the singleton accounting record lives inside the
// fund bucket.
var stateKey = []byte("state")

// Controller is one fund instance: its configuration, its treasury
// account on the cash ledger, and its withdrawal ledger. All mutating
// entry points are serialized by a reentrancy guard and run on a
// cache-wrapped store, so any error leaves no trace.
type Controller struct {
	conf    Configuration
	shares  ShareTable
	cash    cash.Controller
	db      fundmgr.CacheableKVStore
	states  orm.Bucket
	ledger  orm.Bucket
	seq     orm.Sequence
	account fundmgr.Address
	emitter Emitter
	now     func() time.Time
	paused  bool
	busy    bool
}

// Option configures optional controller collaborators.
type Option func(*Controller)

// WithEmitter directs notifications into the given emitter instead of
// discarding them.
func WithEmitter(e Emitter) Option {
	return func(c *Controller) { c.emitter = e }
}

// WithClock replaces the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController validates the configuration and sets up a fund over
// the given store and cash ledger. Construction is all-or-nothing: any
// configuration error fails it and no fund state is written.
func NewController(db fundmgr.CacheableKVStore, cashCtrl cash.Controller, conf Configuration, opts ...Option) (*Controller, error) {
	c := &Controller{
		conf:    conf,
		cash:    cashCtrl,
		db:      db,
		states:  orm.NewBucket("fund"),
		ledger:  orm.NewBucket("withdraw"),
		emitter: discardEmitter{},
		now:     time.Now,
	}
	c.seq = c.ledger.Sequence("id")
	for _, opt := range opts {
		opt(c)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	addrs := make([]fundmgr.Address, len(conf.Beneficiaries))
	shares := make([]int32, len(conf.Beneficiaries))
	for i, b := range conf.Beneficiaries {
		addrs[i] = b.Address
		shares[i] = b.SharePercentage
	}
	table, err := NewShareTable(addrs, shares)
	if err != nil {
		return nil, err
	}
	c.shares = table
	if !conf.MaturityDate.Time().After(c.now()) {
		return nil, errors.Wrapf(ErrMaturityDate, "%s is not in the future", conf.MaturityDate)
	}

	c.account = fundmgr.NewCondition("fund", "treasury", []byte(conf.CauseName)).Address()
	if !c.states.Has(db, stateKey) {
		zero := coin.NewCoin(0, 0, conf.Ticker)
		state := FundState{
			WalletBalance:  zero.Clone(),
			TotalWithdrawn: zero.Clone(),
			Invested:       zero.Clone(),
		}
		if err := c.states.Save(db, stateKey, &state); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// run serializes a mutating operation: it rejects reentrant calls,
// executes op on a cache wrap, and either commits the cache and emits
// the returned events, or discards everything.
func (c *Controller) run(op func(cache fundmgr.KVCacheWrap) ([]Event, error)) error {
	if c.busy {
		return errors.Wrap(ErrReentrancy, "operation in flight")
	}
	c.busy = true
	defer func() { c.busy = false }()

	cache := c.db.CacheWrap()
	events, err := op(cache)
	if err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	for _, e := range events {
		c.emitter.Emit(e)
	}
	return nil
}

// checkAmount rejects zero, negative and foreign-token amounts.
func (c *Controller) checkAmount(amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(ErrZeroAmount, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "negative amount: %s", &amount)
	}
	if amount.Ticker != c.conf.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "%s amount in a %s fund", amount.Ticker, c.conf.Ticker)
	}
	return nil
}

func (c *Controller) checkGovernor(caller fundmgr.Address) error {
	if !c.conf.IsGovernor(caller) {
		return errors.Wrapf(ErrNotGovernor, "%s", caller)
	}
	return nil
}

func (c *Controller) checkOwner(caller fundmgr.Address) error {
	if !c.conf.Owner.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner", caller)
	}
	return nil
}

func (c *Controller) checkNotPaused() error {
	if c.paused {
		return errors.Wrap(ErrPaused, "fund operations are suspended")
	}
	return nil
}

func (c *Controller) loadState(db fundmgr.KVStore) (FundState, error) {
	var state FundState
	if err := c.states.Load(db, stateKey, &state); err != nil {
		return state, errors.Wrap(err, "fund state")
	}
	return state, nil
}

func (c *Controller) loadWithdrawal(db fundmgr.KVStore, id int64) (EmergencyWithdrawal, error) {
	var w EmergencyWithdrawal
	if err := c.ledger.Load(db, orm.EncodeSequence(id), &w); err != nil {
		return w, errors.Wrapf(err, "withdrawal %d", id)
	}
	return w, nil
}

// ReceiveFund pulls the given amount from the sender's wallet into the
// treasury. This is the sole deposit path.
func (c *Controller) ReceiveFund(sender fundmgr.Address, amount coin.Coin, note string) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkNotPaused(); err != nil {
			return nil, err
		}
		if err := c.checkAmount(amount); err != nil {
			return nil, err
		}
		if err := c.cash.MoveCoins(cache, sender, c.account, amount); err != nil {
			return nil, err
		}
		state, err := c.loadState(cache)
		if err != nil {
			return nil, err
		}
		balance, err := state.WalletBalance.Add(amount)
		if err != nil {
			return nil, err
		}
		state.WalletBalance = &balance
		if err := c.states.Save(cache, stateKey, &state); err != nil {
			return nil, err
		}
		return []Event{FundReceived{Sender: sender, Amount: amount, Note: note}}, nil
	})
}

// InitiateEmergencyWithdrawal opens a new withdrawal request on behalf
// of a governor, who is recorded as its first approver. Limits are
// checked against already executed withdrawals only, pending requests
// reserve no capacity.
func (c *Controller) InitiateEmergencyWithdrawal(caller fundmgr.Address, amount coin.Coin) (int64, error) {
	var id int64
	err := c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkNotPaused(); err != nil {
			return nil, err
		}
		if err := c.checkGovernor(caller); err != nil {
			return nil, err
		}
		if err := c.checkAmount(amount); err != nil {
			return nil, err
		}
		if amount.Compare(c.conf.LimitPerWithdrawal) > 0 {
			return nil, errors.Wrapf(ErrWithdrawalLimit, "%s exceeds %s", &amount, &c.conf.LimitPerWithdrawal)
		}
		state, err := c.loadState(cache)
		if err != nil {
			return nil, err
		}
		total, err := state.TotalWithdrawn.Add(amount)
		if err != nil {
			return nil, err
		}
		if total.Compare(c.conf.TotalLimit) > 0 {
			return nil, errors.Wrapf(ErrTotalWithdrawalLimit, "%s exceeds %s", &total, &c.conf.TotalLimit)
		}
		if state.WithdrawalsExecuted >= c.conf.TimesAllowed {
			return nil, errors.Wrapf(ErrTotalWithdrawalLimit, "all %d withdrawals used", c.conf.TimesAllowed)
		}

		id = c.seq.NextInt(cache)
		w := EmergencyWithdrawal{
			Amount:    amount.Clone(),
			Status:    WithdrawalStatusInitiated,
			Approvals: []fundmgr.Address{caller},
		}
		if err := c.ledger.Save(cache, orm.EncodeSequence(id), &w); err != nil {
			return nil, err
		}
		return []Event{
			EmergencyWithdrawalInitiated{ID: id, Initiator: caller, Amount: amount},
			EmergencyWithdrawalApproved{ID: id, Approver: caller, Approvals: 1},
		}, nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ApproveEmergencyWithdrawal adds the caller's approval to a pending
// withdrawal. Approving never triggers execution.
func (c *Controller) ApproveEmergencyWithdrawal(caller fundmgr.Address, id int64) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkNotPaused(); err != nil {
			return nil, err
		}
		if err := c.checkGovernor(caller); err != nil {
			return nil, err
		}
		w, err := c.loadWithdrawal(cache, id)
		if err != nil {
			return nil, err
		}
		if w.Status != WithdrawalStatusInitiated {
			return nil, errors.Wrapf(errors.ErrState, "withdrawal %d already executed", id)
		}
		if w.HasApproved(caller) {
			return nil, errors.Wrapf(ErrAlreadyApproved, "withdrawal %d by %s", id, caller)
		}
		w.approve(caller)
		if err := c.ledger.Save(cache, orm.EncodeSequence(id), &w); err != nil {
			return nil, err
		}
		return []Event{
			EmergencyWithdrawalApproved{ID: id, Approver: caller, Approvals: w.ApprovalCount()},
		}, nil
	})
}

// ExecuteEmergencyWithdrawal pays out a withdrawal that reached the
// approval quorum, splitting the amount among the beneficiaries by
// their shares. The rounding remainder stays on the treasury account.
// An executed withdrawal is terminal, executing it again is an error.
func (c *Controller) ExecuteEmergencyWithdrawal(caller fundmgr.Address, id int64) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkNotPaused(); err != nil {
			return nil, err
		}
		if err := c.checkGovernor(caller); err != nil {
			return nil, err
		}
		w, err := c.loadWithdrawal(cache, id)
		if err != nil {
			return nil, err
		}
		if w.Status != WithdrawalStatusInitiated {
			return nil, errors.Wrapf(errors.ErrState, "withdrawal %d already executed", id)
		}
		if w.ApprovalCount() < c.conf.RequiredApprovals {
			return nil, errors.Wrapf(ErrMissingApprovals, "have %d of %d", w.ApprovalCount(), c.conf.RequiredApprovals)
		}
		state, err := c.loadState(cache)
		if err != nil {
			return nil, err
		}
		amount := *w.Amount
		if state.WalletBalance.Compare(amount) < 0 {
			return nil, errors.Wrapf(ErrInsufficientTokens, "balance %s, requested %s", state.WalletBalance, &amount)
		}

		cuts, err := c.shares.Distribute(amount)
		if err != nil {
			return nil, err
		}
		for i, cut := range cuts {
			if cut.IsZero() {
				continue
			}
			if err := c.cash.MoveCoins(cache, c.account, c.shares.beneficiaries[i].Address, cut); err != nil {
				return nil, err
			}
		}

		balance, err := state.WalletBalance.Subtract(amount)
		if err != nil {
			return nil, err
		}
		total, err := state.TotalWithdrawn.Add(amount)
		if err != nil {
			return nil, err
		}
		state.WalletBalance = &balance
		state.TotalWithdrawn = &total
		state.WithdrawalsExecuted++
		if err := c.states.Save(cache, stateKey, &state); err != nil {
			return nil, err
		}

		w.Status = WithdrawalStatusExecuted
		if err := c.ledger.Save(cache, orm.EncodeSequence(id), &w); err != nil {
			return nil, err
		}
		return []Event{
			EmergencyWithdrawalExecuted{ID: id, Amount: amount, Time: fundmgr.AsUnixTime(c.now())},
		}, nil
	})
}

// InvestFund moves treasury funds into the investment capability.
// Owner only. If the capability fails, the balance is unchanged.
func (c *Controller) InvestFund(caller fundmgr.Address, inv Investment, amount coin.Coin) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkOwner(caller); err != nil {
			return nil, err
		}
		if err := c.checkNotPaused(); err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, errors.Wrap(ErrInvalidInvestment, "no capability")
		}
		if err := c.checkAmount(amount); err != nil {
			return nil, err
		}
		state, err := c.loadState(cache)
		if err != nil {
			return nil, err
		}
		if state.WalletBalance.Compare(amount) < 0 {
			return nil, errors.Wrapf(ErrInsufficientTokens, "balance %s, requested %s", state.WalletBalance, &amount)
		}

		balance, err := state.WalletBalance.Subtract(amount)
		if err != nil {
			return nil, err
		}
		invested, err := state.Invested.Add(amount)
		if err != nil {
			return nil, err
		}
		state.WalletBalance = &balance
		state.Invested = &invested
		if err := c.states.Save(cache, stateKey, &state); err != nil {
			return nil, err
		}

		if err := inv.Invest(cache, c.account, amount); err != nil {
			return nil, errors.Wrap(ErrInvestmentFailed, err.Error())
		}
		return []Event{FundInvested{Amount: amount}}, nil
	})
}

// WithdrawFund pulls the whole deposit back from the investment
// capability and credits it to the treasury. Owner only. Unlike
// InvestFund this works while paused, so funds can always be
// recovered.
func (c *Controller) WithdrawFund(caller fundmgr.Address, inv Investment) (coin.Coin, error) {
	var returned coin.Coin
	err := c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkOwner(caller); err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, errors.Wrap(ErrInvalidInvestment, "no capability")
		}

		amount, err := inv.Withdraw(cache, c.account)
		if err != nil {
			return nil, errors.Wrap(ErrWithdrawalFailed, err.Error())
		}
		if !amount.IsNonNegative() {
			return nil, errors.Wrapf(ErrWithdrawalFailed, "capability returned %s", &amount)
		}
		returned = amount
		if amount.IsZero() {
			return nil, nil
		}
		if amount.Ticker != c.conf.Ticker {
			return nil, errors.Wrapf(ErrWithdrawalFailed, "%s returned to a %s fund", amount.Ticker, c.conf.Ticker)
		}

		state, err := c.loadState(cache)
		if err != nil {
			return nil, err
		}
		balance, err := state.WalletBalance.Add(amount)
		if err != nil {
			return nil, err
		}
		invested, err := state.Invested.Subtract(amount)
		if err != nil {
			return nil, err
		}
		state.WalletBalance = &balance
		state.Invested = &invested
		if err := c.states.Save(cache, stateKey, &state); err != nil {
			return nil, err
		}
		return []Event{FundWithdrawn{Amount: amount}}, nil
	})
	if err != nil {
		return coin.Coin{}, err
	}
	return returned, nil
}

// Pause suspends all mutating operations except WithdrawFund and
// Unpause. Owner only.
func (c *Controller) Pause(caller fundmgr.Address) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkOwner(caller); err != nil {
			return nil, err
		}
		if c.paused {
			return nil, errors.Wrap(errors.ErrState, "already paused")
		}
		c.paused = true
		return []Event{Paused{}}, nil
	})
}

// Unpause lifts the pause. Owner only.
func (c *Controller) Unpause(caller fundmgr.Address) error {
	return c.run(func(cache fundmgr.KVCacheWrap) ([]Event, error) {
		if err := c.checkOwner(caller); err != nil {
			return nil, err
		}
		if !c.paused {
			return nil, errors.Wrap(errors.ErrState, "not paused")
		}
		c.paused = false
		return []Event{Unpaused{}}, nil
	})
}

// --- read operations, served from committed state ---

// BeneficiaryCount returns the number of beneficiaries.
func (c *Controller) BeneficiaryCount() int {
	return c.shares.Count()
}

// Beneficiary returns the beneficiary at the given position.
func (c *Controller) Beneficiary(i int) (Beneficiary, error) {
	return c.shares.Beneficiary(i)
}

// CauseName returns the descriptive cause name.
func (c *Controller) CauseName() string {
	return c.conf.CauseName
}

// CauseDescription returns the descriptive cause text.
func (c *Controller) CauseDescription() string {
	return c.conf.CauseDescription
}

// MaturityDate returns the configured fund maturity date.
func (c *Controller) MaturityDate() fundmgr.UnixTime {
	return c.conf.MaturityDate
}

// EmergencyWithdrawalConfig returns the withdrawal limit parameters.
func (c *Controller) EmergencyWithdrawalConfig() WithdrawalConfig {
	return WithdrawalConfig{
		RequiredApprovals:  c.conf.RequiredApprovals,
		TimesAllowed:       c.conf.TimesAllowed,
		LimitPerWithdrawal: c.conf.LimitPerWithdrawal,
		TotalLimit:         c.conf.TotalLimit,
	}
}

// EmergencyWithdrawal returns the withdrawal stored under the given id.
func (c *Controller) EmergencyWithdrawal(id int64) (EmergencyWithdrawal, error) {
	return c.loadWithdrawal(c.db, id)
}

// EmergencyWithdrawalApprovals returns the approval count of the given
// withdrawal.
func (c *Controller) EmergencyWithdrawalApprovals(id int64) (int, error) {
	w, err := c.loadWithdrawal(c.db, id)
	if err != nil {
		return 0, err
	}
	return w.ApprovalCount(), nil
}

// HasApprovedEmergencyWithdrawal returns whether the given governor
// approved the given withdrawal.
func (c *Controller) HasApprovedEmergencyWithdrawal(id int64, addr fundmgr.Address) (bool, error) {
	w, err := c.loadWithdrawal(c.db, id)
	if err != nil {
		return false, err
	}
	return w.HasApproved(addr), nil
}

// TotalWithdrawnAmount returns the cumulative executed withdrawal
// amount.
func (c *Controller) TotalWithdrawnAmount() (coin.Coin, error) {
	state, err := c.loadState(c.db)
	if err != nil {
		return coin.Coin{}, err
	}
	return *state.TotalWithdrawn, nil
}

// WalletBalance returns the current treasury balance.
func (c *Controller) WalletBalance() (coin.Coin, error) {
	state, err := c.loadState(c.db)
	if err != nil {
		return coin.Coin{}, err
	}
	return *state.WalletBalance, nil
}

// InvestedAmount returns the net amount currently moved out to the
// investment capability.
func (c *Controller) InvestedAmount() (coin.Coin, error) {
	state, err := c.loadState(c.db)
	if err != nil {
		return coin.Coin{}, err
	}
	return *state.Invested, nil
}

// WithdrawalsExecuted returns how many emergency withdrawals were
// executed so far.
func (c *Controller) WithdrawalsExecuted() (int64, error) {
	state, err := c.loadState(c.db)
	if err != nil {
		return 0, err
	}
	return state.WithdrawalsExecuted, nil
}

// GetDeposit reports the fund's current deposit in the given
// investment capability.
func (c *Controller) GetDeposit(inv Investment) (coin.Coin, error) {
	if inv == nil {
		return coin.Coin{}, errors.Wrap(ErrInvalidInvestment, "no capability")
	}
	return inv.GetDeposit(c.db, c.account)
}

// IsPaused returns whether the pause switch is on.
func (c *Controller) IsPaused() bool {
	return c.paused
}

// IsGovernor returns whether the given address is a governor.
func (c *Controller) IsGovernor(addr fundmgr.Address) bool {
	return c.conf.IsGovernor(addr)
}

// Owner returns the fund owner.
func (c *Controller) Owner() fundmgr.Address {
	return c.conf.Owner
}

// Account returns the treasury's address on the cash ledger.
func (c *Controller) Account() fundmgr.Address {
	return c.account
}
