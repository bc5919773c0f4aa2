package fund

import (
	"encoding/json"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
)

// Configuration is the full set of construction parameters of a fund.
// It is validated once when the controller is created and is immutable
// afterwards, there are no operations changing beneficiaries,
// governors or limits.
type Configuration struct {
	// Owner controls the investment lifecycle and the pause switch.
	// The owner is not a governor unless also listed as one.
	Owner fundmgr.Address `json:"owner"`

	// Ticker is the token the fund is denominated in. Every amount
	// passed to the fund must carry this ticker.
	Ticker string `json:"ticker"`

	Beneficiaries []Beneficiary     `json:"beneficiaries"`
	Governors     []fundmgr.Address `json:"governors"`

	// RequiredApprovals is the governor quorum for emergency
	// withdrawals. Must be between 1 and the governor count.
	RequiredApprovals int `json:"required_approvals"`

	// TimesAllowed caps how many emergency withdrawals may ever be
	// executed.
	TimesAllowed int64 `json:"times_allowed"`

	// LimitPerWithdrawal caps a single emergency withdrawal.
	LimitPerWithdrawal coin.Coin `json:"limit_per_withdrawal"`

	// TotalLimit caps the cumulative executed withdrawal amount.
	TotalLimit coin.Coin `json:"total_limit"`

	// BaseReleaseAmount and ReleaseInterval parameterize the periodic
	// release schedule. They are validated and kept for readers, the
	// schedule itself runs outside this engine.
	BaseReleaseAmount coin.Coin        `json:"base_release_amount"`
	ReleaseInterval   int64            `json:"release_interval"`
	MaturityDate      fundmgr.UnixTime `json:"maturity_date"`

	CauseName        string `json:"cause_name"`
	CauseDescription string `json:"cause_description"`
}

// LoadConfiguration reads a JSON-serialized configuration, as produced
// by deployment tooling. The result still must be validated.
func LoadConfiguration(raw []byte) (Configuration, error) {
	var c Configuration
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, errors.Wrap(err, "cannot parse configuration")
	}
	return c, nil
}

// Validate checks everything that does not depend on the clock. The
// maturity date is checked against the current time by NewController.
func (c Configuration) Validate() error {
	var errs error
	if err := c.Owner.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "owner"))
	}
	if !coin.IsCC(c.Ticker) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency, "ticker: %q", c.Ticker))
	}
	if len(c.Governors) == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "governors"))
	}
	for i, g := range c.Governors {
		if err := g.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "governor %d", i))
		}
		for _, other := range c.Governors[i+1:] {
			if g.Equals(other) {
				errs = errors.Append(errs, errors.Wrapf(errors.ErrDuplicate, "governor %s", g))
			}
		}
	}
	if c.RequiredApprovals < 1 || c.RequiredApprovals > len(c.Governors) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput,
			"required approvals %d for %d governors", c.RequiredApprovals, len(c.Governors)))
	}
	if c.TimesAllowed < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative times allowed"))
	}
	if !c.LimitPerWithdrawal.IsPositive() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "limit per withdrawal"))
	}
	if !c.TotalLimit.IsPositive() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "total limit"))
	}
	for _, amount := range []coin.Coin{c.LimitPerWithdrawal, c.TotalLimit, c.BaseReleaseAmount} {
		if !amount.IsZero() && amount.Ticker != c.Ticker {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency,
				"%s amount in a %s fund", amount.Ticker, c.Ticker))
		}
	}
	if c.ReleaseInterval < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "negative release interval"))
	}
	if err := c.MaturityDate.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "maturity date"))
	}
	if c.CauseName == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "cause name"))
	}
	return errs
}

// IsGovernor returns whether the given address belongs to the governor
// set.
func (c Configuration) IsGovernor(addr fundmgr.Address) bool {
	for _, g := range c.Governors {
		if g.Equals(addr) {
			return true
		}
	}
	return false
}

// WithdrawalConfig is the read-only view of the emergency withdrawal
// parameters.
type WithdrawalConfig struct {
	RequiredApprovals  int       `json:"required_approvals"`
	TimesAllowed       int64     `json:"times_allowed"`
	LimitPerWithdrawal coin.Coin `json:"limit_per_withdrawal"`
	TotalLimit         coin.Coin `json:"total_limit"`
}
