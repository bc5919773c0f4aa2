package fund

import (
	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/orm"
	"github.com/causefund/fundmgr/x/cash"
)

// Investment is the external yield-bearing capability the fund can
// move treasury money into. Calls are synchronous and may fail, the
// fund maps failures to ErrInvestmentFailed and ErrWithdrawalFailed
// and rolls back all of its own state.
type Investment interface {
	// Invest pulls the given amount from the sender's wallet into the
	// investment.
	Invest(db fundmgr.KVStore, sender fundmgr.Address, amount coin.Coin) error

	// Withdraw returns the sender's whole deposit, reporting the
	// amount moved back.
	Withdraw(db fundmgr.KVStore, sender fundmgr.Address) (coin.Coin, error)

	// GetDeposit reports the sender's current deposit without moving
	// anything.
	GetDeposit(db fundmgr.KVStore, sender fundmgr.Address) (coin.Coin, error)
}

// Vault is a minimal Investment implementation backed by the cash
// ledger: deposits sit on the vault's own account and are tracked per
// sender. It bears no yield.
type Vault struct {
	cash    cash.Controller
	bucket  orm.Bucket
	account fundmgr.Address
	ticker  string
}

var _ Investment = Vault{}

// NewVault creates a vault with its own ledger account, derived from
// the given name.
func NewVault(ctrl cash.Controller, name string, ticker string) Vault {
	return Vault{
		cash:    ctrl,
		bucket:  orm.NewBucket("vault"),
		account: fundmgr.NewCondition("vault", "account", []byte(name)).Address(),
		ticker:  ticker,
	}
}

// Address returns the vault's ledger account.
func (v Vault) Address() fundmgr.Address {
	return v.account
}

func (v Vault) Invest(db fundmgr.KVStore, sender fundmgr.Address, amount coin.Coin) error {
	if err := v.cash.MoveCoins(db, sender, v.account, amount); err != nil {
		return err
	}
	dep, err := v.GetDeposit(db, sender)
	if err != nil {
		return err
	}
	total, err := dep.Add(amount)
	if err != nil {
		return err
	}
	return v.bucket.Save(db, sender, &total)
}

func (v Vault) Withdraw(db fundmgr.KVStore, sender fundmgr.Address) (coin.Coin, error) {
	dep, err := v.GetDeposit(db, sender)
	if err != nil {
		return coin.Coin{}, err
	}
	if dep.IsZero() {
		return coin.NewCoin(0, 0, v.ticker), nil
	}
	if err := v.cash.MoveCoins(db, v.account, sender, dep); err != nil {
		return coin.Coin{}, err
	}
	v.bucket.Delete(db, sender)
	return dep, nil
}

func (v Vault) GetDeposit(db fundmgr.KVStore, sender fundmgr.Address) (coin.Coin, error) {
	var dep coin.Coin
	switch err := v.bucket.Load(db, sender, &dep); {
	case err == nil:
		return dep, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewCoin(0, 0, v.ticker), nil
	default:
		return coin.Coin{}, err
	}
}
