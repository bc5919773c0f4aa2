package cash

import (
	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/orm"
)

// Controller is the entry point for all balance mutations. It
// wraps the wallet bucket, so no caller touches wallets directly.
type Controller struct {
	bucket orm.Bucket
}

// NewController returns a controller over the standard wallet bucket.
func NewController() Controller {
	return Controller{bucket: orm.NewBucket("wallet")}
}

// Balance returns the coins held by the given address. An address
// without a wallet holds no coins, which is not an error.
func (c Controller) Balance(db fundmgr.KVStore, addr fundmgr.Address) (coin.Coins, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	w, err := c.wallet(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// CoinMint creates new coins out of thin air and credits them to
// the destination wallet. This is how external deposits enter the
// ledger.
func (c Controller) CoinMint(db fundmgr.KVStore, dest fundmgr.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint: %v", &amount)
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, &w)
}

// MoveCoins transfers the given amount from the source wallet to
// the destination wallet. Fails without side effects if the source
// does not hold enough.
func (c Controller) MoveCoins(db fundmgr.KVStore, src, dest fundmgr.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %v", &amount)
	}
	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}

	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, &sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, &recipient)
}

// wallet loads the wallet of the given address, or an empty one
// if the address holds nothing yet.
func (c Controller) wallet(db fundmgr.KVStore, addr fundmgr.Address) (Wallet, error) {
	var w Wallet
	err := c.bucket.Load(db, addr, &w)
	switch {
	case err == nil:
		return w, nil
	case errors.ErrNotFound.Is(err):
		return Wallet{}, nil
	default:
		return Wallet{}, err
	}
}
