package cash

import (
	"github.com/gogo/protobuf/proto"

	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
)

// Wallet is the balance set held by one address.
type Wallet struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins" json:"coins,omitempty"`
}

var _ proto.Message = (*Wallet)(nil)

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString(w) }
func (*Wallet) ProtoMessage()    {}

// Validate ensures the wallet only holds a well formed coin set.
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Coins.Validate(), "wallet coins")
}

// Add modifies the wallet to add the given coin
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins.Add(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove the given coin.
// Returns an error if the result would be negative.
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}
