package cash

import (
	"testing"

	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/fundtest"
	"github.com/causefund/fundmgr/fundtest/assert"
	"github.com/causefund/fundmgr/store"
)

func TestCoinMintAndBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := fundtest.NewAddress("alice")

	// fresh address holds nothing
	cs, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, true, cs.IsEmpty())

	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(100, 0, "PYUSD")))
	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(11, 0, "PYUSD")))

	cs, err = ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 1, cs.Count())
	assert.Equal(t, coin.NewCoin(111, 0, "PYUSD"), *cs[0])
}

func TestCoinMintRejectsNonPositive(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := fundtest.NewAddress("alice")

	err := ctrl.CoinMint(db, alice, coin.NewCoin(0, 0, "PYUSD"))
	if !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
}

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := fundtest.NewAddress("alice")
	bob := fundtest.NewAddress("bob")

	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(100, 0, "PYUSD")))
	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(40, 0, "PYUSD")))

	cs, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(60, 0, "PYUSD"), *cs[0])

	cs, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(40, 0, "PYUSD"), *cs[0])
}

func TestMoveCoinsInsufficientFunds(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := fundtest.NewAddress("alice")
	bob := fundtest.NewAddress("bob")

	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(10, 0, "PYUSD")))

	err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(11, 0, "PYUSD"))
	if !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}

	// nothing moved
	cs, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(10, 0, "PYUSD"), *cs[0])
	cs, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, true, cs.IsEmpty())
}

func TestMoveCoinsFromEmptyWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	err := ctrl.MoveCoins(db, fundtest.NewAddress("a"), fundtest.NewAddress("b"), coin.NewCoin(1, 0, "PYUSD"))
	if !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %+v", err)
	}
}
