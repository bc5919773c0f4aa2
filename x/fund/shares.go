package fund

import (
	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
)

// totalShareBasisPoints is the required sum of all beneficiary shares,
// 10000 basis points being 100%.
const totalShareBasisPoints = 10000

// Beneficiary pairs an address with its fixed basis-point entitlement
// to every distributed amount.
type Beneficiary struct {
	Address         fundmgr.Address `json:"address"`
	SharePercentage int32           `json:"share_percentage"`
}

// Validate ensures the address is well formed and the share is within
// the representable basis-point range.
func (b Beneficiary) Validate() error {
	if err := b.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if b.SharePercentage <= 0 || b.SharePercentage > totalShareBasisPoints {
		return errors.Wrapf(ErrBeneficiaryShares, "share out of range: %d", b.SharePercentage)
	}
	return nil
}

// ShareTable holds the immutable beneficiary listing and computes
// proportional distributions.
type ShareTable struct {
	beneficiaries []Beneficiary
}

// NewShareTable builds a table from parallel listings of addresses and
// basis-point shares. Both must be non-empty, of equal length, and the
// shares must sum to exactly 10000.
func NewShareTable(addrs []fundmgr.Address, shares []int32) (ShareTable, error) {
	if len(addrs) == 0 || len(addrs) != len(shares) {
		return ShareTable{}, errors.Wrapf(ErrBeneficiaryShares,
			"%d addresses, %d shares", len(addrs), len(shares))
	}
	bs := make([]Beneficiary, len(addrs))
	var sum int64
	for i := range addrs {
		bs[i] = Beneficiary{Address: addrs[i], SharePercentage: shares[i]}
		if err := bs[i].Validate(); err != nil {
			return ShareTable{}, err
		}
		sum += int64(shares[i])
	}
	if sum != totalShareBasisPoints {
		return ShareTable{}, errors.Wrapf(ErrTotalShare, "shares sum to %d", sum)
	}
	return ShareTable{beneficiaries: bs}, nil
}

// Count returns the number of beneficiaries.
func (t ShareTable) Count() int {
	return len(t.beneficiaries)
}

// Beneficiary returns the beneficiary at the given position, in
// construction order.
func (t ShareTable) Beneficiary(i int) (Beneficiary, error) {
	if i < 0 || i >= len(t.beneficiaries) {
		return Beneficiary{}, errors.Wrapf(errors.ErrInput, "no beneficiary at %d", i)
	}
	return t.beneficiaries[i], nil
}

// Distribute computes, for each beneficiary in construction order, its
// floored proportional cut of the given amount. This is a pure
// computation, moving the funds is up to the caller. The cuts may sum
// to less than the input amount, the rounding remainder is not
// assigned to anyone here.
func (t ShareTable) Distribute(amount coin.Coin) ([]coin.Coin, error) {
	cuts := make([]coin.Coin, len(t.beneficiaries))
	for i, b := range t.beneficiaries {
		scaled, err := amount.Multiply(int64(b.SharePercentage))
		if err != nil {
			return nil, errors.Wrap(err, "scale share")
		}
		cut, _, err := scaled.Divide(totalShareBasisPoints)
		if err != nil {
			return nil, errors.Wrap(err, "divide share")
		}
		cuts[i] = cut
	}
	return cuts, nil
}
