package fund

import (
	"github.com/gogo/protobuf/proto"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
)

// WithdrawalStatus is the lifecycle state of an emergency withdrawal.
// There is no rejected or cancelled state, a request that never
// reaches quorum simply stays initiated forever.
type WithdrawalStatus int32

const (
	WithdrawalStatusInvalid   WithdrawalStatus = 0
	WithdrawalStatusInitiated WithdrawalStatus = 1
	WithdrawalStatusExecuted  WithdrawalStatus = 2
)

func (s WithdrawalStatus) String() string {
	switch s {
	case WithdrawalStatusInitiated:
		return "initiated"
	case WithdrawalStatusExecuted:
		return "executed"
	default:
		return "invalid"
	}
}

// EmergencyWithdrawal is one governor-initiated withdrawal request and
// its approval state.
type EmergencyWithdrawal struct {
	Amount    *coin.Coin        `protobuf:"bytes,1,opt,name=amount" json:"amount,omitempty"`
	Status    WithdrawalStatus  `protobuf:"varint,2,opt,name=status" json:"status,omitempty"`
	Approvals []fundmgr.Address `protobuf:"bytes,3,rep,name=approvals" json:"approvals,omitempty"`
}

var _ proto.Message = (*EmergencyWithdrawal)(nil)

func (w *EmergencyWithdrawal) Reset()         { *w = EmergencyWithdrawal{} }
func (w *EmergencyWithdrawal) String() string { return proto.CompactTextString(w) }
func (*EmergencyWithdrawal) ProtoMessage()    {}

// Validate ensures the record is internally consistent before it is
// persisted.
func (w *EmergencyWithdrawal) Validate() error {
	if w.Amount == nil || !w.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "withdrawal amount must be positive")
	}
	if err := w.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	switch w.Status {
	case WithdrawalStatusInitiated, WithdrawalStatusExecuted:
	default:
		return errors.Wrapf(errors.ErrState, "invalid status %d", w.Status)
	}
	if len(w.Approvals) == 0 {
		return errors.Wrap(errors.ErrEmpty, "approvals")
	}
	for i, a := range w.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval %d", i)
		}
	}
	return nil
}

// HasApproved returns whether the given governor already approved this
// withdrawal.
func (w *EmergencyWithdrawal) HasApproved(addr fundmgr.Address) bool {
	for _, a := range w.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// ApprovalCount returns the number of distinct approvals collected.
func (w *EmergencyWithdrawal) ApprovalCount() int {
	return len(w.Approvals)
}

// approve records a new approval. The caller must have checked
// HasApproved first, approvals behave as a set.
func (w *EmergencyWithdrawal) approve(addr fundmgr.Address) {
	w.Approvals = append(w.Approvals, addr)
}

// FundState is the singleton accounting record of the fund. All
// amounts are in the fund's token.
type FundState struct {
	// WalletBalance is the amount currently held by the treasury and
	// available for withdrawals and investments.
	WalletBalance *coin.Coin `protobuf:"bytes,1,opt,name=wallet_balance,json=walletBalance" json:"wallet_balance,omitempty"`
	// TotalWithdrawn is the cumulative amount of executed emergency
	// withdrawals. It never decreases.
	TotalWithdrawn *coin.Coin `protobuf:"bytes,2,opt,name=total_withdrawn,json=totalWithdrawn" json:"total_withdrawn,omitempty"`
	// WithdrawalsExecuted counts executed emergency withdrawals. It
	// never decreases.
	WithdrawalsExecuted int64 `protobuf:"varint,3,opt,name=withdrawals_executed,json=withdrawalsExecuted" json:"withdrawals_executed,omitempty"`
	// Invested is the net amount moved out to the investment
	// capability. It may go negative once yield is withdrawn back.
	Invested *coin.Coin `protobuf:"bytes,4,opt,name=invested" json:"invested,omitempty"`
}

var _ proto.Message = (*FundState)(nil)

func (s *FundState) Reset()         { *s = FundState{} }
func (s *FundState) String() string { return proto.CompactTextString(s) }
func (*FundState) ProtoMessage()    {}

// Validate ensures the accounting record never reaches the store in a
// corrupt shape. The wallet balance and the cumulative total must not
// be negative, the net invested amount may be.
func (s *FundState) Validate() error {
	if s.WalletBalance == nil || s.TotalWithdrawn == nil || s.Invested == nil {
		return errors.Wrap(errors.ErrEmpty, "fund state amounts")
	}
	if !s.WalletBalance.IsNonNegative() {
		return errors.Wrap(errors.ErrState, "negative wallet balance")
	}
	if !s.TotalWithdrawn.IsNonNegative() {
		return errors.Wrap(errors.ErrState, "negative total withdrawn")
	}
	if s.WithdrawalsExecuted < 0 {
		return errors.Wrap(errors.ErrState, "negative withdrawal count")
	}
	if err := s.WalletBalance.Validate(); err != nil {
		return errors.Wrap(err, "wallet balance")
	}
	if err := s.TotalWithdrawn.Validate(); err != nil {
		return errors.Wrap(err, "total withdrawn")
	}
	return nil
}
