package fund

import (
	"testing"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/fundtest"
	"github.com/causefund/fundmgr/fundtest/assert"
)

func TestEmergencyWithdrawalApprovalSet(t *testing.T) {
	addrs := fundtest.Addresses(3)
	w := EmergencyWithdrawal{
		Amount:    coin.NewCoinp(10, 0, "PYUSD"),
		Status:    WithdrawalStatusInitiated,
		Approvals: []fundmgr.Address{addrs[0]},
	}

	assert.Equal(t, 1, w.ApprovalCount())
	assert.Equal(t, true, w.HasApproved(addrs[0]))
	assert.Equal(t, false, w.HasApproved(addrs[1]))

	w.approve(addrs[1])
	assert.Equal(t, 2, w.ApprovalCount())
	assert.Equal(t, true, w.HasApproved(addrs[1]))
	assert.Equal(t, false, w.HasApproved(addrs[2]))
}

func TestEmergencyWithdrawalValidate(t *testing.T) {
	addr := fundtest.NewAddress("governor")

	cases := map[string]struct {
		w       EmergencyWithdrawal
		wantErr *errors.Error
	}{
		"valid": {
			w: EmergencyWithdrawal{
				Amount:    coin.NewCoinp(10, 0, "PYUSD"),
				Status:    WithdrawalStatusInitiated,
				Approvals: []fundmgr.Address{addr},
			},
		},
		"missing amount": {
			w: EmergencyWithdrawal{
				Status:    WithdrawalStatusInitiated,
				Approvals: []fundmgr.Address{addr},
			},
			wantErr: errors.ErrAmount,
		},
		"zero amount": {
			w: EmergencyWithdrawal{
				Amount:    coin.NewCoinp(0, 0, "PYUSD"),
				Status:    WithdrawalStatusInitiated,
				Approvals: []fundmgr.Address{addr},
			},
			wantErr: errors.ErrAmount,
		},
		"invalid status": {
			w: EmergencyWithdrawal{
				Amount:    coin.NewCoinp(10, 0, "PYUSD"),
				Approvals: []fundmgr.Address{addr},
			},
			wantErr: errors.ErrState,
		},
		"no approvals": {
			w: EmergencyWithdrawal{
				Amount: coin.NewCoinp(10, 0, "PYUSD"),
				Status: WithdrawalStatusInitiated,
			},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.w.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation result: %+v", err)
			}
		})
	}
}

func TestFundStateValidate(t *testing.T) {
	cases := map[string]struct {
		state   FundState
		wantErr *errors.Error
	}{
		"valid": {
			state: FundState{
				WalletBalance:  coin.NewCoinp(10, 0, "PYUSD"),
				TotalWithdrawn: coin.NewCoinp(0, 0, "PYUSD"),
				Invested:       coin.NewCoinp(0, 0, "PYUSD"),
			},
		},
		"negative invested is allowed once yield returns": {
			state: FundState{
				WalletBalance:  coin.NewCoinp(10, 0, "PYUSD"),
				TotalWithdrawn: coin.NewCoinp(0, 0, "PYUSD"),
				Invested:       coin.NewCoinp(-1, 0, "PYUSD"),
			},
		},
		"missing amounts": {
			state:   FundState{},
			wantErr: errors.ErrEmpty,
		},
		"negative balance": {
			state: FundState{
				WalletBalance:  coin.NewCoinp(-1, 0, "PYUSD"),
				TotalWithdrawn: coin.NewCoinp(0, 0, "PYUSD"),
				Invested:       coin.NewCoinp(0, 0, "PYUSD"),
			},
			wantErr: errors.ErrState,
		},
		"negative executed count": {
			state: FundState{
				WalletBalance:       coin.NewCoinp(0, 0, "PYUSD"),
				TotalWithdrawn:      coin.NewCoinp(0, 0, "PYUSD"),
				Invested:            coin.NewCoinp(0, 0, "PYUSD"),
				WithdrawalsExecuted: -1,
			},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.state.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation result: %+v", err)
			}
		})
	}
}

func TestWithdrawalStatusString(t *testing.T) {
	assert.Equal(t, "initiated", WithdrawalStatusInitiated.String())
	assert.Equal(t, "executed", WithdrawalStatusExecuted.String())
	assert.Equal(t, "invalid", WithdrawalStatus(9).String())
}
