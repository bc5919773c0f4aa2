package fund

import (
	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
)

// Event is an observable notification emitted by fund operations.
// Events are emitted only after the operation committed, a failed
// operation emits nothing.
type Event interface {
	// Kind is a stable machine readable name of the notification.
	Kind() string
}

// Emitter consumes events. Implementations must not call back into
// the fund controller.
type Emitter interface {
	Emit(Event)
}

// FundReceived is emitted for every deposit into the treasury.
type FundReceived struct {
	Sender fundmgr.Address
	Amount coin.Coin
	Note   string
}

func (FundReceived) Kind() string { return "fund_received" }

// EmergencyWithdrawalInitiated is emitted when a governor opens a new
// withdrawal request.
type EmergencyWithdrawalInitiated struct {
	ID        int64
	Initiator fundmgr.Address
	Amount    coin.Coin
}

func (EmergencyWithdrawalInitiated) Kind() string { return "emergency_withdrawal_initiated" }

// EmergencyWithdrawalApproved is emitted for every collected approval,
// including the initiator's implicit first one.
type EmergencyWithdrawalApproved struct {
	ID        int64
	Approver  fundmgr.Address
	Approvals int
}

func (EmergencyWithdrawalApproved) Kind() string { return "emergency_withdrawal_approved" }

// EmergencyWithdrawalExecuted is emitted when a withdrawal is paid out
// to the beneficiaries.
type EmergencyWithdrawalExecuted struct {
	ID     int64
	Amount coin.Coin
	Time   fundmgr.UnixTime
}

func (EmergencyWithdrawalExecuted) Kind() string { return "emergency_withdrawal_executed" }

// FundInvested is emitted when treasury funds are moved out to the
// investment capability.
type FundInvested struct {
	Amount coin.Coin
}

func (FundInvested) Kind() string { return "fund_invested" }

// FundWithdrawn is emitted when invested funds return to the treasury.
type FundWithdrawn struct {
	Amount coin.Coin
}

func (FundWithdrawn) Kind() string { return "fund_withdrawn" }

// Paused and Unpaused mirror the owner toggling the pause switch.
type Paused struct{}

func (Paused) Kind() string { return "paused" }

type Unpaused struct{}

func (Unpaused) Kind() string { return "unpaused" }

// EventLog is an Emitter keeping every event in memory, in emission
// order. Useful for tests and for callers that forward notifications.
type EventLog struct {
	Events []Event
}

var _ Emitter = (*EventLog)(nil)

func (l *EventLog) Emit(e Event) {
	l.Events = append(l.Events, e)
}

// discardEmitter is the default when no emitter is configured.
type discardEmitter struct{}

func (discardEmitter) Emit(Event) {}
