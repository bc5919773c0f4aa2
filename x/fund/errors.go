package fund

import "github.com/causefund/fundmgr/errors"

var (
	// ErrBeneficiaryShares is raised at construction when the
	// beneficiary and share listings are empty or of different length.
	ErrBeneficiaryShares = errors.Register(1200, "invalid beneficiary shares")

	// ErrTotalShare is raised at construction when the shares do not
	// sum to exactly 10000 basis points.
	ErrTotalShare = errors.Register(1201, "invalid total share percentage")

	// ErrMaturityDate is raised at construction when the fund maturity
	// date is not strictly in the future.
	ErrMaturityDate = errors.Register(1202, "invalid maturity date")

	// ErrNotGovernor is returned when a caller outside the governor
	// set attempts a withdrawal operation.
	ErrNotGovernor = errors.Register(1203, "not a governor")

	// ErrAlreadyApproved is returned when a governor approves the same
	// withdrawal twice.
	ErrAlreadyApproved = errors.Register(1204, "already approved")

	// ErrMissingApprovals is returned when execution is attempted
	// before the approval quorum is reached.
	ErrMissingApprovals = errors.Register(1205, "missing approvals")

	// ErrWithdrawalLimit is returned when a single withdrawal request
	// exceeds the per-withdrawal limit.
	ErrWithdrawalLimit = errors.Register(1206, "withdrawal amount breaches limit")

	// ErrTotalWithdrawalLimit is returned when a withdrawal would
	// exceed the cumulative limit or the allowed execution count.
	ErrTotalWithdrawalLimit = errors.Register(1207, "total withdrawal limit breached")

	// ErrInsufficientTokens is returned when the treasury balance
	// cannot cover the requested amount.
	ErrInsufficientTokens = errors.Register(1208, "insufficient tokens")

	// ErrInvalidInvestment is returned when no investment capability
	// is provided to the investment operations.
	ErrInvalidInvestment = errors.Register(1209, "invalid investment contract")

	// ErrZeroAmount is returned for operations on a zero amount.
	ErrZeroAmount = errors.Register(1210, "zero amount")

	// ErrInvestmentFailed wraps any failure of the external investment
	// capability during investFund.
	ErrInvestmentFailed = errors.Register(1211, "investment failed")

	// ErrWithdrawalFailed wraps any failure of the external investment
	// capability during withdrawFund.
	ErrWithdrawalFailed = errors.Register(1212, "withdrawal failed")

	// ErrPaused is returned when a mutating operation is attempted
	// while the fund is paused.
	ErrPaused = errors.Register(1213, "fund is paused")

	// ErrReentrancy is returned when a mutating operation is attempted
	// while another one is still in flight.
	ErrReentrancy = errors.Register(1214, "reentrant call")
)
