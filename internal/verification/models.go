package verification

import "errors"

// MinScore is the lowest risk score treated as human. The boundary passes.
const MinScore = 0.5

// Caller-facing rejection reasons.
const (
	ReasonConfiguration  = "Configuration error."
	ReasonInvalidToken   = "Invalid reCAPTCHA token."
	ReasonActionMismatch = "reCAPTCHA action mismatch."
	ReasonLowScore       = "Bot-like behavior detected."
	ReasonUnavailable    = "Could not verify CAPTCHA."
)

// Metric labels for each outcome.
const (
	resultValid          = "valid"
	resultMisconfigured  = "misconfigured"
	resultInvalidToken   = "invalid_token"
	resultActionMismatch = "action_mismatch"
	resultLowScore       = "low_score"
	resultUnavailable    = "unavailable"
)

var (
	ErrMissingToken  = errors.New("verification token is required")
	ErrMissingAction = errors.New("expected action is required")
)

// Outcome is the verdict of one assessment. Reason is empty when Valid.
type Outcome struct {
	Valid  bool
	Reason string
}

func accepted() Outcome {
	return Outcome{Valid: true}
}

func rejected(reason string) Outcome {
	return Outcome{Valid: false, Reason: reason}
}
