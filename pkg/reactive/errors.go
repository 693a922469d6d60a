package reactive

import "errors"

// ErrBudgetExceeded is returned when a drain runs more effects than its
// storm budget allows.
var ErrBudgetExceeded = errors.New("reactive: effect storm budget exceeded")
