package cli

import (
	"errors"
	"fmt"
)

// usageError is a malformed invocation, as opposed to a failure while running.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// rejectedError reports an adjustment the timer declined without failing.
type rejectedError struct {
	op     string
	reason string
}

func (e rejectedError) Error() string {
	return fmt.Sprintf("%s ignored: %s", e.op, e.reason)
}

// ExitCode maps a command error to the process exit status: 0 on success,
// 2 for a malformed invocation, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}
