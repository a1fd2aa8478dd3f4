package main

// Exit codes for the tidewatch CLI.
const (
	ExitOK          = 0 // Command succeeded.
	ExitError       = 1 // Bad configuration or a fatal runtime error.
	ExitDegraded    = 2 // Backend reachable but some endpoints failed.
	ExitUnreachable = 3 // Backend did not answer the health probe.
)

// exitCodeError carries a specific exit code out of a command.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string {
	return e.msg
}
