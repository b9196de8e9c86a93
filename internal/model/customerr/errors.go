package customerr

import "fmt"

// InvalidInputError marks input rejected at the boundary before it
// reaches the conversion or ledger paths.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RateUnavailableError signals that a conversion rate could not be
// resolved. It is recovered locally by the conversion service and must
// never surface as a fatal error on the write path.
type RateUnavailableError struct {
	From  string
	To    string
	Cause error
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate %s->%s unavailable: %v", e.From, e.To, e.Cause)
}

func (e *RateUnavailableError) Unwrap() error {
	return e.Cause
}

// PersistenceError is fatal to the current write. Nothing partial is
// left visible in the ledger when it is returned.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// CorruptRecordError is fatal to the read: a ledger with an unreadable
// row is never returned partially.
type CorruptRecordError struct {
	Line  int
	Cause error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt ledger record at line %d: %v", e.Line, e.Cause)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Cause
}
