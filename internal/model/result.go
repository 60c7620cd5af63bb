package model

// Status describes how a structured query ended.
type Status string

const (
	StatusOK      Status = "ok"      // model returned non-empty, valid data
	StatusEmpty   Status = "empty"   // model returned valid data with nothing in it
	StatusSkipped Status = "skipped" // input validation declined to call the model
	StatusFailed  Status = "failed"  // transport or response-shape failure
)

// Result carries a structured query's value together with how it was produced.
// Value is always correctly shaped: the parsed data on ok/empty, the type's
// default on skipped/failed.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string // skip rule or failure category; empty on ok/empty
	Err    error  // cause of a failure
}

// Succeeded reports whether the model produced a usable answer, even an empty one.
func (r Result[T]) Succeeded() bool {
	return r.Status == StatusOK || r.Status == StatusEmpty
}

// OK builds a success result, marking it empty when isEmpty is set.
func OK[T any](v T, isEmpty bool) Result[T] {
	if isEmpty {
		return Result[T]{Value: v, Status: StatusEmpty}
	}
	return Result[T]{Value: v, Status: StatusOK}
}

// Skipped builds a result for a call that input validation declined.
func Skipped[T any](def T, reason string) Result[T] {
	return Result[T]{Value: def, Status: StatusSkipped, Reason: reason}
}

// Failed builds a result for a call that failed; def is the type default.
func Failed[T any](def T, category string, err error) Result[T] {
	return Result[T]{Value: def, Status: StatusFailed, Reason: category, Err: err}
}
