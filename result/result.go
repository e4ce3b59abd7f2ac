package result

import (
	"fmt"
	"reflect"
	"strings"
)

// Result carries either a success value or an error message with an optional
// partial value, plus a Lifecycle. Partial values let decoding continue past
// recoverable problems while keeping the error observable. Results are
// immutable; every method returns a copy.
type Result[R any] struct {
	value      R
	message    string
	isError    bool
	hasPartial bool
	lifecycle  Lifecycle
}

// Failure is the error type produced by Err.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Success wraps a value. The lifecycle defaults to Experimental.
func Success[R any](value R) Result[R] {
	return Result[R]{value: value, lifecycle: Experimental()}
}

// Error makes a failed result with no recoverable value.
func Error[R any](message string) Result[R] {
	return Result[R]{isError: true, message: message, lifecycle: Experimental()}
}

// Errorf is Error with fmt formatting.
func Errorf[R any](format string, args ...any) Result[R] {
	return Error[R](fmt.Sprintf(format, args...))
}

// ErrorPartial makes a failed result that still carries a usable value.
func ErrorPartial[R any](message string, partial R) Result[R] {
	return Result[R]{isError: true, message: message, hasPartial: true, value: partial, lifecycle: Experimental()}
}

func (r Result[R]) IsError() bool { return r.isError }

// Value returns the success value. The second return is false on error.
func (r Result[R]) Value() (R, bool) {
	if r.isError {
		var zero R
		return zero, false
	}
	return r.value, true
}

// Partial returns the partial value attached to an error, if any.
func (r Result[R]) Partial() (R, bool) {
	if r.isError && r.hasPartial {
		return r.value, true
	}
	var zero R
	return zero, false
}

// ResultOrPartial returns the success value, or reports the error to onError
// and returns the partial value when one exists. onError may be nil.
func (r Result[R]) ResultOrPartial(onError func(string)) (R, bool) {
	if !r.isError {
		return r.value, true
	}
	if onError != nil {
		onError(r.message)
	}
	if r.hasPartial {
		return r.value, true
	}
	var zero R
	return zero, false
}

// Message returns the error message, empty on success.
func (r Result[R]) Message() string { return r.message }

func (r Result[R]) Lifecycle() Lifecycle { return r.lifecycle }

func (r Result[R]) SetLifecycle(lc Lifecycle) Result[R] {
	r.lifecycle = lc
	return r
}

func (r Result[R]) AddLifecycle(lc Lifecycle) Result[R] {
	r.lifecycle = r.lifecycle.Add(lc)
	return r
}

// SetPartial attaches a partial value to an error. Successes are unchanged.
func (r Result[R]) SetPartial(partial R) Result[R] {
	if !r.isError {
		return r
	}
	r.value = partial
	r.hasPartial = true
	return r
}

// MapError transforms the error message. Successes are unchanged.
func (r Result[R]) MapError(f func(string) string) Result[R] {
	if r.isError {
		r.message = f(r.message)
	}
	return r
}

// PromotePartial turns an error that carries a partial value into a success.
// Errors without a partial value stay errors. onError observes the original
// message in either case and may be nil.
func (r Result[R]) PromotePartial(onError func(string)) Result[R] {
	if !r.isError {
		return r
	}
	if onError != nil {
		onError(r.message)
	}
	if !r.hasPartial {
		return r
	}
	return Result[R]{value: r.value, lifecycle: r.lifecycle}
}

// Must returns the value or panics with the (optionally transformed) error
// message. With allowPartial set, an error that carries a partial value
// yields that value instead of panicking. This is the only operation in the
// package that fails unrecoverably.
func (r Result[R]) Must(allowPartial bool, onError func(string) string) R {
	if !r.isError {
		return r.value
	}
	if allowPartial && r.hasPartial {
		return r.value
	}
	msg := r.message
	if onError != nil {
		msg = onError(msg)
	}
	panic(msg)
}

// Err bridges into plain Go error handling: nil on success, a *Failure
// carrying the message otherwise.
func (r Result[R]) Err() error {
	if !r.isError {
		return nil
	}
	return &Failure{Message: r.message}
}

// Equal compares the success or error state, message and carried values.
// Lifecycle is deliberately excluded.
func (r Result[R]) Equal(other Result[R]) bool {
	if r.isError != other.isError || r.hasPartial != other.hasPartial || r.message != other.message {
		return false
	}
	if r.isError && !r.hasPartial {
		return true
	}
	return reflect.DeepEqual(r.value, other.value)
}

func (r Result[R]) String() string {
	if !r.isError {
		return fmt.Sprintf("Success[%v]", r.value)
	}
	if r.hasPartial {
		return fmt.Sprintf("Error[%s; partial=%v]", r.message, r.value)
	}
	return fmt.Sprintf("Error[%s]", r.message)
}

// Map transforms the carried value, both in successes and in error partials.
// It never changes whether the result is an error.
func Map[R, S any](r Result[R], f func(R) S) Result[S] {
	if !r.isError {
		return Result[S]{value: f(r.value), lifecycle: r.lifecycle}
	}
	out := Result[S]{isError: true, message: r.message, lifecycle: r.lifecycle}
	if r.hasPartial {
		out.hasPartial = true
		out.value = f(r.value)
	}
	return out
}

// FlatMap chains a result-producing function. On success f runs on the value
// and the lifecycles join. On an error with a partial value f runs on the
// partial: the original message is kept (concatenated with f's message when f
// also fails) and f's value survives as the new partial. Errors without a
// partial pass through untouched.
func FlatMap[R, S any](r Result[R], f func(R) Result[S]) Result[S] {
	if !r.isError {
		s := f(r.value)
		s.lifecycle = r.lifecycle.Add(s.lifecycle)
		return s
	}
	if !r.hasPartial {
		return Result[S]{isError: true, message: r.message, lifecycle: r.lifecycle}
	}
	s := f(r.value)
	lc := r.lifecycle.Add(s.lifecycle)
	if !s.isError {
		return Result[S]{isError: true, message: r.message, hasPartial: true, value: s.value, lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(r.message, s.message), lifecycle: lc}
	if s.hasPartial {
		out.hasPartial = true
		out.value = s.value
	}
	return out
}

// Ap applies a result-wrapped function to a result-wrapped value. Error
// messages from both sides merge, value side first. A partial output exists
// only when both sides carry a value. Lifecycles always join.
func Ap[R, S any](r Result[R], f Result[func(R) S]) Result[S] {
	lc := r.lifecycle.Add(f.lifecycle)
	if !r.isError && !f.isError {
		return Result[S]{value: f.value(r.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(r.message, f.message), lifecycle: lc}
	if (!r.isError || r.hasPartial) && (!f.isError || f.hasPartial) {
		out.hasPartial = true
		out.value = f.value(r.value)
	}
	return out
}

// Map2 merges two results through f. Messages of failing operands join in
// operand order, a partial output exists only when every operand carries a
// value, and lifecycles fold together. Map3 through Map6 follow the same
// scheme.
func Map2[A, B, S any](ra Result[A], rb Result[B], f func(A, B) S) Result[S] {
	lc := ra.lifecycle.Add(rb.lifecycle)
	if !ra.isError && !rb.isError {
		return Result[S]{value: f(ra.value, rb.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(ra.message, rb.message), lifecycle: lc}
	if ra.carries() && rb.carries() {
		out.hasPartial = true
		out.value = f(ra.value, rb.value)
	}
	return out
}

func Map3[A, B, C, S any](ra Result[A], rb Result[B], rc Result[C], f func(A, B, C) S) Result[S] {
	lc := ra.lifecycle.Add(rb.lifecycle).Add(rc.lifecycle)
	if !ra.isError && !rb.isError && !rc.isError {
		return Result[S]{value: f(ra.value, rb.value, rc.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(ra.message, rb.message, rc.message), lifecycle: lc}
	if ra.carries() && rb.carries() && rc.carries() {
		out.hasPartial = true
		out.value = f(ra.value, rb.value, rc.value)
	}
	return out
}

func Map4[A, B, C, D, S any](ra Result[A], rb Result[B], rc Result[C], rd Result[D], f func(A, B, C, D) S) Result[S] {
	lc := ra.lifecycle.Add(rb.lifecycle).Add(rc.lifecycle).Add(rd.lifecycle)
	if !ra.isError && !rb.isError && !rc.isError && !rd.isError {
		return Result[S]{value: f(ra.value, rb.value, rc.value, rd.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(ra.message, rb.message, rc.message, rd.message), lifecycle: lc}
	if ra.carries() && rb.carries() && rc.carries() && rd.carries() {
		out.hasPartial = true
		out.value = f(ra.value, rb.value, rc.value, rd.value)
	}
	return out
}

func Map5[A, B, C, D, E, S any](ra Result[A], rb Result[B], rc Result[C], rd Result[D], re Result[E], f func(A, B, C, D, E) S) Result[S] {
	lc := ra.lifecycle.Add(rb.lifecycle).Add(rc.lifecycle).Add(rd.lifecycle).Add(re.lifecycle)
	if !ra.isError && !rb.isError && !rc.isError && !rd.isError && !re.isError {
		return Result[S]{value: f(ra.value, rb.value, rc.value, rd.value, re.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(ra.message, rb.message, rc.message, rd.message, re.message), lifecycle: lc}
	if ra.carries() && rb.carries() && rc.carries() && rd.carries() && re.carries() {
		out.hasPartial = true
		out.value = f(ra.value, rb.value, rc.value, rd.value, re.value)
	}
	return out
}

func Map6[A, B, C, D, E, F, S any](ra Result[A], rb Result[B], rc Result[C], rd Result[D], re Result[E], rf Result[F], f func(A, B, C, D, E, F) S) Result[S] {
	lc := ra.lifecycle.Add(rb.lifecycle).Add(rc.lifecycle).Add(rd.lifecycle).Add(re.lifecycle).Add(rf.lifecycle)
	if !ra.isError && !rb.isError && !rc.isError && !rd.isError && !re.isError && !rf.isError {
		return Result[S]{value: f(ra.value, rb.value, rc.value, rd.value, re.value, rf.value), lifecycle: lc}
	}
	out := Result[S]{isError: true, message: appendMessages(ra.message, rb.message, rc.message, rd.message, re.message, rf.message), lifecycle: lc}
	if ra.carries() && rb.carries() && rc.carries() && rd.carries() && re.carries() && rf.carries() {
		out.hasPartial = true
		out.value = f(ra.value, rb.value, rc.value, rd.value, re.value, rf.value)
	}
	return out
}

// carries reports whether the result holds a usable value, either a success
// value or an error partial.
func (r Result[R]) carries() bool {
	return !r.isError || r.hasPartial
}

func appendMessages(msgs ...string) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, "; ")
}
