package testkit

import "testing"

// seams admits one Serial test at a time
var seams = make(chan struct{}, 1)

// Swap sets *target to v until t ends and returns the value it displaced
// target is usually a package-level hook like a pool constructor
func Swap[T any](t testing.TB, target *T, v T) T {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
	return prev
}

// Serial blocks until no other Serial test holds the seams, releasing them when t ends
// parallel tests that Swap the same hook call it first
func Serial(t testing.TB) {
	t.Helper()
	seams <- struct{}{}
	t.Cleanup(func() { <-seams })
}
