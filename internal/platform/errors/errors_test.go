package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConfiguration, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeConfiguration.String(); got != "configuration" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(9999).String(); got != "code(9999)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestError_Methods(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	e1 := New(ErrorCodeValidation, "bad body")
	if CodeOf(e1) != ErrorCodeValidation || e1.Error() != "bad body" {
		t.Fatalf("New mismatch: %v", e1)
	}
	e2 := Newf(ErrorCodeJSON, "bad json at %d", 12)
	if got := e2.Error(); got != "bad json at 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("axis has no variant values")
	e3 := Wrap(src, ErrorCodeConfiguration, "plan")
	if !stderrs.Is(e3, src) {
		t.Fatalf("Wrap lost the cause")
	}
	if want := "plan: axis has no variant values"; e3.Error() != want {
		t.Fatalf("Wrap().Error = %q, want %q", e3.Error(), want)
	}
	e4 := Wrapf(src, ErrorCodeConfiguration, "plan %s", "sanity_check")
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeConfiguration {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}
	if Wrap(nil, ErrorCodeDB, "x") != nil || Wrapf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}

	e5 := WithField(e3, "axes")
	e6 := WithOp(e5, "Plan")
	if fe, ok := As(e5); !ok || fe.Field() != "axes" {
		t.Fatalf("WithField failed")
	}
	if oe, ok := As(e6); !ok || oe.Op() != "Plan" || oe.Field() != "axes" {
		t.Fatalf("WithOp failed")
	}
	if e0, _ := As(e3); e0.Field() != "" || e0.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithOp(src, "x") != src {
		t.Fatalf("WithOp should leave foreign errors alone")
	}
	if we, ok := As(WithField(src, "bound")); !ok || we.Code() != ErrorCodeUnknown || we.Field() != "bound" {
		t.Fatalf("WithField should wrap foreign errors")
	}
	if WithField(nil, "x") != nil {
		t.Fatalf("WithField(nil) should be nil")
	}
}

func TestWire(t *testing.T) {
	src := stderrs.New("root")

	w := WireFrom(WithField(Wrap(src, ErrorCodeConfiguration, "plan"), "excludes"))
	if w.Code != ErrorCodeConfiguration || w.Message != "plan: root" || w.Field != "excludes" {
		t.Fatalf("WireFrom mismatch: %+v", w)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) = %+v", wf)
	}

	if st, wf := HTTP(nil); st != http.StatusOK || wf != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", st, wf)
	}
	if st, wf := HTTP(TooLargef("space %d", 10)); st != http.StatusRequestEntityTooLarge || wf.Code != ErrorCodeTooLarge {
		t.Fatalf("HTTP(too large) = %d %+v", st, wf)
	}
}

func TestSugarAndRoot(t *testing.T) {
	checks := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeTooLarge:        TooLargef("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeUnknown:         Internalf("x"),
	}
	for code, err := range checks {
		if !IsCode(err, code) {
			t.Fatalf("sugar for %v produced %v", code, CodeOf(err))
		}
	}

	src := stderrs.New("root")
	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got != src {
		t.Fatalf("Root() = %v", got)
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}
}
