package http

import (
	"net/http"

	"confmatrix/internal/platform/net/http/bind"
)

// JSONHandler decodes T from the body with opts, defaulting to bind's limits, and passes it to fn
// decode and validation failures never reach fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return result(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// JSONHandlerNoBody calls fn without reading a body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler { return result(fn) }

// result writes fn's value in the envelope, or its error with the status its code maps to
func result(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
