package httpkit

import (
	"net/http"

	pstrings "confmatrix/internal/platform/strings"
)

// MountUnder mounts a subrouter at prefix, applies mw, then calls mount
// an empty prefix mounts in a group on r itself
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	body := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if prefix == "" {
		r.Group(body)
		return
	}
	r.Route(pstrings.MustPrefix(prefix), body)
}
