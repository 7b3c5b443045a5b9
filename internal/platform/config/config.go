// Package config reads service configuration from prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"confmatrix/internal/platform/logger"
	pstrings "confmatrix/internal/platform/strings"
)

// Conf is a prefixed view over the environment, e.g. "CORE_MATRIX_"
// New() for the whole environment, Prefix for a module scope
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// invalid logs a rejected value and reports that def is used instead
func (c Conf) invalid(k, v string, def any, why string) {
	logger.Get().Warn().Str("key", c.key(k)).Str("value", v).Interface("default", def).Msg(why + "; using default")
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustInt panics when key is unset or not an integer
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return n
}

// MustDuration panics when key is unset or not a Go duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid duration (e.g. 250ms, 2s, 1h)")
	}
	return d
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def, warning when the value is not an integer
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, def, "invalid int")
		return def
	}
	return n
}

// MayPositiveInt is MayInt restricted to values >= 1
func (c Conf) MayPositiveInt(key string, def int) int {
	n := c.MayInt(key, def)
	if n < 1 {
		c.invalid(key, strconv.Itoa(n), def, "value must be >= 1")
		return def
	}
	return n
}

// MayBool returns the value or def, warning when the value is not a bool
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		c.invalid(key, s, def, "invalid bool")
		return def
	}
	return b
}

// MayDuration returns the value or def, warning when the value is not a duration
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.invalid(key, s, def, "invalid duration")
		return def
	}
	return d
}

// MayPort returns a listen address like ":4000"
// accepts "4000" or ":4000", warns and returns def outside 1..65535
func (c Conf) MayPort(key, def string) string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	p, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	if err != nil || p < 1 || p > 65535 {
		c.invalid(key, s, def, "invalid TCP port")
		return def
	}
	return ":" + strconv.Itoa(p)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	out := pstrings.SplitList(s)
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lower-cased value when it is one of allowed and def when unset
// any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
