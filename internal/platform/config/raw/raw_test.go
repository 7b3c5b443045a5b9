package raw

import (
	"testing"
)

func TestConf_Get(t *testing.T) {
	t.Setenv("LOG_SERVICE", " confmatrix ")
	t.Setenv("LOG_BLANK", "   ")

	root := New()
	log := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root sees full key", conf: root, key: "LOG_SERVICE", def: "x", want: "confmatrix"},
		{name: "prefixed hit is trimmed", conf: log, key: "SERVICE", def: "x", want: "confmatrix"},
		{name: "blank falls back", conf: log, key: "BLANK", def: "d", want: "d"},
		{name: "missing falls back", conf: log, key: "NOPE", def: "d", want: "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, ok := log.Lookup("BLANK"); ok {
		t.Fatalf("blank value should not be reported as set")
	}
}

func TestConf_GetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	for k, v := range map[string]string{
		"T1": "true", "T2": "1", "T3": "YES", "T4": " on ",
		"F1": "false", "F2": "0", "F3": "no", "F4": "OFF",
		"BAD": "maybe",
	} {
		t.Setenv("LOG_"+k, v)
	}

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"T4", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"F3", true, false},
		{"F4", true, false},
		{"BAD", true, true},
		{"BAD", false, false},
		{"UNSET", true, true},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
		}
	}
}

func TestConf_GetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_N", " 42 ")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_NAN", "4x")

	tests := []struct {
		key  string
		want int
	}{
		{"N", 42},
		{"NEG", 7},
		{"NAN", 7},
		{"UNSET", 7},
	}
	for _, tt := range tests {
		if got := c.GetInt(tt.key, 7); got != tt.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestConf_GetOneOf(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_OTHER", "xml")

	if got := c.GetOneOf("FORMAT", "console", "console", "json"); got != "json" {
		t.Fatalf("GetOneOf = %q, want json", got)
	}
	if got := c.GetOneOf("OTHER", "console", "console", "json"); got != "console" {
		t.Fatalf("GetOneOf = %q, want console", got)
	}
}
