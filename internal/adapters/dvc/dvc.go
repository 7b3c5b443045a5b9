// Package dvc renders batch descriptors for dvc exp run and for humans
package dvc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"confmatrix/internal/core/batch"
	perr "confmatrix/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Format selects an output rendering
type Format string

// Supported formats
const (
	FormatDVC   Format = "dvc"
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
)

// Formats lists the accepted format names
func Formats() []string { return []string{string(FormatDVC), string(FormatLines), string(FormatJSON)} }

// ParseFormat maps a format name to a Format, empty meaning FormatDVC
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatDVC, nil
	case FormatDVC, FormatLines, FormatJSON:
		return f, nil
	default:
		return "", perr.WithField(perr.InvalidArgf("unknown format %q (want one of %s)", name, strings.Join(Formats(), ", ")), "format")
	}
}

// String renders d as set-parameter flags, -S axis="v1,v2" per axis in axis order
func String(d batch.Descriptor) string {
	parts := make([]string, len(d.Axes))
	for i, av := range d.Axes {
		parts[i] = fmt.Sprintf(`-S %s="%s"`, av.Axis, strings.Join(av.Values, ","))
	}
	return strings.Join(parts, " ")
}

// Strings renders every descriptor with String
func Strings(ds []batch.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = String(d)
	}
	return out
}

// Line renders d as axis=v1,v2 pairs separated by spaces
func Line(d batch.Descriptor) string {
	parts := make([]string, len(d.Axes))
	for i, av := range d.Axes {
		parts[i] = av.Axis + "=" + strings.Join(av.Values, ",")
	}
	return strings.Join(parts, " ")
}

// Lines renders every descriptor with Line
func Lines(ds []batch.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = Line(d)
	}
	return out
}

// WriteYAML writes strs as a yaml sequence
func WriteYAML(w io.Writer, strs []string) error {
	if strs == nil {
		strs = []string{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(strs); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode yaml")
	}
	return enc.Close()
}

// WriteJSON writes descriptors as an indented json array
func WriteJSON(w io.Writer, ds []batch.Descriptor) error {
	if ds == nil {
		ds = []batch.Descriptor{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode json")
	}
	return nil
}

// WriteLines writes one line per descriptor
func WriteLines(w io.Writer, ds []batch.Descriptor) error {
	for _, l := range Lines(ds) {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write renders ds in format f
func Write(w io.Writer, f Format, ds []batch.Descriptor) error {
	f, err := ParseFormat(string(f))
	if err != nil {
		return err
	}
	switch f {
	case FormatLines:
		return WriteLines(w, ds)
	case FormatJSON:
		return WriteJSON(w, ds)
	default:
		return WriteYAML(w, Strings(ds))
	}
}
