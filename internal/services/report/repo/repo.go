// Package repo loads experiment documents from a json file, postgres or clickhouse
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"confmatrix/internal/modkit/repokit"
	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/services/report/domain"
)

// Repo is the minimal persistence surface for experiment documents
type Repo interface {
	Docs(ctx context.Context) ([][]byte, error)
}

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// checkTable rejects anything that is not a plain, optionally schema qualified, identifier
func checkTable(table string) error {
	if !tableRe.MatchString(table) {
		return perr.WithField(perr.InvalidArgf("invalid table name %q", table), "table")
	}
	return nil
}

// splitTable splits schema.table into its parts
func splitTable(table string) []string { return strings.Split(table, ".") }

// decodeDocs parses every raw document as a json object
func decodeDocs(raw [][]byte) ([]domain.Experiment, error) {
	out := make([]domain.Experiment, 0, len(raw))
	for i, b := range raw {
		var e domain.Experiment
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, fmt.Sprintf("document %d", i))
		}
		if e == nil {
			return nil, perr.JSONErrf("document %d is not an object", i)
		}
		out = append(out, e)
	}
	return out, nil
}

func scanDoc(r repokit.Row) ([]byte, error) {
	var b []byte
	err := r.Scan(&b)
	return b, err
}
