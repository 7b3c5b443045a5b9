package repo

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/services/report/domain"
)

// File reads a json array of experiment objects
type File struct {
	Path string
}

var _ domain.SourcePort = File{}

// Load reads and decodes the whole file
func (f File) Load(ctx context.Context) ([]domain.Experiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "canceled")
	}
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.WithField(perr.NotFoundf("experiments file %s not found", f.Path), "path")
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read %s", f.Path)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", f.Path)
	}
	docs := make([][]byte, len(raw))
	for i, r := range raw {
		docs[i] = r
	}
	return decodeDocs(docs)
}
