package modkit

import (
	"io"

	"confmatrix/internal/platform/logger"

	"github.com/rs/zerolog"
)

func zeroLog() *logger.Logger {
	l := zerolog.New(io.Discard)
	return &l
}
