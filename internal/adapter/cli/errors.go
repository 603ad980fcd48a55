package cli

import (
	"errors"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgstore/internal/domain"
	"github.com/marcos-nsantos/imgstore/internal/pkg/apperror"
)

// Exit codes follow sysexits(3) where one fits.
const (
	ExitFailure  = 1
	ExitNotFound = 2
	ExitDataErr  = 65
	ExitIOErr    = 74
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case apperror.IsProcessing(err), errors.Is(err, domain.ErrInvalidImageID):
		return ExitDataErr
	case apperror.IsStorage(err):
		return ExitIOErr
	case errors.Is(err, domain.ErrImageNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	switch {
	case apperror.IsProcessing(err):
		fields = append(fields, zap.String("kind", "processing"))
		if src := apperror.SourcePath(err); src != "" {
			fields = append(fields, zap.String("source", src))
		}
	case apperror.IsStorage(err):
		fields = append(fields, zap.String("kind", "storage"))
	}
	return fields
}
