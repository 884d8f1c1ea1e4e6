package service

import (
	"errors"
	"fmt"

	"shareit/internal/apperr"
	"shareit/internal/database"

	"github.com/rs/zerolog"
)

// lookupErr turns a store miss into a not-found error and wraps anything else.
func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("%s %d not found", entity, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}

func componentLogger(logger *zerolog.Logger, component string) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := logger.With().Str("component", component).Logger()
	return &l
}
