package board

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"forum/pkg/logger"
	"forum/pkg/store"
)

var (
	ErrValidation      = errors.New("board: validation failed")
	ErrUnauthenticated = errors.New("board: authentication required")
	ErrPersistence     = errors.New("board: persistence failure")
	ErrNotFound        = errors.New("board: not found")
	ErrForbidden       = errors.New("board: only the author can do that")
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// check validates s and reports every missing field in one ErrValidation.
func (b *Board) check(s interface{}) error {
	err := b.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(fields, ", "))
}

// fail turns a collaborator error into the error the caller sees. Missing
// rows become ErrNotFound, everything else ErrPersistence; the cause is kept.
func (b *Board) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("board: %s: %w: %w", op, ErrNotFound, err)
	}
	return b.persistence(ctx, op, err)
}

// persistence reports err as a failed store call whatever its cause.
// Vote writes go here directly so a row lost to a concurrent toggle is
// never taken for a missing post.
func (b *Board) persistence(ctx context.Context, op string, err error) error {
	b.metrics.PersistenceErrors.WithLabelValues(op).Inc()
	logger.Log(ctx).Errorf("board: %s failed: %v", op, err)
	return fmt.Errorf("board: %s: %w: %w", op, ErrPersistence, err)
}
