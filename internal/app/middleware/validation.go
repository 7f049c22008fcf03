package middleware

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"staycal/internal/app/commands"
	"staycal/internal/app/queries"
	"staycal/internal/domain/shared/daterange"
)

type Validator interface {
	Validate(ctx context.Context, message any) error
}

// StructValidator validates messages by their `validate` struct tags.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator registers the "isodate" tag (YYYY-MM-DD strings) on top of the
// library's built-in rules.
func NewStructValidator() (*StructValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return nil, err
	}
	return &StructValidator{validate: v}, nil
}

func (s *StructValidator) Validate(ctx context.Context, message any) error {
	return s.validate.StructCtx(ctx, message)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := daterange.ParseDate(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func Validation(v Validator) CommandMiddleware {
	if v == nil {
		panic("middleware: validator required")
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := v.Validate(ctx, cmd); err != nil {
				return nil, err
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

func QueryValidation(v Validator) QueryMiddleware {
	if v == nil {
		panic("middleware: validator required")
	}
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := v.Validate(ctx, q); err != nil {
				return nil, err
			}
			return next.Ask(ctx, q)
		})
	}
}
