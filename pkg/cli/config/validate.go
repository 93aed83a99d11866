package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidConfig = goerr.New("invalid configuration")

var validate = validator.New()

// Validate checks the validate tags of a config struct. The first failing
// field is reported.
func Validate(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return goerr.Wrap(ErrInvalidConfig, fe.Error(),
			goerr.V("field", fe.Namespace()),
			goerr.V("rule", fe.Tag()),
			goerr.V("value", fe.Value()),
		)
	}
	return goerr.Wrap(err, "validate configuration")
}
