package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/stayhub/wallet-service/internal/application/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a decoded request against its struct tags and wraps
// failures into the application error taxonomy.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: invalid or missing fields: %s",
			errs.ErrInvalidRequest, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err)
}
