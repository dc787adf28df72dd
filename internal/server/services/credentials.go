package services

import (
	"errors"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// registration rules, checked in the order the tags are listed
type registerRules struct {
	UserName string `validate:"required"`
	Password string `validate:"required,min=6,maxbytes=72"`
}

type loginRules struct {
	UserName string `validate:"required"`
	Password string `validate:"required"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// bcrypt reads at most 72 bytes; "max" would count runes
		_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= n
		})
	})
	return validate
}

// checkCredentials validates rules and maps the first violation to a
// sentinel error. Missing fields win over length problems.
func checkCredentials(rules any) error {
	err := getValidator().Struct(rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.ErrorInternal
	}

	var short, long bool
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return common.ErrMissingCredentials
		case "min":
			short = true
		case "maxbytes":
			long = true
		}
	}

	switch {
	case short:
		return common.ErrPasswordTooShort
	case long:
		return common.ErrPasswordTooLong
	}
	return common.ErrMissingCredentials
}

func validateRegistration(c models.Credentials) error {
	return checkCredentials(registerRules{UserName: c.UserName, Password: c.Password})
}

func validateLogin(c models.Credentials) error {
	return checkCredentials(loginRules{UserName: c.UserName, Password: c.Password})
}
