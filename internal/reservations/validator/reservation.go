package validator

import (
	"errors"
	"fmt"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors as field -> message for AppError details.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so clients can map errors onto their payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator", "error", err)
	}

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

var (
	minCalendarDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxCalendarDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// validateCalendarDate rejects timestamps outside what BSON dates and clients agree on.
func validateCalendarDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.Before(minCalendarDate) && !t.After(maxCalendarDate)
}

func (v *ReservationValidator) ValidateCreate(req *model.CreateReservationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ValidationErrors{{Field: "userId", Message: "userId is required"}}
	}
	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid id", field)
		case "calendar_date":
			message = fmt.Sprintf("%s must be a valid ISO-8601 date", field)
		default:
			message = fmt.Sprintf("%s failed on %s validation", field, fe.Tag())
		}
		result = append(result, ValidationError{Field: field, Message: message})
	}
	v.logger.Debug("Reservation validation failed", "errors", result.Error())
	return result
}
