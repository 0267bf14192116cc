// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/middleware"
	"github.com/amirphl/marketing-manager/app/validation"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// baseHandler carries the request plumbing shared by every handler
type baseHandler struct {
	rules  *validation.Validator
	checks *validator.Validate
}

func newBaseHandler(rules *validation.Validator) baseHandler {
	checks := validator.New()
	checks.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return baseHandler{rules: rules, checks: checks}
}

// NewValidator builds the rule evaluator used by handlers, backed by the wall clock
// and the storage id format
func NewValidator() *validation.Validator {
	return validation.New(time.Now, repository.IsValidID)
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.MessageResponse{Message: message})
}

func (h *baseHandler) ValidationResponse(c fiber.Ctx, ruleset string, violations validation.Violations) error {
	middleware.ObserveValidationFailure(ruleset)
	errs := make([]dto.FieldError, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, dto.FieldError{Field: v.Field, Message: v.Message})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Status: "error", Errors: errs})
}

// decodeBody parses the JSON body, runs rs over it and fills out with the
// normalized values. When ok is false the error response has been written
// and err must be returned from the handler as is.
func (h *baseHandler) decodeBody(c fiber.Ctx, rs validation.Ruleset, out any) (raw validation.Record, ok bool, err error) {
	raw = validation.Record{}
	if body := c.Body(); len(body) > 0 {
		if jerr := json.Unmarshal(body, &raw); jerr != nil {
			return nil, false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	normalized, violations := h.rules.Validate(rs, raw)
	if len(violations) > 0 {
		return nil, false, h.ValidationResponse(c, rs.Name, violations)
	}

	encoded, jerr := json.Marshal(compact(normalized))
	if jerr == nil {
		jerr = json.Unmarshal(encoded, out)
	}
	if jerr != nil {
		return nil, false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return raw, true, nil
}

// decodeStruct binds the JSON body into a tagged struct and validates it
func (h *baseHandler) decodeStruct(c fiber.Ctx, ruleset string, out any) (ok bool, err error) {
	if berr := c.Bind().JSON(out); berr != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if verr := h.checks.Struct(out); verr != nil {
		var violations validation.Violations
		if fieldErrs, isFieldErrs := verr.(validator.ValidationErrors); isFieldErrs {
			for _, fe := range fieldErrs {
				violations = append(violations, validation.Violation{Field: fe.Field(), Message: getValidationErrorMessage(fe)})
			}
		}
		return false, h.ValidationResponse(c, ruleset, violations)
	}
	return true, nil
}

// parseID checks a path parameter against the storage id format
func (h *baseHandler) parseID(c fiber.Ctx, param, message string) (uuid.UUID, bool, error) {
	value := c.Params(param)
	if _, violations := h.rules.Validate(validation.IDParam(param, message), validation.Record{param: value}); len(violations) > 0 {
		return uuid.Nil, false, h.ValidationResponse(c, "id_param", violations)
	}
	id, err := repository.ParseID(value)
	if err != nil {
		return uuid.Nil, false, h.ValidationResponse(c, "id_param", validation.Violations{{Field: param, Message: message}})
	}
	return id, true, nil
}

// handleError maps business errors onto HTTP statuses
func (h *baseHandler) handleError(c fiber.Ctx, err error, operation string) error {
	switch {
	case businessflow.IsUnauthenticated(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, businessflow.MessageOf(err, "Not authorized"))
	case businessflow.IsForbidden(err):
		return h.ErrorResponse(c, fiber.StatusForbidden, businessflow.MessageOf(err, "Not allowed to access this resource"))
	case businessflow.IsLoginLocked(err):
		return h.ErrorResponse(c, fiber.StatusTooManyRequests, businessflow.MessageOf(err, "Too many requests"))
	case businessflow.IsInvalidDateRange(err):
		return h.ValidationResponse(c, "date_range", validation.Violations{{
			Field:   "endDate",
			Message: businessflow.MessageOf(err, "End date must be after start date"),
		}})
	case businessflow.IsConflict(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, businessflow.MessageOf(err, "Request conflicts with the current state"))
	case businessflow.IsNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, businessflow.MessageOf(err, "Resource not found"))
	}

	log.Println(operation+" failed", err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
}

func (h *baseHandler) principal(c fiber.Ctx) *businessflow.Principal {
	principal, _ := middleware.GetPrincipalFromContext(c)
	return principal
}

func (h *baseHandler) metadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(requestID(c))
	return metadata
}

// createRequestContext creates a context with the default timeout and request-scoped values
func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return h.createRequestContextWithTimeout(c, endpoint, utils.DefaultRequestTimeout)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func (h *baseHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, requestID(c))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)

	return ctx, cancel
}

func requestID(c fiber.Ctx) string {
	if id := requestid.FromContext(c); id != "" {
		return id
	}
	return c.Get("X-Request-ID")
}

// compact drops absent values (null or empty string) so they decode as "not present"
func compact(record validation.Record) validation.Record {
	out := make(validation.Record, len(record))
	for k, v := range record {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t == "" {
				continue
			}
		case map[string]any:
			v = compact(t)
		}
		out[k] = v
	}
	return out
}

var fieldLabels = map[string]string{
	"email":        "Email",
	"password":     "Password",
	"refreshToken": "Refresh token",
}

func getValidationErrorMessage(err validator.FieldError) string {
	label, ok := fieldLabels[err.Field()]
	if !ok {
		label = err.Field()
	}
	switch err.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "max":
		return label + " must be at most " + err.Param() + " characters"
	default:
		return label + " is invalid"
	}
}
