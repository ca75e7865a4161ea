package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/maxviazov/workout-api/internal/service"
)

var registerTagNames sync.Once

// useJSONFieldNames makes binding errors report json/form names instead of Go field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindError converts a gin binding failure into the aggregated invalid-input error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed request: " + err.Error()}})
	}
	fe := make([]service.FieldError, 0, len(verrs))
	for _, v := range verrs {
		fe = append(fe, service.FieldError{Field: fieldPath(v), Message: ruleMessage(v)})
	}
	return service.NewInvalidInputError(fe)
}

// fieldPath drops the top-level struct name: "createAthleteRequest.category.name" -> "category.name".
func fieldPath(v validator.FieldError) string {
	ns := v.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return v.Field()
}

func ruleMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "max":
		return "length must be <= " + v.Param()
	case "len":
		return "length must be " + v.Param()
	case "gt":
		return "must be > " + v.Param()
	case "numeric":
		return "must contain digits only"
	case "oneof":
		return "must be one of " + v.Param()
	default:
		return "failed " + v.Tag() + " rule"
	}
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindError(err)
	}
	return nil
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return uuid.Nil, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}
	return id, nil
}
