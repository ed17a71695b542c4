package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/diyath7/small-shop-system/internal/apierror"
	"github.com/diyath7/small-shop-system/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal fields validate as float64 so min/gt tags work on them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid request body"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid request: "+err.Error()))
		return false
	}
	return true
}

// bindQuery binds query-string filters. Validation errors surface as 400s.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query parameters"))
		return false
	}
	return true
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto the HTTP envelope. Anything not in
// the known taxonomy is deferred to the ErrorHandler middleware as a 500.
func respondError(c *gin.Context, err error) {
	var shortfall *service.ShortfallError
	if errors.As(err, &shortfall) {
		c.JSON(http.StatusBadRequest, apierror.NewMulti(shortfall.Error(), shortfall.Shortfalls))
		return
	}
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, apierror.New(validation.Error()))
		return
	}
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
		return
	}
	_ = c.Error(err)
}
