package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-ranker/internal/screening"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "skills", Message: "max"}
	assert.Equal(t, "validation error: skills - max", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrNotFound{Resource: "job description", ID: id.String()}
	assert.Equal(t, "job description not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestJobNotFound(t *testing.T) {
	id := uuid.New()

	err := jobNotFound(fmt.Errorf("%w: %s", screening.ErrJobNotFound, id), id)
	var notFoundErr *ErrNotFound
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "job description", notFoundErr.Resource)
	assert.Equal(t, id.String(), notFoundErr.ID)

	boom := errors.New("boom")
	assert.Same(t, boom, jobNotFound(boom, id))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("%w: abc", screening.ErrJobNotFound)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("decode: %w", &ErrValidation{Field: "x"})))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestValidationError(t *testing.T) {
	type request struct {
		Limit int `validate:"min=1"`
	}
	err := validator.New().Struct(request{})

	ve := validationError(err)
	assert.Equal(t, "Limit", ve.Field)
	assert.Equal(t, "min", ve.Message)

	fallback := validationError(errors.New("other"))
	assert.Equal(t, "request", fallback.Field)
}
