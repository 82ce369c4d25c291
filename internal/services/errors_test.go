package services

import (
	"errors"
	"fmt"
	"testing"

	"ecohub/internal/validation"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"app error", NotFound("event not found"), KindNotFound},
		{"wrapped app error", fmt.Errorf("ctx: %w", Conflict("dup")), KindConflict},
		{"gorm not found", gorm.ErrRecordNotFound, KindNotFound},
		{"gorm duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), KindConflict},
		{"validation", validation.Errors{{Field: "name", Tag: "required"}}, KindBadRequest},
		{"plain", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapKeepsKind(t *testing.T) {
	err := Wrap(BadRequest("title is required for event entities"), "failed to create multi-entity")
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.Equal(t, "failed to create multi-entity: title is required for event entities", err.Error())

	internal := Wrap(errors.New("connection reset"), "failed to create multi-entity")
	assert.Equal(t, KindInternal, KindOf(internal))
	assert.Equal(t, "internal server error", PublicMessage(internal))
	assert.Nil(t, Wrap(nil, "x"))
}

func TestClassify(t *testing.T) {
	err := classify(gorm.ErrRecordNotFound, "startup")
	assert.Equal(t, "startup not found", PublicMessage(err))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = classify(errors.New("disk full"), "startup")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "internal server error", PublicMessage(err))
}

func TestPublicMessageHidesInternalErrors(t *testing.T) {
	err := Internal(errors.New("dial tcp 10.0.0.5:6379: connect: connection refused"), "failed to check token")
	assert.Equal(t, "internal server error", PublicMessage(err))
	assert.Equal(t, "internal server error", PublicMessage(fmt.Errorf("auth: %w", err)))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, "event not found", PublicMessage(NotFound("event not found")))
	assert.Equal(t, "record already exists", PublicMessage(gorm.ErrDuplicatedKey))
}
