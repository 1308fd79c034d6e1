package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/shared/errors"
)

type replyRequest struct {
	Content string `json:"content" validate:"required,max=10"`
	IDs     []uint `json:"ids" validate:"omitempty,max=2"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(replyRequest{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "content is required")

	err = ValidateStruct(replyRequest{Content: "hello world!!"})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Details, "content must be at most 10 characters long")

	err = ValidateStruct(replyRequest{Content: "ok", IDs: []uint{1, 2, 3}})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Details, "ids must contain at most 2 items")

	assert.NoError(t, ValidateStruct(replyRequest{Content: "ok"}))
}

func TestValidationMessage_NonValidatorError(t *testing.T) {
	assert.Equal(t, "EOF", ValidationMessage(errString("EOF")))
}

type errString string

func (e errString) Error() string { return string(e) }

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"12abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, err := ParseIDParam(c, "id", "ticket")
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
