package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sals_backend/internal/grader"
	"sals_backend/internal/llm"
)

func TestHandleErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", fmt.Errorf("%w: 4 answers for 3 questions", grader.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("load quiz: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"malformed", &llm.MalformedResponse{Raw: "x", Err: fmt.Errorf("bad")}, http.StatusBadGateway},
		{"rate limit", &llm.ErrRateLimit{}, http.StatusBadGateway},
		{"other", fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/quiz-attempt/1", nil)
			HandleError(c, tt.err)

			assert.True(t, c.IsAborted())

			assert.Equal(t, tt.code, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestParseID(t *testing.T) {
	assert.Equal(t, uint(42), ParseID("42"))
	assert.Zero(t, ParseID("abc"))
	assert.Zero(t, ParseID("-1"))
}
