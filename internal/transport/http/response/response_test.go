package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

func failWith(t *testing.T, err error) (*httptest.ResponseRecorder, resp.Resp) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	resp.Fail(c, err)

	var body resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestFailSentinelMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{service.ErrNotFound, http.StatusNotFound, resp.CodeNotFound},
		{service.ErrInvalidInput, http.StatusBadRequest, resp.CodeBadRequest},
		{service.ErrEventFull, http.StatusBadRequest, resp.CodeBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, resp.CodeUnauthorized},
		{assert.AnError, http.StatusInternalServerError, resp.CodeServerError},
	}
	for _, tc := range cases {
		w, body := failWith(t, tc.err)
		assert.Equal(t, tc.wantStatus, w.Code, tc.err)
		assert.Equal(t, tc.wantCode, body.Code, tc.err)
	}
}

// 冲突类错误对外 400（旧接口约定），信封里保留 409 业务码
func TestFailConflictGoesOutAs400(t *testing.T) {
	for _, err := range []error{service.ErrUsernameTaken, service.ErrEmailTaken} {
		w, body := failWith(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code, err)
		assert.Equal(t, resp.CodeConflict, body.Code, err)
	}
}
