package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ldhishere/judo-diary/internal/middleware"

	"github.com/stretchr/testify/assert"
)

type fakeLoginChecker struct {
	loggedSessions map[string]bool
	err            error
}

func (c *fakeLoginChecker) IsLogged(_ context.Context, token string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.loggedSessions[token], nil
}

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	checker := &fakeLoginChecker{
		loggedSessions: map[string]bool{
			"valid-token": true,
		},
	}
	authMiddleware := middleware.NewAuthMiddlewareHandler(checker)

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		expectedStatusCode int
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/version",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "LoginPathWithoutToken",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "DiaryPathWithoutToken",
			path:               "/diary/logs",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "DiaryPathValidToken",
			path:               "/diary/logs",
			method:             "GET",
			token:              "valid-token",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "DiaryPathInvalidToken",
			path:               "/diary/logs",
			method:             "GET",
			token:              "invalid-token",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "OptionsPreflight",
			path:               "/diary/logs",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set(middleware.AuthTokenHeader, tc.token)
			}

			rr := httptest.NewRecorder()
			nextCalled := false
			handler := authMiddleware.AuthCheck()(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					nextCalled = true
				},
			))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectedStatusCode == http.StatusOK && tc.method != "OPTIONS" {
				assert.True(t, nextCalled)
			}
		})
	}
}
