package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/config"
)

// Validation runs before any repository access, so handlers with nil
// repos are enough for these cases.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	c := e.NewContext(req, w)
	require.NoError(t, h(c))
	return w
}

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	cases := []struct {
		name string
		body string
		desc string
	}{
		{"missing fields", `{"username":"","email":"","password":""}`, "Please fill in all fields"},
		{"bad email no at", `{"username":"a","email":"not-an-email","password":"pw"}`, "Please enter a valid email address"},
		{"bad email no dot", `{"username":"a","email":"a@b","password":"pw"}`, "Please enter a valid email address"},
		{"bad email spaces", `{"username":"a","email":"a b@c.d","password":"pw"}`, "Please enter a valid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, h.Register, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Notification Notification `json:"notification"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Signup failed", resp.Notification.Title)
			assert.Equal(t, tc.desc, resp.Notification.Description)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	w := postJSON(t, h.Login, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Notification Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login failed", resp.Notification.Title)
}

func TestRefreshRequiresToken(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	w := postJSON(t, h.Refresh, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRequiresRefreshToken(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	w := postJSON(t, h.Logout, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, h.Logout, `{"refresh_token":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutAllRequiresAuthenticatedUser(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	// No user_id in the context means the access token never ran
	// through JWTAuth.
	w := postJSON(t, h.LogoutAll, `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmailShape(t *testing.T) {
	assert.True(t, emailRe.MatchString("user@example.com"))
	assert.True(t, emailRe.MatchString("a@b.co"))
	assert.False(t, emailRe.MatchString("user@example"))
	assert.False(t, emailRe.MatchString("@example.com"))
	assert.False(t, emailRe.MatchString("user@.com"))
}
