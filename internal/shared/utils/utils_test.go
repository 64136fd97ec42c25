package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-inc/helpdesk/internal/shared/config"
	"github.com/helpdesk-inc/helpdesk/internal/shared/constants"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values", 2, 20, 2, 20},
		{"page less than 1", 0, 20, constants.DefaultPage, 20},
		{"pageSize less than 1", 1, 0, 1, constants.DefaultPageSize},
		{"pageSize over max", 1, 1000, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePage(t *testing.T) {
	c, _ := newContext("/admin?page=3&page_size=99")
	p := ParsePage(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 15, p.PageSize)
	assert.Equal(t, 30, p.Offset())

	c, _ = newContext("/admin?page=abc")
	assert.Equal(t, 1, ParsePage(c).Page)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 2, TotalPages(16, 15))
}

func TestParseUintParam(t *testing.T) {
	c, _ := newContext("/ticket/7")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	id, err := ParseUintParam(c, "id", "ticket")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, raw := range []string{"", "0", "-1", "x"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParseUintParam(c, "id", "ticket")
		assert.True(t, errors.IsValidationError(err), "value %q", raw)
	}
}

func TestErrorResponseWithError(t *testing.T) {
	c, w := newContext("/")
	ErrorResponseWithError(c, errors.NewForbiddenError("access denied"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "forbidden", resp.Error.Type)
}

func TestErrorResponseWithError_HidesInternalDetails(t *testing.T) {
	c, w := newContext("/")
	ErrorResponseWithError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Title string `json:"title" validate:"notblank,max=5"`
	}

	assert.NoError(t, ValidateStruct(form{Title: "ok"}))

	err := ValidateStruct(form{Title: "   "})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, "title is required")

	err = ValidateStruct(form{Title: "too long"})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Details, "at most 5")
}

func TestSessionCookie(t *testing.T) {
	c, w := newContext("/")
	SetSessionCookie(c, config.CookieConfig{Path: "/"}, "tok", 60)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	c, _ = newContext("/")
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", GetSessionToken(c))

	c, _ = newContext("/")
	c.Request.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", GetSessionToken(c))
}
