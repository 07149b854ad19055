package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTargetSegment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/createProperty", "createProperty"},
		{"/api/v1/deleteProperty/7", "deleteProperty"},
		{"/api/v1/account/deposit", "account"},
		{"/api/v1/", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", tc.path, nil)
		assert.Equal(t, tc.want, targetSegment(c), "path %s", tc.path)
	}
}

func TestCurrentUserAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Zero(t, user.UserID)
	assert.Empty(t, user.Role)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(authUserKey, AuthUser{UserID: 7, Role: "ADMIN"})

	user, ok := CurrentUser(c)
	assert.True(t, ok)
	assert.EqualValues(t, 7, user.UserID)
	assert.Equal(t, "ADMIN", user.Role)
}
