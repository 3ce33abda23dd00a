package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
)

func TestMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	require.NotNil(t, mockDB.DB)

	mockDB.Mock.ExpectExec("DELETE FROM trucks").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, mockDB.DB.Exec("DELETE FROM trucks WHERE id = ?", 1).Error)
	mockDB.ExpectationsWereMet(t)
}

func TestTestContext_Claims(t *testing.T) {
	tc := NewTestContext(t, http.MethodGet, "/api/v1/quotes")
	tc.SetCompanyID(TestCompanyID())
	tc.SetUserID(TestUserID())
	tc.SetRole("staff")
	tc.SetRequestID("req-123")

	assert.Equal(t, TestCompanyID(), middleware.GetCompanyID(tc.Context))
	assert.Equal(t, TestUserID(), middleware.GetUserID(tc.Context))
	assert.Equal(t, "staff", middleware.GetRole(tc.Context))
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.NotEqual(t, TestCompanyID(), TestUserID())
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, 20*time.Millisecond)
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestWaitForCondition(t *testing.T) {
	var n atomic.Int32
	ok := WaitForCondition(func() bool { return n.Add(1) >= 3 }, time.Second, time.Millisecond)
	assert.True(t, ok)

	ok = WaitForCondition(func() bool { return false }, 10*time.Millisecond, time.Millisecond)
	assert.False(t, ok)
}

func TestRunHTTPTestCases(t *testing.T) {
	handler := func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "ERR_VALIDATION", "message": "name is required"},
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"name": body.Name}})
	}

	RunHTTPTestCases(t, handler, []HTTPTestCase{
		{
			Name:           "created",
			Method:         http.MethodPost,
			Body:           map[string]string{"name": "T-26"},
			ExpectedStatus: http.StatusCreated,
			Validate: func(t *testing.T, tc *TestContext) {
				AssertSuccessResponse(t, tc)
				resp := DecodeResponse[map[string]string](t, tc.ResponseBody())
				assert.Equal(t, "T-26", resp.Data["name"])
			},
		},
		{
			Name:           "missing name",
			Method:         http.MethodPost,
			Body:           map[string]string{},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "ERR_VALIDATION",
		},
	})
}

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler("QuoteBooked")
	assert.Equal(t, []string{"QuoteBooked"}, h.EventTypes())

	require.NoError(t, h.Handle(context.Background(), NewTestEvent("QuoteBooked", TestCompanyID())))
	assert.Equal(t, []string{"QuoteBooked"}, h.HandledTypes())
	assert.Equal(t, TestCompanyID(), h.Handled()[0].CompanyID())

	boom := errors.New("boom")
	h.SetError(boom)
	assert.ErrorIs(t, h.Handle(context.Background(), NewTestEvent("QuoteBooked", TestCompanyID())), boom)
	assert.True(t, WaitForEventCount(h, 2, 10*time.Millisecond))

	h.Reset()
	assert.Zero(t, h.HandledCount())
	assert.NoError(t, h.Handle(context.Background(), NewTestEvent("QuoteBooked", TestCompanyID())))
}
