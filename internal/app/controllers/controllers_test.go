package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/messages?"+rawQuery, nil)
	return c, rec
}

func TestQueryID(t *testing.T) {
	tests := []struct {
		name       string
		rawQuery   string
		wantID     int64
		wantOK     bool
		wantStatus int
	}{
		{name: "absent parameter is zero", rawQuery: "", wantID: 0, wantOK: true, wantStatus: http.StatusOK},
		{name: "valid cursor", rawQuery: "after=42", wantID: 42, wantOK: true, wantStatus: http.StatusOK},
		{name: "zero cursor", rawQuery: "after=0", wantID: 0, wantOK: true, wantStatus: http.StatusOK},
		{name: "malformed cursor answers 400", rawQuery: "after=abc", wantID: 0, wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "negative cursor answers 400", rawQuery: "after=-1", wantID: 0, wantOK: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newQueryContext(t, tt.rawQuery)

			id, ok := queryID(c, "after")

			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantID     int64
		wantOK     bool
		wantStatus int
	}{
		{name: "valid id", raw: "7", wantID: 7, wantOK: true, wantStatus: http.StatusOK},
		{name: "malformed id answers 400", raw: "seven", wantID: 0, wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "non-positive id answers 400", raw: "0", wantID: 0, wantOK: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/conversations/"+tt.raw, nil)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			id, ok := pathID(c, "id")

			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("authenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Set("userID", int64(5))

		id, ok := requireUserID(c)
		require.True(t, ok)
		assert.Equal(t, int64(5), id)
	})

	t.Run("missing user answers 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		_, ok := requireUserID(c)
		require.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
