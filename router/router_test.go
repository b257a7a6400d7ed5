package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"messenger/model"
	"messenger/platform"
	"messenger/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := platform.OpenDB(platform.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.InstallDB(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return New(Options{
		DB:         db,
		Tokens:     service.NewTokenService("test-secret", time.Hour),
		Logger:     platform.NewNopLogger(),
		CORSOrigin: "http://localhost",
	}), db
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	rec := call(t, r, http.MethodPost, "/v1/user/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func register(t *testing.T, r http.Handler, username, password string) uint {
	t.Helper()
	rec := call(t, r, http.MethodPost, "/v1/user/register", "",
		gin.H{"username": username, "password": password, "email": username + "@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.ID
}

func Test_Register_Login_And_Manage_Messages(t *testing.T) {
	req := require.New(t)
	r, db := newTestRouter(t)

	aliceID := register(t, r, "alice", "Secret#123")
	register(t, r, "bob", "Secret#456")
	register(t, r, "root", "Secret#789")
	req.NoError(db.Model(&model.User{}).Where("username = ?", "root").Update("role", model.RoleAdmin).Error)

	alice := login(t, r, "alice", "Secret#123")
	bob := login(t, r, "bob", "Secret#456")
	root := login(t, r, "root", "Secret#789")

	rec := call(t, r, http.MethodPost, "/v1/messages", alice, gin.H{"userId": aliceID, "subject": "hi", "message": "there"})
	req.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID     string `json:"id"`
			UserID uint   `json:"userId"`
		} `json:"data"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	req.Equal(aliceID, created.Data.UserID)

	path := "/v1/messages/" + created.Data.ID
	req.Equal(http.StatusOK, call(t, r, http.MethodGet, path, alice, nil).Code)
	req.Equal(http.StatusForbidden, call(t, r, http.MethodGet, path, bob, nil).Code)
	req.Equal(http.StatusOK, call(t, r, http.MethodGet, path, root, nil).Code)
	req.Equal(http.StatusForbidden, call(t, r, http.MethodDelete, path, bob, nil).Code)
	req.Equal(http.StatusNoContent, call(t, r, http.MethodDelete, path, root, nil).Code)
	req.Equal(http.StatusNotFound, call(t, r, http.MethodGet, path, alice, nil).Code)
}

func Test_Register_Rejects(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r, "alice", "Passw0rd!")

	rec := call(t, r, http.MethodPost, "/v1/user/register", "", gin.H{"username": "alice", "password": "Passw0rd!", "email": "x@example.com"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, r, http.MethodPost, "/v1/user/register", "", gin.H{"username": "carol", "password": "Passw0rd!", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, r, http.MethodPost, "/v1/user/register", "", gin.H{"username": "carol", "password": "password", "email": "carol@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, r, http.MethodPost, "/v1/user/login", "", gin.H{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Refresh_Token(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r, "alice", "Passw0rd!")
	token := login(t, r, "alice", "Passw0rd!")

	rec := call(t, r, http.MethodPost, "/v1/token/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/v1/messages", res.Token, nil).Code)

	rec = call(t, r, http.MethodPost, "/v1/token/refresh", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Health_And_Middleware(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := call(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.Len(t, rec.Header().Get("X-Request-Id"), 36)
	require.Equal(t, "http://localhost", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = call(t, r, http.MethodOptions, "/v1/messages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, r, http.MethodGet, "/v1/messages", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
