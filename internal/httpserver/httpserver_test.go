package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Nerldy/hello-books-api/internal/hash"
	"github.com/Nerldy/hello-books-api/internal/middleware"
	"github.com/Nerldy/hello-books-api/internal/models"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/service"
	"github.com/Nerldy/hello-books-api/internal/tokens"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Repo  *repo.GormRepo
	Codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	store := repo.New(db)
	codec := tokens.NewCodec([]byte("test-jwt-secret"))

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{Repo: store, Codec: codec}},
		BookHandler: &BookHTTP{Svc: &service.BookService{Repo: store}},
		AuthMW:      middleware.NewAuth(store, codec),
	})

	return &testEnv{T: t, E: e, DB: db, Repo: store, Codec: codec}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	env.T.Helper()

	var out map[string]any
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// createUser persists an account directly and returns a valid token for
// it.
func (env *testEnv) createUser(username, email string, isAdmin bool) (*models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword(",5Test_password")
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      isAdmin,
	}
	require.NoError(env.T, env.Repo.CreateUser(env.T.Context(), &user))

	token, err := env.Codec.Issue(user.ID)
	require.NoError(env.T, err)
	return &user, token
}

func (env *testEnv) countBooks() int64 {
	env.T.Helper()

	var total int64
	require.NoError(env.T, env.DB.Model(&models.Book{}).Count(&total).Error)
	return total
}
