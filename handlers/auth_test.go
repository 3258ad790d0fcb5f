package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
	"github.com/Sudheer2002-ui/employeedirbackend/repository"
)

const testSecret = "test_secret"

type stubUserRepo struct {
	createFn func(ctx context.Context, user *models.User) error
	getFn    func(ctx context.Context, username string) (*models.User, error)
}

func (s stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, user)
}

func (s stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getFn == nil {
		return nil, repository.ErrNotFound
	}
	return s.getFn(ctx, username)
}

func newAuthHandler(repo repository.UserRepository) *AuthHandler {
	return NewAuthHandler(repo, testSecret, 60, bcrypt.MinCost)
}

func credentialsRequest(t *testing.T, target, username, password string) *http.Request {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterMissingFields(t *testing.T) {
	handler := newAuthHandler(stubUserRepo{})

	recorder := httptest.NewRecorder()
	handler.Register(recorder, credentialsRequest(t, "/register", "hr_admin", ""))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRegisterHashesPassword(t *testing.T) {
	var created *models.User
	handler := newAuthHandler(stubUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	})

	recorder := httptest.NewRecorder()
	handler.Register(recorder, credentialsRequest(t, "/register", "hr_admin", "s3cret"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	require.NotNil(t, created)
	require.NotEqual(t, "s3cret", created.PasswordHash)
	require.True(t, created.CheckPassword("s3cret"))
}

func TestRegisterUsernameTaken(t *testing.T) {
	handler := newAuthHandler(stubUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			return repository.ErrDuplicateKey
		},
	})

	recorder := httptest.NewRecorder()
	handler.Register(recorder, credentialsRequest(t, "/register", "hr_admin", "s3cret"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func knownUserRepo(t *testing.T, username, password string) stubUserRepo {
	t.Helper()
	user := &models.User{ID: 3, Username: username}
	require.NoError(t, user.SetPassword(password, bcrypt.MinCost))
	return stubUserRepo{
		getFn: func(ctx context.Context, name string) (*models.User, error) {
			if name != username {
				return nil, repository.ErrNotFound
			}
			return user, nil
		},
	}
}

func TestLoginIssuesToken(t *testing.T) {
	handler := newAuthHandler(knownUserRepo(t, "hr_admin", "s3cret"))

	recorder := httptest.NewRecorder()
	handler.Login(recorder, credentialsRequest(t, "/login", "hr_admin", "s3cret"))
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&payload))
	require.Equal(t, "Login successful.", payload["message"])
	require.NotEmpty(t, payload["token"])

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(payload["token"], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "hr_admin", claims.Username)
	require.Equal(t, "3", claims.Subject)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := newAuthHandler(knownUserRepo(t, "hr_admin", "s3cret"))

	recorder := httptest.NewRecorder()
	handler.Login(recorder, credentialsRequest(t, "/login", "hr_admin", "wrong"))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	handler := newAuthHandler(stubUserRepo{})

	recorder := httptest.NewRecorder()
	handler.Login(recorder, credentialsRequest(t, "/login", "nobody", "s3cret"))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuth(t *testing.T) {
	var gotUsername string
	protected := RequireAuth([]byte(testSecret))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername, _ = r.Context().Value(UsernameContextKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	// no header
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// malformed header
	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Token abc")
	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// valid token
	handler := newAuthHandler(stubUserRepo{})
	token, err := handler.issueToken(&models.User{ID: 3, Username: "hr_admin"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "hr_admin", gotUsername)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	claims := &Claims{
		Username: "hr_admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	protected := RequireAuth([]byte(testSecret))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
