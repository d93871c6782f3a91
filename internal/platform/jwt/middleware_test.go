package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserResolver is a mock implementation of the UserResolver interface.
type mockUserResolver struct {
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserResolver) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

const testSecret = "middleware-test-secret"

// runMiddleware はトークンヘッダー付きのリクエストでミドルウェアを実行します。
func runMiddleware(t *testing.T, token string, users UserResolver) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		c.Request.Header.Set(TokenHeader, token)
	}

	handler := AuthRequired(NewVerifier(testSecret), users)
	handler(c)
	return w, c
}

// TestAuthRequired_MissingToken はトークンがない場合に403が返されることを検証します。
func TestAuthRequired_MissingToken(t *testing.T) {
	w, c := runMiddleware(t, "", &mockUserResolver{})

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", signToken(t, "wrong-secret", "id-1", "a@b.com", time.Hour)},
		{"expired token", signToken(t, testSecret, "id-1", "a@b.com", -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &mockUserResolver{
				FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
					t.Error("user must not be resolved for an invalid token")
					return nil, errors.New("unreachable")
				},
			}
			w, c := runMiddleware(t, tt.token, resolver)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_UnknownUser はトークンが有効でもユーザーが存在しない場合に403が返されることを検証します。
func TestAuthRequired_UnknownUser(t *testing.T) {
	token := signToken(t, testSecret, "id-9", "ghost@example.com", time.Hour)

	w, c := runMiddleware(t, token, &mockUserResolver{})

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
}

// TestAuthRequired_ValidToken は有効なトークンで識別情報がコンテキストに設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, "id-9", "jane@x.com", time.Hour)
	resolver := &mockUserResolver{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email != "jane@x.com" {
				t.Errorf("expected lookup by claim email, got %q", email)
			}
			return &entity.User{ID: "id-9", Email: "jane@x.com"}, nil
		},
	}

	w, c := runMiddleware(t, token, resolver)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if c.IsAborted() {
		t.Error("request must not be aborted")
	}
	if got := c.GetString(ContextUserID); got != "id-9" {
		t.Errorf("expected user id %q in context, got %q", "id-9", got)
	}
	if got := c.GetString(ContextEmail); got != "jane@x.com" {
		t.Errorf("expected email %q in context, got %q", "jane@x.com", got)
	}
}
