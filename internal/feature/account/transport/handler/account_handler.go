// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/transport/http/dto"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/upload"
	"account_backend/internal/platform/validation"
)

// AccountUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase interface {
	// Register は新規ユーザーを登録し、作成されたレコードを返します。
	Register(ctx context.Context, fullname, mobile, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// ChangePassword は旧パスワードを検証し、新パスワードを保存します。
	ChangePassword(ctx context.Context, identityEmail, oldPassword, newPassword string) error
	// GetSelf は呼び出し元自身のプロフィールを返します。
	GetSelf(ctx context.Context, identityEmail string) (*entity.User, error)
	// ListUsers は全ユーザーの公開プロフィールを返します。
	ListUsers(ctx context.Context) ([]entity.User, error)
	// UpdateProfile は指定されたフィールドのみを更新します。
	UpdateProfile(ctx context.Context, identityEmail, email, fullname, mobile string) error
	// UpdateProfilePicture はアップロード済み画像のパスを保存します。
	UpdateProfilePicture(ctx context.Context, identityEmail, path string) error
}

// PictureSaver はアップロードされた画像の検証と保存を抽象化します。
type PictureSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// AccountHandler はアカウント操作のHTTPリクエストを処理します。
type AccountHandler struct {
	account  AccountUsecase
	rules    *validation.Engine
	pictures PictureSaver
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountHandler(account AccountUsecase, rules *validation.Engine, pictures PictureSaver) *AccountHandler {
	return &AccountHandler{account: account, rules: rules, pictures: pictures}
}

// validateFields はバリデーションエンジンを適用し、違反があればレスポンスを書き込みます。
// レスポンスを書き込んだ場合trueを返します。
func (h *AccountHandler) validateFields(c *gin.Context, fields map[string]string) bool {
	if msgs := h.rules.Validate(fields); msgs != nil {
		slog.Warn("field validation failed", "errors", msgs, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ValidationErrorRes{Error: msgs})
		return true
	}
	return false
}

// identityEmail は認証ミドルウェアが解決したメールアドレスを返します。
func identityEmail(c *gin.Context) string {
	return c.GetString(jwtmw.ContextEmail)
}

// Register はユーザー登録APIエンドポイントを処理します。
// - 4フィールドすべて必須、フィールド形式はバリデーションエンジンでチェック
// - メールアドレス重複時は409を返却
// - 成功時は201で作成されたユーザー（パスワードハッシュは除く）を返却
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	if h.validateFields(c, map[string]string{
		validation.FieldFullname: req.Fullname,
		validation.FieldMobile:   req.Mobile,
		validation.FieldEmail:    req.Email,
		validation.FieldPassword: req.Password,
	}) {
		return
	}

	user, err := h.account.Register(c.Request.Context(), req.Fullname, req.Mobile, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "All inputs are required."})
		case errors.Is(err, domain.ErrEmailTaken):
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "This user already exists."})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		}
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterRes{
		Message: "User created successfully",
		User:    dto.NewUserRes(user),
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は「ユーザー不在」と「パスワード不一致」を区別しない汎用メッセージを返します。
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	if h.validateFields(c, map[string]string{
		validation.FieldEmail:    req.Email,
		validation.FieldPassword: req.Password,
	}) {
		return
	}

	token, err := h.account.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Email and password is required."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Email or password is incorrect"})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		}
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Email: req.Email, Token: token})
}

// ChangePassword はパスワード変更APIエンドポイントを処理します。
// 呼び出し元の識別はリクエストボディではなく検証済みトークンに基づきます。
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("changepassword bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	if h.validateFields(c, map[string]string{
		validation.FieldOldPassword: req.OldPassword,
		validation.FieldNewPassword: req.NewPassword,
	}) {
		return
	}

	email := identityEmail(c)
	if err := h.account.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Old password and new password is required."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			slog.Warn("changepassword rejected", "email", email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "Email or password is incorrect"})
		default:
			slog.Error("changepassword failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		}
		return
	}

	slog.Info("password updated", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: fmt.Sprintf("Password updated for user: %s", email)})
}

// GetSelf は呼び出し元自身のプロフィール取得APIエンドポイントを処理します。
func (h *AccountHandler) GetSelf(c *gin.Context) {
	user, err := h.account.GetSelf(c.Request.Context(), identityEmail(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "User not found."})
			return
		}
		slog.Error("self lookup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// ListUsers は全ユーザーの一覧取得APIエンドポイントを処理します。
func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, err := h.account.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("user listing failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUsersRes(users))
}

// UpdateProfile はプロフィール更新APIエンドポイントを処理します。
// 省略されたフィールドは現在の値を保持します。
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("updateprofile bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	if h.validateFields(c, map[string]string{
		validation.FieldEmail:    req.Email,
		validation.FieldFullname: req.Fullname,
		validation.FieldMobile:   req.Mobile,
	}) {
		return
	}

	email := identityEmail(c)
	if err := h.account.UpdateProfile(c.Request.Context(), email, req.Email, req.Fullname, req.Mobile); err != nil {
		switch {
		case errors.Is(err, domain.ErrSameEmail):
			c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "Old and new email cannot be same."})
		case errors.Is(err, domain.ErrEmailTaken):
			slog.Warn("updateprofile conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "This email is already taken."})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "User not found."})
		default:
			slog.Error("updateprofile failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		}
		return
	}

	slog.Info("profile updated", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "User updated successfully."})
}

// UpdateProfilePicture はプロフィール画像更新APIエンドポイントを処理します。
// 画像の検証（JPEG/PNG、1MB以下）と保存はPictureSaverに委譲し、
// このハンドラーは保存されたパスをレコードに反映するだけです。
func (h *AccountHandler) UpdateProfilePicture(c *gin.Context) {
	fh, err := c.FormFile("profile-picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "Profile picture is required."})
		return
	}

	path, err := h.pictures.Save(fh)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidFile) {
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: err.Error()})
			return
		}
		slog.Error("picture save failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	email := identityEmail(c)
	if err := h.account.UpdateProfilePicture(c.Request.Context(), email, path); err != nil {
		slog.Error("picture update failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal server error"})
		return
	}

	slog.Info("profile picture updated", "email", email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Profile picture updated successfully."})
}
