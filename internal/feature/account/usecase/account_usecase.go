// Package usecase はaccountフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// List は全ユーザーの公開プロフィール（fullname, email, mobile）を返します。
	List(ctx context.Context) ([]entity.User, error)

	// Update は既存ユーザーのレコードを保存します。
	// メールアドレスの一意性はストアの制約が最終的な権威です。
	Update(ctx context.Context, user *entity.User) error
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きダイジェストを生成します。
	Hash(password string) (string, error)
	// Check は平文パスワードがダイジェストと一致するか検証します。
	Check(password, digest string) bool
}

// TokenGenerator は署名済みセッショントークンの発行を抽象化します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID, email string) (string, error)
}

// accountUsecase はアカウント操作のビジネスロジックを実装します。
type accountUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(users UserRepository, hasher PasswordHasher, tokens TokenGenerator) *accountUsecase {
	return &accountUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、作成されたレコードを返します。
// 4つのフィールドすべてが必須です。メールアドレスの重複はdomain.ErrEmailTakenになります。
func (u *accountUsecase) Register(ctx context.Context, fullname, mobile, email, password string) (*entity.User, error) {
	if fullname == "" || mobile == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:       uuid.NewString(),
		Fullname: fullname,
		Mobile:   mobile,
		Email:    email,
		Password: hashed,
	}
	// 同時登録のレースはストアの一意性制約が解決する
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *accountUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, email)

	// ユーザー未検出時のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	ok := u.hasher.Check(password, passwordHash)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || !ok {
		return "", domain.ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// ChangePassword は旧パスワードを検証し、新パスワードをハッシュ化して保存します。
// identityEmailは検証済みトークンから解決された呼び出し元のメールアドレスです。
func (u *accountUsecase) ChangePassword(ctx context.Context, identityEmail, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, identityEmail)
	if err != nil || !u.hasher.Check(oldPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	return u.users.Update(ctx, user)
}

// GetSelf は呼び出し元自身のプロフィールを返します。
func (u *accountUsecase) GetSelf(ctx context.Context, identityEmail string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, identityEmail)
}

// ListUsers は全ユーザーの公開プロフィールを返します。
func (u *accountUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// UpdateProfile は指定されたフィールドのみを更新します。
// 未指定のフィールドは呼び出し元の現在のレコードの値を保持します（マージセマンティクス）。
// 現在と同じメールアドレスの指定はdomain.ErrSameEmail、他ユーザーのメールアドレスはdomain.ErrEmailTakenになります。
func (u *accountUsecase) UpdateProfile(ctx context.Context, identityEmail, email, fullname, mobile string) error {
	user, err := u.users.FindByEmail(ctx, identityEmail)
	if err != nil {
		return err
	}

	if email != "" {
		if email == user.Email {
			return domain.ErrSameEmail
		}
		if _, err := u.users.FindByEmail(ctx, email); err == nil {
			return domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		user.Email = email
	}
	if fullname != "" {
		user.Fullname = fullname
	}
	if mobile != "" {
		user.Mobile = mobile
	}

	// レースでメールアドレスが取られた場合はストアの制約がErrEmailTakenを返す
	return u.users.Update(ctx, user)
}

// UpdateProfilePicture はアップロード済み画像の格納パスを呼び出し元のレコードに保存します。
// 画像のトランスポートと検証はアップロードコラボレーターの責務です。
func (u *accountUsecase) UpdateProfilePicture(ctx context.Context, identityEmail, path string) error {
	user, err := u.users.FindByEmail(ctx, identityEmail)
	if err != nil {
		return err
	}
	user.ProfilePicture = &path
	return u.users.Update(ctx, user)
}
