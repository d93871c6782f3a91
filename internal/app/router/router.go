package router

import (
	"github.com/gin-gonic/gin"

	accounthandler "account_backend/internal/feature/account/transport/handler"
	platformhandler "account_backend/internal/platform/http/handler"
)

func NewRouter(account *accounthandler.AccountHandler, authRequired gin.HandlerFunc, uploadDir string) *gin.Engine {
	r := gin.Default()

	// アップロード済みプロフィール画像の配信
	r.Static("/uploads", uploadDir)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規ユーザー登録
	r.POST("/register", account.Register)
	// ログイン（JWT 発行）
	r.POST("/login", account.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// authRequired ミドルウェアを適用
	// → リクエストヘッダーに x-access-token が必要になる
	auth.Use(authRequired)
	{
		auth.PUT("/changepassword", account.ChangePassword)
		auth.GET("/self", account.GetSelf)
		auth.GET("/users", account.ListUsers)
		auth.PUT("/updateprofile", account.UpdateProfile)
		auth.PUT("/updateprofilepicture", account.UpdateProfilePicture)
	}

	return r
}
