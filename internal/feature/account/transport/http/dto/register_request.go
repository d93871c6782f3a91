// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
// フィールドの形式チェックはバリデーションエンジンが行うため、bindingタグは使用しません。
package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
type RegisterReq struct {
	Fullname string `json:"fullname"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
