package dto

// ChangePasswordReq は/changepasswordエンドポイントのリクエストボディを表します。
type ChangePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
