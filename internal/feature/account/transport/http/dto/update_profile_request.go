package dto

// UpdateProfileReq は/updateprofileエンドポイントのリクエストボディを表します。
// いずれのフィールドも省略可能で、省略されたフィールドは現在の値を保持します。
type UpdateProfileReq struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Mobile   string `json:"mobile"`
}
