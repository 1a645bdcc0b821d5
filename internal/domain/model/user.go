package model

// 管理画面のユーザー
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	IsStaff   bool   `json:"is_staff"`
}

// ユーザー更新の入力。nil の項目は送らない。
type UserUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	IsStaff   *bool   `json:"is_staff,omitempty"`
}
