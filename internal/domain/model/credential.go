package model

// 保存しているログイン情報（トークンとユーザー名）
type Credential struct {
	Token    string `json:"-"`
	Username string `json:"username"`
}

func (c Credential) Present() bool {
	return c.Token != ""
}
