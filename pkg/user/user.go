package user

type User struct {
	Username string `json:"username"`
	Password []byte `json:"-"`
	Id       string `json:"id"`
}
