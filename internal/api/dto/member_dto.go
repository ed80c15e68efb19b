package dto

import "time"

type RegisterDTO struct {
	FName    string `json:"fname"`
	LName    string `json:"lname"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MemberDTO 不包含密碼雜湊
type MemberDTO struct {
	ID        int64     `json:"id"`
	FName     string    `json:"fname"`
	LName     string    `json:"lname"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Zip       string    `json:"zip"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Member    MemberDTO `json:"member"`
	ExpiresIn int       `json:"expires_in"` //秒
}
