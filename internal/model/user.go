package model

// User is the authenticated backend user.
type User struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	IsActive         bool      `json:"is_active"`
	TelegramUserID   string    `json:"telegram_user_id,omitempty"`
	TelegramUsername string    `json:"telegram_username,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// TelegramLinked reports whether a Telegram account is attached.
func (u User) TelegramLinked() bool {
	return u.TelegramUserID != ""
}

// Credentials is the body of the register and login calls.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TelegramLinkCode is a one-time code for linking the Telegram bot.
type TelegramLinkCode struct {
	Code      string    `json:"code"`
	ExpiresAt Timestamp `json:"expires_at"`
}
