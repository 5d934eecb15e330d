package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/blogapp/internal/common"
)

const (
	AccessTokenTime time.Duration = 7 * 24 * time.Hour

	// tokenCacheTime bounds how long a cached token lookup may outlive a revoked token on another instance.
	tokenCacheTime time.Duration = 5 * time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m *UserModel
	t *TokenModel
	c *common.Cache
}

type UserModel struct {
	db *sql.DB
}

type TokenModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsAnonymous() bool {
	return u == nil || u == &AnonymousUser || u.ID == 0
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

// Authentication Token
type AuthToken struct {
	AccessTokenPlain  string    `json:"access_token"`
	AccessTokenHash   []byte    `json:"-"`
	UserID            int       `json:"user_id"`
	AccessTokenExpiry time.Time `json:"access_token_expiry"`
}
