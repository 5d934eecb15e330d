package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/blogapp/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, c *common.Cache) *UserService {
	return &UserService{
		m: NewUserModel(db),
		t: NewTokenModel(db),
		c: c,
	}
}

// CreateUser creates a new user account.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a new access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateCredentials(v, username, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := newAuthToken(user.ID, AccessTokenTime)
	if err != nil {
		return nil, err
	}

	err = s.t.insert(ctx, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// LogoutUser revokes every access token of the user.
func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.t.deleteAllForUser(ctx, userID)
	if err != nil {
		return err
	}

	s.c.DeleteFunc(func(_ string, value interface{}) bool {
		u, ok := value.(*User)
		return ok && u.ID == userID
	})

	return nil
}

// GetUserByAccessToken resolves a plain bearer token to its user. Lookups are cached.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	validateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)
	key := common.CacheKeyUserByAccessToken(hash)

	if cached, ok := s.c.Get(key); ok {
		if u, ok := cached.(*User); ok {
			return u, nil
		}
	}

	u, err := s.t.getUser(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, u, tokenCacheTime)

	return u, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}
