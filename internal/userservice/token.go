package userservice

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"errors"
	"time"

	"github.com/sushihentaime/blogapp/internal/common"
)

// tokenLength is the unpadded base32 length of the 16 random bytes behind every access token.
const tokenLength = 26

func NewTokenModel(db *sql.DB) *TokenModel {
	return &TokenModel{db: db}
}

func hashToken(token string) []byte {
	hash := sha256.Sum256([]byte(token))
	return hash[:]
}

func newAuthToken(userID int, ttl time.Duration) (*AuthToken, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plain := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)

	return &AuthToken{
		AccessTokenPlain:  plain,
		AccessTokenHash:   hashToken(plain),
		UserID:            userID,
		AccessTokenExpiry: time.Now().Add(ttl),
	}, nil
}

func (m *TokenModel) insert(ctx context.Context, token *AuthToken) error {
	query := `
		INSERT INTO auth_tokens (access_token, user_id, access_token_expiry)
		VALUES ($1, $2, $3)`

	_, err := m.db.ExecContext(ctx, query, token.AccessTokenHash, token.UserID, token.AccessTokenExpiry)
	return err
}

func (m *TokenModel) getUser(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.created_at
		FROM users u
		INNER JOIN auth_tokens t ON u.id = t.user_id
		WHERE t.access_token = $1 AND t.access_token_expiry > $2`

	var u User

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *TokenModel) deleteAllForUser(ctx context.Context, userID int) error {
	query := `
		DELETE FROM auth_tokens
		WHERE user_id = $1`

	_, err := m.db.ExecContext(ctx, query, userID)
	return err
}
