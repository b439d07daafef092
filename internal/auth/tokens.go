package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/id"
)

const (
	tokenIssuer   = "productivite-server"
	tokenAudience = "productivite-client"

	// Opaque refresh tokens carry 256 bits of entropy.
	refreshTokenBytes = 32
)

// TokenService mints and verifies PASETO v4.local access tokens and
// generates the opaque refresh tokens that pair with them.
type TokenService struct {
	key             paseto.V4SymmetricKey
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

// NewTokenService builds a token service from a hex-encoded 256-bit key.
func NewTokenService(keyHex string, accessLifetime, refreshLifetime time.Duration) (*TokenService, error) {
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("token key is not valid hex: %w", err)
	}
	if len(raw) != symmetricKeyBytes {
		return nil, fmt.Errorf("token key is %d bytes, want %d", len(raw), symmetricKeyBytes)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("build symmetric key: %w", err)
	}

	return &TokenService{
		key:             key,
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
	}, nil
}

// GenerateAccessToken mints an encrypted access token for the user. The
// role claim rides along so the admin surface can be gated without a
// database lookup.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(user.ID)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.accessLifetime))

	jti, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(jti)

	//nolint:errcheck // Set only fails on unserializable values, and these are strings
	_ = token.Set("user_id", user.ID)
	_ = token.Set("email", user.Email)
	_ = token.Set("role", string(user.Role))

	return token.V4Encrypt(s.key, nil), nil
}

// VerifyAccessToken decrypts and validates an access token, returning
// its claims. Expired or tampered tokens fail verification.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	return &claims, nil
}

// GenerateRefreshToken returns a random opaque refresh token, base64
// URL-encoded. It is not a PASETO token; only its hash is stored.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// HashRefreshToken returns the hex SHA-256 digest stored in place of
// the raw refresh token, so a database leak doesn't expose live tokens.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessLifetime
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *TokenService) RefreshTokenDuration() time.Duration {
	return s.refreshLifetime
}
