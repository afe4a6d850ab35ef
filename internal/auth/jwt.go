// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/articlehub/internal/config"
	"github.com/carterperez-dev/articlehub/internal/core"
	"github.com/carterperez-dev/articlehub/internal/middleware"
)

const (
	claimEmail      = "email"
	claimRole       = "role"
	claimTokenType  = "type"
	tokenTypeAccess = "access"
)

// JWTManager signs access tokens with an ES256 key and publishes the public
// half as a JWKS document.
type JWTManager struct {
	signingKey jwk.Key
	verifyKey  jwk.Key
	keySet     jwk.Set
	keyID      string
	cfg        config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key %s: %w", cfg.PrivateKeyPath, err)
	}

	return newJWTManagerFromPEM(privateKeyPEM, cfg)
}

func newJWTManagerFromPEM(privateKeyPEM []byte, cfg config.JWTConfig) (*JWTManager, error) {
	signingKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	// The kid is the RFC 7638 thumbprint so it survives restarts.
	thumbprint, err := signingKey.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("key thumbprint: %w", err)
	}
	keyID := base64.RawURLEncoding.EncodeToString(thumbprint)[:16]

	for name, value := range map[string]any{
		jwk.AlgorithmKey: jwa.ES256(),
		jwk.KeyIDKey:     keyID,
	} {
		if err := signingKey.Set(name, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", name, err)
		}
	}

	verifyKey, err := signingKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	if err := verifyKey.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("set key usage: %w", err)
	}

	keySet := jwk.NewSet()
	if err := keySet.AddKey(verifyKey); err != nil {
		return nil, fmt.Errorf("add key to set: %w", err)
	}

	return &JWTManager{
		signingKey: signingKey,
		verifyKey:  verifyKey,
		keySet:     keySet,
		keyID:      keyID,
		cfg:        cfg,
	}, nil
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM files.
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privatePEM, publicPEM, err := generateKeyPairPEM()
	if err != nil {
		return err
	}

	if err := os.WriteFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	//nolint:gosec // G306: public key is meant to be readable
	if err := os.WriteFile(publicKeyPath, publicPEM, 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	return nil
}

func generateKeyPairPEM() (privatePEM, publicPEM []byte, err error) {
	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate key: %w", err)
	}

	private, err := jwk.Import(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("import private key: %w", err)
	}
	public, err := private.PublicKey()
	if err != nil {
		return nil, nil, fmt.Errorf("derive public key: %w", err)
	}

	if privatePEM, err = jwk.Pem(private); err != nil {
		return nil, nil, fmt.Errorf("encode private key: %w", err)
	}
	if publicPEM, err = jwk.Pem(public); err != nil {
		return nil, nil, fmt.Errorf("encode public key: %w", err)
	}

	return privatePEM, publicPEM, nil
}

// TokenSubject is the account an access token is issued for.
type TokenSubject struct {
	UserID string
	Email  string
	Role   string
}

type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

func (m *JWTManager) CreateAccessToken(subject TokenSubject) (*IssuedToken, error) {
	tokenID, err := core.NewTokenID()
	if err != nil {
		return nil, fmt.Errorf("create token id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(m.cfg.AccessTokenExpire)

	token, err := jwt.NewBuilder().
		JwtID(tokenID).
		Issuer(m.cfg.Issuer).
		Audience([]string{m.cfg.Audience}).
		Subject(subject.UserID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim(claimEmail, subject.Email).
		Claim(claimRole, subject.Role).
		Claim(claimTokenType, tokenTypeAccess).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.signingKey))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{
		Token:     string(signed),
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

var errMissingClaim = errors.New("missing claim")

// VerifyAccessToken checks signature, issuer, audience and lifetime, then
// requires the subject, jti, role and access type claims.
func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.verifyKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil {
		if expired(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	claims := &middleware.AccessTokenClaims{}

	var tokenType string
	if token.Get(claimTokenType, &tokenType) != nil || tokenType != tokenTypeAccess {
		return nil, fmt.Errorf("verify token: wrong token type: %w", core.ErrTokenInvalid)
	}
	if token.Get(claimRole, &claims.Role) != nil {
		return nil, rejectClaim(claimRole)
	}

	var ok bool
	if claims.UserID, ok = token.Subject(); !ok || claims.UserID == "" {
		return nil, rejectClaim("sub")
	}
	if claims.TokenID, ok = token.JwtID(); !ok || claims.TokenID == "" {
		return nil, rejectClaim("jti")
	}

	claims.ExpiresAt, _ = token.Expiration()
	//nolint:errcheck // email is informational
	_ = token.Get(claimEmail, &claims.Email)

	return claims, nil
}

func rejectClaim(name string) error {
	return fmt.Errorf("verify token: %w %q: %w", errMissingClaim, name, core.ErrTokenInvalid)
}

func expired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}

// JWKSHandler serves the public signing key.
func (m *JWTManager) JWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if err := json.NewEncoder(w).Encode(m.keySet); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func (m *JWTManager) KeyID() string {
	return m.keyID
}
