package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"codespace-shop/internal/config"
	"codespace-shop/internal/logger"

	"go.uber.org/zap"
)

// Admin guards the operator endpoints. A zero-value Admin rejects everything.
type Admin struct {
	passwordHash string
	secret       string
}

// NewAdmin resolves the admin credential. ADMIN_PASSWORD_HASH wins over a
// plain ADMIN_PASSWORD, which is hashed once here and then discarded.
func NewAdmin(cfg *config.Config) (*Admin, error) {
	a := &Admin{secret: cfg.JWTSecret}

	switch {
	case cfg.AdminPasswordHash != "":
		a.passwordHash = cfg.AdminPasswordHash
	case cfg.AdminPassword != "":
		hash, err := HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		a.passwordHash = hash
	}

	return a, nil
}

func (a *Admin) Enabled() bool {
	return a != nil && a.passwordHash != "" && a.secret != ""
}

// Login trades the admin password for a signed token.
func (a *Admin) Login(ctx context.Context, password string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "auth"),
		zap.String("method", "Login"),
	)

	if !a.Enabled() {
		log.Warn("admin login attempted without configured credentials")
		return "", ErrAdminDisabled
	}

	if password == "" || !CheckPasswordHash(password, a.passwordHash) {
		log.Warn("admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(a.secret, RoleAdmin, TokenTTL)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", err
	}

	log.Info("admin login succeeded")
	return token, nil
}

// Authorize checks a bearer token on every admin request.
func (a *Admin) Authorize(token string) (*Claims, error) {
	if !a.Enabled() {
		return nil, ErrAdminDisabled
	}
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := ParseJWT(a.secret, token)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(claims.Role), []byte(RoleAdmin)) != 1 {
		return nil, ErrNotAdmin
	}

	return claims, nil
}
