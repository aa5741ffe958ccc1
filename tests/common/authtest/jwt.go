//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, hospitalID uuid.UUID) string {
	t.Helper()
	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, ttl).GenerateToken(hospitalID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, hospitalID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, -time.Minute).GenerateToken(hospitalID)
	require.NoError(t, err)
	return token
}
