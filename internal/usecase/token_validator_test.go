//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/pkg/jwt"
	"rx-exchange/internal/usecase"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	const secret = "validator-secret"
	svc := jwt.NewService(secret, "rx-exchange", time.Hour)
	validator := usecase.NewTokenValidator(svc)
	hospitalID := uuid.New()

	t.Run("resolves the hospital", func(t *testing.T) {
		token, err := svc.GenerateToken(hospitalID)
		require.NoError(t, err)

		got, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, hospitalID, got)
	})

	t.Run("expired token keeps its cause", func(t *testing.T) {
		token, err := jwt.NewService(secret, "rx-exchange", -time.Minute).GenerateToken(hospitalID)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrExpiredToken))
	})

	t.Run("subject for another hospital", func(t *testing.T) {
		claims := jwt.Claims{
			HospitalID: hospitalID,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "rx-exchange",
				Subject:   uuid.NewString(),
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})
}
