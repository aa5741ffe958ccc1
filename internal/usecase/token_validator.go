package usecase

import (
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token to the calling hospital.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type hospitalTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &hospitalTokenValidator{jwtService: jwtService}
}

// ValidateToken rejects tokens whose subject names a different hospital than
// the hospital_id claim.
func (v *hospitalTokenValidator) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "validate bearer token")
	}
	if claims.Subject != "" && claims.Subject != claims.HospitalID.String() {
		return uuid.Nil, errs.Wrapf(jwt.ErrInvalidToken, "subject %q does not match hospital claim", claims.Subject)
	}
	return claims.HospitalID, nil
}
