package usecase

import (
	jwtpkg "groupbook/internal/pkg/jwt"
)

// TokenValidator abstracts bearer token verification so the handler layer
// does not depend on the concrete signing implementation.
type TokenValidator interface {
	ValidateToken(token string) (*jwtpkg.Claims, error)
}

type jwtTokenValidator struct {
	svc *jwtpkg.Service
}

func NewTokenValidator(svc *jwtpkg.Service) TokenValidator {
	return &jwtTokenValidator{svc: svc}
}

func (v *jwtTokenValidator) ValidateToken(token string) (*jwtpkg.Claims, error) {
	return v.svc.ValidateToken(token)
}
