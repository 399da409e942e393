// Package auth login del administrador del catálogo (un único rol, credenciales por configuración).
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/pkg/jwt"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// RoleAdmin único rol con acceso a las operaciones de administración.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario administrador y hash bcrypt de su contraseña.
type Credentials struct {
	Username     string
	PasswordHash string
}

// AuthUseCase emite tokens para el administrador.
type AuthUseCase struct {
	admin  Credentials
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin Credentials, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg, log: log}
}

// Login verifica usuario y contraseña. Sin hash configurado el login queda deshabilitado.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.PasswordHash == "" {
		uc.log.Warn().Msg("login rechazado: ADMIN_PASSWORD_HASH no configurado")
		return nil, fmt.Errorf("%w: login deshabilitado", domain.ErrUnauthorized)
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.Username)), []byte(uc.admin.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Username, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, Role: RoleAdmin}, nil
}
