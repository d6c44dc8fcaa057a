package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/folhaponto/ponto-backend/internal/config"
	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("e-mail já cadastrado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrContaBloqueada     = errors.New("conta bloqueada. Tente novamente mais tarde")
	ErrInvalidToken       = errors.New("token inválido ou expirado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidRole        = errors.New("role inválido")
)

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *AuditService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, audit *AuditService) *AuthService {
	return &AuthService{db: db, cfg: cfg, audit: audit}
}

// Signup creates a user and, when a 6-digit code is supplied, the linked
// Colaborador in the same transaction so a code conflict never leaves an
// orphan user behind.
func (s *AuthService) Signup(req *dto.SignupRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleFuncionario
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cargo := NormalizeCargo(req.Cargo)
	if cargo == CargoPlaceholder && role == models.RoleEstagiario {
		cargo = "Estagiário"
	}

	user := models.User{
		Email:          req.Email,
		Nome:           req.Nome,
		HashedPassword: string(hash),
		Cargo:          cargo,
		Role:           role,
		IsActive:       true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if req.Code != "" {
			colab := models.Colaborador{
				Code:   req.Code,
				Nome:   user.Nome,
				UserID: &user.ID,
			}
			if err := tx.Create(&colab).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrCodeTaken
				}
				return fmt.Errorf("failed to create colaborador: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.loginAt(req, time.Now().UTC())
}

// loginAt holds the whole lockout policy: the lockout check precedes password
// verification, a failed verify bumps the counter, the Nth failure locks the
// account for the cooldown window, and a successful login resets everything.
func (s *AuthService) loginAt(req *dto.LoginRequest, now time.Time) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Locked && user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, ErrContaBloqueada
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		s.registerFailure(&user, now)
		return nil, ErrInvalidCredentials
	}

	if user.FailedAttempts > 0 || user.Locked {
		// Typed nil so the update actually writes NULL; an untyped nil map
		// entry is dropped by GORM.
		s.db.Model(&user).Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked":          false,
			"locked_until":    (*time.Time)(nil),
		})
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) registerFailure(user *models.User, now time.Time) {
	user.FailedAttempts++
	updates := map[string]interface{}{"failed_attempts": user.FailedAttempts}

	if user.FailedAttempts >= s.cfg.LockoutMaxAttempts {
		until := now.Add(s.cfg.LockoutDuration)
		user.Locked = true
		user.LockedUntil = &until
		updates["locked"] = true
		updates["locked_until"] = until
		s.audit.Record(&user.ID, "conta_bloqueada", "/auth/login",
			fmt.Sprintf("tentativas=%d", user.FailedAttempts))
	}

	s.db.Model(user).Updates(updates)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// HasAnyUser backs the bootstrap rule: the very first signup needs no token.
func (s *AuthService) HasAnyUser() (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserFromToken resolves the DB user behind a validated access token.
func (s *AuthService) UserFromToken(tokenStr string) (*models.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, uint(id)).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
