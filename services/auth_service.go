package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService mints and validates the two identity tokens the API uses:
// a student token issued at registration and an admin token issued at admin
// login. Both are HS256 JWTs.
type AuthService struct {
	jwtSecret     []byte
	adminUsername string
	adminPassword string
}

func NewAuthService(jwtSecret, adminUsername, adminPassword string) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the submitted credentials against the two configured
// values and mints an admin token. The comparison is plaintext; the admin
// gate is an access convenience, not a security boundary.
func (s *AuthService) AdminLogin(username, password string) (string, error) {
	if username != s.adminUsername || password != s.adminPassword {
		return "", errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// GenerateStudentToken mints the identity token returned at registration.
func (s *AuthService) GenerateStudentToken(studentID uint) (string, error) {
	claims := jwt.MapClaims{
		"student_id": studentID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateStudentToken returns the internal student id carried by the token.
func (s *AuthService) ValidateStudentToken(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}

	studentIDFloat, ok := claims["student_id"].(float64)
	if !ok {
		return 0, errors.New("invalid student_id in token")
	}

	return uint(studentIDFloat), nil
}

// ValidateAdminToken checks that the token carries the admin role.
func (s *AuthService) ValidateAdminToken(tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	role, ok := claims["role"].(string)
	if !ok || role != "admin" {
		return errors.New("not an admin token")
	}
	return nil
}

func (s *AuthService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
