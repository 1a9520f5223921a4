package services

import (
	"errors"
	"log"
	"time"

	"newhire-onboarding-api/models"
	"newhire-onboarding-api/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the adaptive hashing cost for stored admin passwords.
const bcryptCost = 12

// TokenTTL is the validity window for admin tokens and the form cookie.
const TokenTTL = 8 * time.Hour

// AdminClaims is the payload of a verified admin session token.
type AdminClaims struct {
	AdminID int    `json:"admin_id"`
	Email   string `json:"email"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

// formClaims scopes the form-gate cookie token so it can never be replayed as
// an admin token.
type formClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const (
	adminScope = "admin"
	formScope  = "form"
)

// AuthService verifies admin credentials and issues/verifies signed session
// tokens. Verification is stateless; the only shared state is the signing
// secret fixed at construction.
type AuthService struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret []byte) *AuthService {
	return &AuthService{db: db, secret: secret, now: time.Now}
}

// Bootstrap provisions the single configured admin account if the table is
// empty. Idempotent: an existing account is never touched, and missing
// configuration is not an error.
func (s *AuthService) Bootstrap(email, password string) error {
	if email == "" || password == "" {
		log.Println("Admin bootstrap skipped: ADMIN_EMAIL/ADMIN_PASSWORD not configured")
		return nil
	}
	if !utils.ValidateEmail(email) {
		log.Printf("Admin bootstrap skipped: %q is not a valid email", email)
		return nil
	}

	var count int64
	if err := s.db.Model(&models.AdminAccount{}).Count(&count).Error; err != nil {
		return storeError("count admin accounts", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	account := models.AdminAccount{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.db.Create(&account).Error; err != nil {
		return storeError("create admin account", err)
	}

	log.Printf("Admin account bootstrapped for %s", email)
	return nil
}

// Login checks the credentials and returns a signed session token. Unknown
// email and wrong password produce the identical error.
func (s *AuthService) Login(email, password string) (string, error) {
	var account models.AdminAccount
	if err := s.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errInvalidLogin
		}
		return "", storeError("find admin account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidLogin
	}

	claims := AdminClaims{
		AdminID: account.AdminID,
		Email:   account.Email,
		Scope:   adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses a session token and returns the admin principal. Expired,
// tampered and malformed tokens all collapse to the same error so the failure
// mode is not observable from outside.
func (s *AuthService) Verify(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, errMissingToken
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Scope != adminScope {
		return nil, errInvalidToken
	}
	return claims, nil
}

// IssueFormToken signs the value carried by the form-gate cookie.
func (s *AuthService) IssueFormToken() (string, error) {
	claims := formClaims{
		Scope: formScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyFormToken checks a form-gate cookie value.
func (s *AuthService) VerifyFormToken(tokenString string) error {
	if tokenString == "" {
		return errMissingToken
	}

	claims := &formClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Scope != formScope {
		return errInvalidToken
	}
	return nil
}
