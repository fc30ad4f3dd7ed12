package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopfront/shopfront/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrInvalidRole        = errors.New("invalid account role")
	ErrNotFound           = errors.New("account not found")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Service struct {
	repo Repository
	cfg  *config.JWTConfig
}

func NewService(repo Repository, cfg *config.JWTConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a customer account. Vendor and admin accounts come from
// the admin portal via Create.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	return s.create(ctx, req.Email, req.Password, req.Name, RoleCustomer)
}

// Create creates an account with an explicit role.
func (s *Service) Create(ctx context.Context, req *CreateAccountRequest) (*AuthResponse, error) {
	switch req.Role {
	case RoleAdmin, RoleVendor, RoleCustomer:
	default:
		return nil, ErrInvalidRole
	}
	return s.create(ctx, req.Email, req.Password, req.Name, req.Role)
}

func (s *Service) create(ctx context.Context, email, password, name, role string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}

	token, err := s.issueToken(a)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Account: a}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(a)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Account: a}, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) (*ListAccountsResponse, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []*Account{}
	}
	return &ListAccountsResponse{Accounts: accounts, Total: len(accounts)}, nil
}

func (s *Service) issueToken(a *Account) (string, error) {
	claims := Claims{
		AccountID: a.ID,
		Email:     a.Email,
		Role:      a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}
