package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/config"
)

// MockRepository implements Repository over a slice.
type MockRepository struct {
	accounts []*Account
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Insert(ctx context.Context, a *Account) error {
	cp := *a
	m.accounts = append(m.accounts, &cp)
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*Account, error) {
	out := make([]*Account, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}

func newTestService() *Service {
	return NewService(NewMockRepository(), &config.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
	})
}

func TestRegister_CreatesCustomer(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    " Weaves@Roopkala.Example ",
		Password: "handloom-silk",
		Name:     "Roopkala Weaves",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.Account.Role != RoleCustomer {
		t.Fatalf("role = %q, want customer", resp.Account.Role)
	}
	if resp.Account.Email != "weaves@roopkala.example" {
		t.Fatalf("email should be normalized, got %q", resp.Account.Email)
	}
	if resp.Account.PasswordHash == "handloom-silk" {
		t.Fatal("password must not be stored in the clear")
	}
	if resp.Token == "" {
		t.Fatal("registration should issue a token")
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := newTestService()

	req := &RegisterRequest{Email: "weaves@roopkala.example", Password: "handloom-silk", Name: "Roopkala"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), &CreateAccountRequest{
		Email:    "ops@shop.example",
		Password: "operations",
		Name:     "Ops",
		Role:     "superuser",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("want ErrInvalidRole, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "weaves@roopkala.example",
		Password: "handloom-silk",
		Name:     "Roopkala",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "WEAVES@roopkala.example",
		Password: "handloom-silk",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != resp.Account.ID {
		t.Fatal("token claims should carry the account ID")
	}
	if claims.Role != RoleCustomer {
		t.Fatalf("claims role = %q, want customer", claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "weaves@roopkala.example",
		Password: "handloom-silk",
		Name:     "Roopkala",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "weaves@roopkala.example",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@shop.example",
		Password: "whatever-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	svc := newTestService()
	other := NewService(NewMockRepository(), &config.JWTConfig{Secret: "other-secret", Expiry: time.Hour})

	resp, err := other.Register(context.Background(), &RegisterRequest{
		Email:    "weaves@roopkala.example",
		Password: "handloom-silk",
		Name:     "Roopkala",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.ValidateToken(resp.Token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}
