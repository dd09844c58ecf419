package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"trip-service/pkg/jwt"
	"trip-service/pkg/validation"
)

// Service contains account business logic.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates an account service backed by the given pool.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Register creates a new provider or customer account and returns a JWT.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Role != RoleProvider && req.Role != RoleCustomer {
		return nil, errors.New("role must be provider or customer")
	}
	if !validation.ValidateName(req.Name) {
		return nil, errors.New("invalid name")
	}
	if !validation.ValidateEmail(req.Email) {
		return nil, errors.New("invalid email")
	}
	if !validation.ValidatePhone(req.Phone) {
		return nil, errors.New("invalid phone")
	}
	if !validation.ValidatePassword(req.Password) {
		return nil, errors.New("password must be 6-100 characters")
	}

	var exists bool
	_ = s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM accounts WHERE email=$1)", req.Email).Scan(&exists)
	if exists {
		return nil, errors.New("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	_, err = s.db.Exec(ctx,
		`INSERT INTO accounts (id,name,email,phone,password_hash,role,rating) VALUES ($1,$2,$3,$4,$5,$6,5.0)`,
		id, req.Name, req.Email, req.Phone, string(hash), req.Role)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(id, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:   token,
		Account: &Account{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, Role: req.Role, Rating: 5.0},
	}, nil
}

// Login authenticates an account and returns a JWT.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var a Account
	var hash string
	err := s.db.QueryRow(ctx,
		`SELECT id,name,email,phone,password_hash,role,rating,created_at FROM accounts WHERE email=$1`,
		req.Email).Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &hash, &a.Role, &a.Rating, &a.CreatedAt)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := jwt.Generate(a.ID, a.Email, a.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Account: &a}, nil
}

// GetByID fetches a single account by primary key.
func (s *Service) GetByID(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := s.db.QueryRow(ctx,
		`SELECT id,name,email,phone,role,rating,created_at FROM accounts WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Role, &a.Rating, &a.CreatedAt)
	if err != nil {
		return nil, errors.New("account not found")
	}
	return &a, nil
}
