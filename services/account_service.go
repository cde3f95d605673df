package services

import (
	"context"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService struct {
	DB          *gorm.DB
	Users       *repository.UserRepository
	Restaurants *repository.RestaurantRepository
	Auth        *auth.Authenticator
	Audit       *AuditLog

	hashCost int
}

func NewAccountService(
	db *gorm.DB,
	users *repository.UserRepository,
	restaurants *repository.RestaurantRepository,
	authn *auth.Authenticator,
	audit *AuditLog,
) *AccountService {
	return &AccountService{
		DB:          db,
		Users:       users,
		Restaurants: restaurants,
		Auth:        authn,
		Audit:       audit,
		hashCost:    bcrypt.DefaultCost,
	}
}

// ----- DTOs from Controller -----

type SignupInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strong_password"`
	Role     string `json:"role" binding:"required,oneof=customer restaurant"`
	Location string `json:"location" binding:"max=255"`
	Phone    string `json:"phone" binding:"max=32"`
	Cuisine  string `json:"cuisine" binding:"max=100"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileInput struct {
	Phone   string `json:"phone" binding:"max=32"`
	Address string `json:"address" binding:"max=255"`
	Country string `json:"country" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	City    string `json:"city" binding:"max=100"`
}

type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Principal auth.Principal `json:"principal"`
}

type CustomerProfile struct {
	User    models.User            `json:"user"`
	Profile models.CustomerProfile `json:"profile"`
}

// ----- Signup & login -----

// Signup creates a customer or a restaurant account.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if !validation.StrongPassword(in.Password) {
		return nil, apperror.Validation("password is too weak", apperror.FieldError{
			Field: "password", Rule: "strong_password",
			Message: "must be at least 8 characters with upper, lower, digit and one of @$!%*?&",
		})
	}
	switch in.Role {
	case string(models.RoleCustomer):
		return s.createCustomer(ctx, in.Name, in.Email, in.Password)
	case string(models.RoleRestaurant):
		return s.createRestaurant(ctx, in)
	}
	return nil, apperror.Validation("role must be customer or restaurant",
		apperror.FieldError{Field: "role", Rule: "oneof", Message: "must be customer or restaurant"})
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	taken, err := s.Users.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("email already registered")
	}
	return nil
}

func (s *AccountService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperror.Store("hash password", err)
	}
	return string(h), nil
}

func (s *AccountService) createCustomer(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user := models.User{Name: name, Email: email, PasswordHash: hash, Role: models.RoleCustomer}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Users.Create(tx, &user); err != nil {
			return err
		}
		return s.Users.CreateProfile(tx, &models.CustomerProfile{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// createRestaurant writes the owner's user row and the restaurant row together.
func (s *AccountService) createRestaurant(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: models.RoleRestaurantOwner}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Users.Create(tx, &user); err != nil {
			return err
		}
		return s.Restaurants.Create(tx, &models.Restaurant{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Location:     in.Location,
			Phone:        in.Phone,
			Cuisine:      in.Cuisine,
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var errBadCredentials = apperror.Auth("invalid email or password")

// Login authenticates customers and restaurant owners.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := s.Users.FindByEmail(ctx, in.Email)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, errBadCredentials
	}

	var p auth.Principal
	switch user.Role {
	case models.RoleCustomer:
		p = auth.Principal{ID: user.ID, Email: user.Email, Role: models.RoleCustomer}
	case models.RoleRestaurantOwner:
		rest, err := s.Restaurants.FindByEmail(ctx, user.Email)
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Auth("no restaurant is linked to this account")
		}
		if err != nil {
			return nil, err
		}
		p = auth.Principal{ID: rest.ID, Email: rest.Email, Role: models.RoleRestaurant}
	default:
		return nil, errBadCredentials
	}
	return s.issue(p)
}

// AdminLogin authenticates against the admins table only.
func (s *AccountService) AdminLogin(ctx context.Context, in LoginInput) (*Session, error) {
	admin, err := s.Users.FindAdminByEmail(ctx, in.Email)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		return nil, errBadCredentials
	}
	return s.issue(auth.Principal{ID: admin.ID, Email: admin.Email, Role: admin.Role})
}

func (s *AccountService) issue(p auth.Principal) (*Session, error) {
	token, exp, err := s.Auth.Issue(p)
	if err != nil {
		return nil, apperror.Store("issue token", err)
	}
	return &Session{Token: token, ExpiresAt: exp, Principal: p}, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.Auth.Revoke(ctx, token)
}

// ----- Admin-managed accounts -----

// CreateUser lets a super admin create a customer account directly.
func (s *AccountService) CreateUser(ctx context.Context, p *auth.Principal, in CreateUserInput) (*models.User, error) {
	if err := requireRole(p, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	user, err := s.createCustomer(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	id := user.ID
	s.Audit.Record(ctx, p.Email, "Created User "+user.Email, &id)
	return user, nil
}

// AdminProfile returns email's admin record. Plain admins may only read their own.
func (s *AccountService) AdminProfile(ctx context.Context, p *auth.Principal, email string) (*models.Admin, error) {
	if err := requireRole(p, models.RoleAdmin, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if email == "" {
		email = p.Email
	}
	if p.Role != models.RoleSuperAdmin && email != p.Email {
		return nil, apperror.Forbidden("admins may only view their own profile")
	}
	return s.Users.FindAdminByEmail(ctx, email)
}

// ----- Customer profile -----

func (s *AccountService) Profile(ctx context.Context, p *auth.Principal) (*CustomerProfile, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	user, err := s.Users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := &CustomerProfile{User: *user, Profile: models.CustomerProfile{UserID: user.ID}}
	profile, err := s.Users.GetProfile(ctx, p.ID)
	switch {
	case err == nil:
		out.Profile = *profile
	case !apperror.Is(err, apperror.KindNotFound):
		return nil, err
	}
	return out, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, p *auth.Principal, in ProfileInput) (*models.CustomerProfile, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	profile := models.CustomerProfile{
		UserID:  p.ID,
		Phone:   in.Phone,
		Address: in.Address,
		Country: in.Country,
		State:   in.State,
		City:    in.City,
	}
	if err := s.Users.SaveProfile(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
