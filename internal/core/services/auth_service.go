package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/config"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/clock"
	"rewardhub/internal/pkg/jwt"
	"rewardhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPhoneAlreadyExists    = errors.New("phone number already registered")
	ErrNIDAlreadyExists      = errors.New("NID already registered")
	ErrPassportExists        = errors.New("passport already registered")
	ErrInvalidReferralCode   = errors.New("invalid referral code")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrWeakPassword          = errors.New("password too short")
	ErrReferralCodeExhausted = errors.New("could not allocate referral code")
)

// referralCodeAttempts bounds retries on referral code collisions
const referralCodeAttempts = 5

// AuthService handles authentication business logic
type AuthService struct {
	store *repositories.Store
	clock clock.Clock
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(store *repositories.Store, clk clock.Clock, cfg *config.Config) *AuthService {
	return &AuthService{
		store: store,
		clock: clk,
		cfg:   cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	NID          string `json:"nid"`
	Passport     string `json:"passport"`
	Password     string `json:"password" validate:"required,min=6"`
	ReferralCode string `json:"referral_code"`
}

// LoginInput represents login input; identifier is a phone, NID or passport
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Register creates a user, their empty wallet and credits the referrer's
// referral count in one transaction
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	// 1. Hash password before opening the transaction
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      name,
		Phone:     phone,
		NID:       optional(input.NID),
		Passport:  optional(input.Passport),
		Password:  hashedPassword,
		Role:      string(domain.RoleConsumer),
		CreatedAt: s.clock.Now(),
	}

	err = s.store.Transaction(ctx, func(st *repositories.Store) error {
		// 2. Unique identifiers
		if err := s.checkUnique(ctx, st, user); err != nil {
			return err
		}

		// 3. Resolve referrer
		if code := strings.ToUpper(strings.TrimSpace(input.ReferralCode)); code != "" {
			referrer, err := st.Users.GetByReferralCode(ctx, code)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidReferralCode
				}
				return err
			}
			user.ReferredBy = &referrer.ID
		}

		// 4. Own referral code
		code, err := newReferralCode(ctx, st.Users)
		if err != nil {
			return err
		}
		user.ReferralCode = code

		// 5. User and wallet
		if err := st.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := st.Wallets.Create(ctx, &models.Wallet{UserID: user.ID}); err != nil {
			return err
		}

		// 6. Referrer count and tier
		if user.ReferredBy != nil {
			if err := st.Users.IncrementReferrals(ctx, *user.ReferredBy); err != nil {
				return err
			}
			if _, _, err := recomputeVIPLevel(ctx, st, *user.ReferredBy); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Tokens
	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (code %s)", user.Phone, user.ReferralCode)
	return resp, nil
}

// checkUnique rejects any identifier already used as a phone, NID or
// passport by another account
func (s *AuthService) checkUnique(ctx context.Context, st *repositories.Store, user *models.User) error {
	checks := []struct {
		value *string
		err   error
	}{
		{&user.Phone, ErrPhoneAlreadyExists},
		{user.NID, ErrNIDAlreadyExists},
		{user.Passport, ErrPassportExists},
	}

	for _, c := range checks {
		if c.value == nil {
			continue
		}
		taken, err := st.Users.IdentifierTaken(ctx, *c.value)
		if err != nil {
			return err
		}
		if taken {
			return c.err
		}
	}
	return nil
}

// Login authenticates a user by phone, NID or passport
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by any identifier
	user, err := s.store.Users.GetByIdentifier(ctx, strings.TrimSpace(input.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Tokens
	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Phone)
	return resp, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find the stored hash
	storedToken, err := s.store.RefreshTokens.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired(s.clock.Now()) {
		return nil, ErrTokenExpired
	}

	// 3. Get user
	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 4. Rotate
	if err := s.store.RefreshTokens.Revoke(ctx, storedToken.ID, s.clock.Now()); err != nil {
		return nil, err
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Phone)
	return resp, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.store.RefreshTokens.RevokeByTokenHash(ctx, password.HashToken(refreshToken), s.clock.Now()); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.store.RefreshTokens.RevokeAllByUserID(ctx, userID, s.clock.Now()); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// issue generates a token pair and stores the refresh token hash
func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Phone,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: s.clock.Now().AddDate(0, 0, s.cfg.JWT.RefreshTokenDays),
	}
	return s.store.RefreshTokens.Create(ctx, token)
}

// newReferralCode returns an unused 8 character uppercase code
func newReferralCode(ctx context.Context, users repositories.UserRepository) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		exists, err := users.ExistsByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrReferralCodeExhausted
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
