package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/core/rewards"

	"github.com/stretchr/testify/require"
)

func register(t *testing.T, svc *AuthService, phone, code string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterInput{
		Name:         "Member " + phone,
		Phone:        phone,
		Password:     "secret123",
		ReferralCode: code,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	resp, err := svc.Register(ctx, &RegisterInput{
		Name:     "  Rahim ",
		Phone:    "01711111111",
		NID:      "1990123456",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "Rahim", resp.User.Name)
	require.Len(t, resp.User.ReferralCode, 8)
	require.False(t, resp.User.IsActive)
	require.Equal(t, string(domain.RoleConsumer), resp.User.Role)

	w := e.wallet(t, resp.User.ID)
	require.Zero(t, w.RechargeWallet)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Phone: "0171", NID: "N1", Passport: "P1", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0171", Password: "secret123"})
	require.ErrorIs(t, err, ErrPhoneAlreadyExists)
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", NID: "N1", Password: "secret123"})
	require.ErrorIs(t, err, ErrNIDAlreadyExists)
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", Passport: "P1", Password: "secret123"})
	require.ErrorIs(t, err, ErrPassportExists)
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", Password: "123"})
	require.ErrorIs(t, err, ErrWeakPassword)
	_, err = svc.Register(ctx, &RegisterInput{Name: " ", Phone: "0172", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", Password: "secret123", ReferralCode: "NOPE0000"})
	require.ErrorIs(t, err, ErrInvalidReferralCode)

	// nothing from the failed attempts was kept
	exists, err := e.store.Users.IdentifierTaken(ctx, "0172")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRegisterRejectsIdentifierUsedInAnotherColumn(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Phone: "0171", NID: "N1", Passport: "P1", Password: "secret123"})
	require.NoError(t, err)

	// another account's phone as NID
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", NID: "0171", Password: "secret123"})
	require.ErrorIs(t, err, ErrNIDAlreadyExists)
	// another account's NID as passport
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "0172", Passport: "N1", Password: "secret123"})
	require.ErrorIs(t, err, ErrPassportExists)
	// another account's passport as phone
	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Phone: "P1", Password: "secret123"})
	require.ErrorIs(t, err, ErrPhoneAlreadyExists)

	// login still resolves the original account
	resp, err := svc.Login(ctx, &LoginInput{Identifier: "0171", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "A", resp.User.Name)
}

func TestRegisterWithReferralRaisesTier(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	referrer := register(t, svc, "01800000000", "")
	code := referrer.User.ReferralCode

	for i := 1; i <= 4; i++ {
		resp := register(t, svc, fmt.Sprintf("0180000000%d", i), code)
		require.NotNil(t, resp.User.ReferredBy)
		require.Equal(t, referrer.User.ID, *resp.User.ReferredBy)
	}
	u, err := e.store.Users.GetByID(ctx, referrer.User.ID)
	require.NoError(t, err)
	require.Equal(t, 4, u.TotalReferrals)
	require.Equal(t, int(rewards.LevelRegular), u.VIPLevel)

	// codes are matched case-insensitively
	register(t, svc, "01800000005", " "+strings.ToLower(code)+" ")

	u, err = e.store.Users.GetByID(ctx, referrer.User.ID)
	require.NoError(t, err)
	require.Equal(t, 5, u.TotalReferrals)
	require.Equal(t, int(rewards.LevelVIP1), u.VIPLevel)
}

func TestLoginByAnyIdentifier(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Phone: "01711111111", NID: "1990123456", Passport: "BX0001", Password: "secret123"})
	require.NoError(t, err)

	for _, id := range []string{"01711111111", "1990123456", "BX0001"} {
		resp, err := svc.Login(ctx, &LoginInput{Identifier: id, Password: "secret123"})
		require.NoError(t, err, id)
		require.Equal(t, "01711111111", resp.User.Phone)
	}

	_, err = svc.Login(ctx, &LoginInput{Identifier: "01711111111", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &LoginInput{Identifier: "nobody", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	first := register(t, svc, "01711111111", "")

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	require.NoError(t, svc.Logout(ctx, second.RefreshToken))
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	_, err = svc.RefreshToken(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewAuthService(e.store, e.clock, e.cfg)

	reg := register(t, svc, "01711111111", "")
	login, err := svc.Login(ctx, &LoginInput{Identifier: "01711111111", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))
	for _, tok := range []string{reg.RefreshToken, login.RefreshToken} {
		_, err := svc.RefreshToken(ctx, tok)
		require.ErrorIs(t, err, ErrTokenRevoked)
	}
}
