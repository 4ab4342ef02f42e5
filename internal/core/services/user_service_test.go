package services

import (
	"context"
	"testing"

	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/pagination"
	"rewardhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
)

func TestUpdateProfileKeepsRewardState(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewUserService(e.store)

	u := e.user(t, nil)
	e.setReferrals(t, u.ID, 7)

	name := "  New Name "
	resp, err := svc.UpdateProfile(ctx, u.ID, &UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "New Name", resp.Name)

	fresh, err := e.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 7, fresh.TotalReferrals)

	blank := " "
	_, err = svc.UpdateProfile(ctx, u.ID, &UpdateProfileInput{Name: &blank})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	auth := NewAuthService(e.store, e.clock, e.cfg)
	svc := NewUserService(e.store)

	reg := register(t, auth, "01711111111", "")

	err := svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{OldPassword: "wrong", NewPassword: "another1"})
	require.ErrorIs(t, err, ErrOldPasswordWrong)
	err = svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{OldPassword: "secret123", NewPassword: "abc"})
	require.ErrorIs(t, err, ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordInput{OldPassword: "secret123", NewPassword: "another1"}))

	fresh, err := e.store.Users.GetByID(ctx, reg.User.ID)
	require.NoError(t, err)
	require.True(t, password.Verify("another1", fresh.Password))
}

func TestAdminUserManagement(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	svc := NewUserService(e.store)

	admin := e.user(t, nil)
	u := e.user(t, nil)

	list, err := svc.ListUsers(ctx, u.Phone, pagination.NewParams(1, 10))
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	require.Equal(t, u.ID, list.Users[0].ID)

	detail, err := svc.GetUserDetail(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Wallet)

	role := string(domain.RoleAdmin)
	_, err = svc.UpdateUserByAdmin(ctx, admin.ID, admin.ID, &UpdateUserByAdminInput{Role: &role})
	require.ErrorIs(t, err, ErrCannotChangeOwnRole)

	bogus := "owner"
	_, err = svc.UpdateUserByAdmin(ctx, u.ID, admin.ID, &UpdateUserByAdminInput{Role: &bogus})
	require.ErrorIs(t, err, ErrInvalidRole)

	active := true
	resp, err := svc.UpdateUserByAdmin(ctx, u.ID, admin.ID, &UpdateUserByAdminInput{IsActive: &active})
	require.NoError(t, err)
	require.True(t, resp.IsActive)

	require.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), ErrCannotDeleteSelf)
	require.NoError(t, svc.DeleteUser(ctx, u.ID, admin.ID))
	_, err = svc.GetProfile(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
