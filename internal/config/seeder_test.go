package config

import (
	"testing"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
)

func TestSeederIsIdempotent(t *testing.T) {
	db, err := OpenSQLite("file:seeder?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	cfg := &Config{
		Rewards: RewardsConfig{DefaultReferralBonus: 150, Location: time.UTC},
		Admin:   AdminConfig{Name: "Root", Phone: "01999999999", Password: "adminpass1"},
	}

	seeder := NewSeeder(db, cfg)
	require.NoError(t, seeder.Run())
	require.NoError(t, seeder.Run())

	var setting models.Setting
	require.NoError(t, db.First(&setting, models.SettingsID).Error)
	require.Equal(t, 150.0, setting.ReferralBonus)
	require.Equal(t, "BDT", setting.Currency)

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.EqualValues(t, len(starterProducts), products)

	var admins []models.User
	require.NoError(t, db.Where("role = ?", string(domain.RoleAdmin)).Find(&admins).Error)
	require.Len(t, admins, 1)
	require.True(t, admins[0].IsActive)
	require.True(t, password.Verify("adminpass1", admins[0].Password))

	var wallets int64
	require.NoError(t, db.Model(&models.Wallet{}).Where("user_id = ?", admins[0].ID).Count(&wallets).Error)
	require.EqualValues(t, 1, wallets)
}

func TestSeederSkipsAdminWithoutCredentials(t *testing.T) {
	db, err := OpenSQLite("file:seeder_noadmin?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	cfg := &Config{Rewards: RewardsConfig{DefaultReferralBonus: 200, Location: time.UTC}}
	require.NoError(t, NewSeeder(db, cfg).Run())

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.Zero(t, users)
}
