package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// starterProducts is the catalog installed on an empty database
var starterProducts = []models.Product{
	{Name: "Bronze Plan", Description: "Entry plan", Price: 500, ValidityDays: 30, EarnAmount: 25, TotalEarning: 750},
	{Name: "Silver Plan", Description: "Mid plan", Price: 2000, ValidityDays: 45, EarnAmount: 110, TotalEarning: 4950},
	{Name: "Gold Plan", Description: "Top plan", Price: 5000, ValidityDays: 60, EarnAmount: 300, TotalEarning: 18000},
}

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSettings(); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := s.seedProducts(); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSettings writes the singleton settings row once
func (s *Seeder) seedSettings() error {
	defaults := models.DefaultSettings(s.cfg.Rewards.DefaultReferralBonus)
	return s.db.Where("id = ?", models.SettingsID).FirstOrCreate(&defaults).Error
}

// seedProducts installs the starter catalog when no product exists
func (s *Seeder) seedProducts() error {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := make([]models.Product, len(starterProducts))
	copy(products, starterProducts)
	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("✅ Starter catalog created: %d products", len(products))
	return nil
}

// seedAdminUser creates the bootstrap admin from ADMIN_PHONE/ADMIN_PASSWORD
func (s *Seeder) seedAdminUser() error {
	admin := s.cfg.Admin
	if admin.Phone == "" || admin.Password == "" {
		return nil
	}

	var existing models.User
	err := s.db.Where("phone = ?", admin.Phone).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := password.Hash(admin.Password)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Name:         admin.Name,
			Phone:        admin.Phone,
			Password:     hashedPassword,
			Role:         string(domain.RoleAdmin),
			IsActive:     true,
			ReferralCode: strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8]),
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Wallet{UserID: user.ID}).Error; err != nil {
			return err
		}

		log.Printf("✅ Admin user created: %s", user.Phone)
		return nil
	})
}
