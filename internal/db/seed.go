package db

import (
	"time"

	"ecorewards/internal/domain"
	"ecorewards/internal/rewards"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Seed loads the demo catalog, bins, users, and one historical reward
// transaction. It is idempotent: a database that already has users is left
// alone.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&domain.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		logrus.Info("Seed skipped: users already present.")
		return nil
	}

	products := []domain.Product{
		{
			Name:             "Eco Fresh Drink",
			Description:      "Refreshing beverage in a recyclable plastic bottle",
			Price:            95,
			RewardAmount:     5,
			RewardPercentage: 5.26,
			Category:         domain.CategoryBeverage,
			RecyclableType:   domain.RecyclablePlastic,
			Active:           true,
		},
		{
			Name:             "Glass Water Bottle",
			Description:      "Premium glass bottled water",
			Price:            120,
			RewardAmount:     10,
			RewardPercentage: 8.33,
			Category:         domain.CategoryBeverage,
			RecyclableType:   domain.RecyclableGlass,
			Active:           true,
		},
		{
			Name:             "Organic Juice Can",
			Description:      "Aluminum can with organic juice",
			Price:            85,
			RewardAmount:     6,
			RewardPercentage: 7.05,
			Category:         domain.CategoryBeverage,
			RecyclableType:   domain.RecyclableMetal,
			Active:           true,
		},
		{
			Name:             "Eco Snack Box",
			Description:      "Biodegradable snack packaging",
			Price:            150,
			RewardAmount:     12,
			RewardPercentage: 8,
			Category:         domain.CategoryFood,
			RecyclableType:   domain.RecyclablePaper,
			Active:           true,
		},
	}

	bins := []domain.Bin{
		{
			BinID: "BIN-DEL-001",
			Location: domain.Location{
				Name:    "Central Park, Delhi",
				Address: "Gate 2, Connaught Place, New Delhi",
			},
			AcceptedTypes: []domain.RecyclableType{domain.RecyclablePlastic, domain.RecyclablePaper},
			QRCode:        rewards.PlaceholderQR("BIN-DEL-001"),
			Active:        true,
		},
		{
			BinID: "BIN-MUM-002",
			Location: domain.Location{
				Name:    "Marine Drive Mall, Mumbai",
				Address: "Level 3, South Wing",
			},
			AcceptedTypes: []domain.RecyclableType{domain.RecyclablePlastic, domain.RecyclableGlass, domain.RecyclableMetal},
			QRCode:        rewards.PlaceholderQR("BIN-MUM-002"),
			Active:        true,
		},
		{
			BinID: "BIN-BLR-003",
			Location: domain.Location{
				Name:    "Metro Station, Bengaluru",
				Address: "MG Road Metro Exit",
			},
			AcceptedTypes: []domain.RecyclableType{domain.RecyclableMetal, domain.RecyclableGlass, domain.RecyclablePlastic},
			QRCode:        rewards.PlaceholderQR("BIN-BLR-003"),
			Active:        true,
		},
		{
			BinID: "BIN-PUN-004",
			Location: domain.Location{
				Name:    "University Campus, Pune",
				Address: "Hostel Block Recycling Hub",
			},
			AcceptedTypes: []domain.RecyclableType{domain.RecyclablePaper, domain.RecyclableOrganic},
			QRCode:        rewards.PlaceholderQR("BIN-PUN-004"),
			Active:        true,
		},
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []domain.User{
		{
			Email:         "eco.user@example.com",
			Password:      string(userHash),
			Name:          "Eco Warrior",
			Phone:         "+91 90000 00000",
			WalletBalance: 35,
			Role:          domain.RoleUser,
		},
		{
			Email:    "admin@ecorewards.app",
			Password: string(adminHash),
			Name:     "Program Admin",
			Phone:    "+91 98888 88888",
			Role:     domain.RoleAdmin,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		if err := tx.Create(&bins).Error; err != nil {
			return err
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		// One historical reward so the demo wallet's balance of 35 has a
		// visible ledger entry behind it
		opening := domain.Transaction{
			UserID:      users[0].ID,
			ProductID:   products[0].ID,
			BinID:       bins[0].ID,
			Type:        domain.TxTypeReward,
			Amount:      5,
			Description: "Reward for recycling " + products[0].Name,
			Status:      domain.TxStatusCompleted,
			Metadata: domain.TransactionMetadata{
				ProductName:    products[0].Name,
				BinLocation:    bins[0].Location.Name,
				RecyclableType: string(products[0].RecyclableType),
			},
			CreatedAt: time.Now().Add(-24 * time.Hour),
		}
		if err := tx.Create(&opening).Error; err != nil {
			return err
		}
		logrus.Info("Demo data seeded.")
		return nil
	})
}
