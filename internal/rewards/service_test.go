package rewards

import (
	"context"
	"strings"
	"testing"
	"time"

	"ecorewards/internal/domain"
	"ecorewards/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Bin{}, &domain.Transaction{}))
	st := store.New(db)
	return NewService(st), st
}

func seedBin(t *testing.T, st store.Store, binID string, types ...domain.RecyclableType) *domain.Bin {
	t.Helper()
	bin := &domain.Bin{
		BinID:         binID,
		Location:      domain.Location{Name: "Central Park, Delhi", Address: "Gate 2, Connaught Place"},
		AcceptedTypes: types,
		QRCode:        PlaceholderQR(binID),
		Active:        true,
	}
	require.NoError(t, st.Bins().Create(context.Background(), bin))
	return bin
}

func seedProduct(t *testing.T, st store.Store, name string, reward float64, material domain.RecyclableType) *domain.Product {
	t.Helper()
	product := &domain.Product{
		Name:           name,
		Price:          95,
		RewardAmount:   reward,
		Category:       domain.CategoryBeverage,
		RecyclableType: material,
		Active:         true,
	}
	require.NoError(t, st.Products().Create(context.Background(), product))
	return product
}

func seedUser(t *testing.T, st store.Store, balance float64) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:         "eco.user@example.com",
		Password:      "hash",
		Name:          "Eco Warrior",
		WalletBalance: balance,
		Role:          domain.RoleUser,
	}
	require.NoError(t, st.Users().Create(context.Background(), user))
	return user
}

func TestSettleCreditsReward(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	bin := seedBin(t, st, "BIN-DEL-001", domain.RecyclablePlastic, domain.RecyclablePaper)
	product := seedProduct(t, st, "Eco Fresh Drink", 5, domain.RecyclablePlastic)
	user := seedUser(t, st, 35)

	result, err := svc.Settle(ctx, "BIN-DEL-001", product.ID, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5, result.Reward, 1e-9)
	assert.Equal(t, "Central Park, Delhi", result.BinLocation)
	assert.Equal(t, "Eco Fresh Drink", result.ProductName)

	// Balance increased by exactly the reward amount
	got, err := st.Users().ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40, got.WalletBalance, 1e-9)

	// Exactly one completed reward transaction with the metadata snapshot
	txs, err := st.Transactions().ListByUser(ctx, user.ID, 50)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	entry := txs[0]
	assert.Equal(t, domain.TxTypeReward, entry.Type)
	assert.Equal(t, domain.TxStatusCompleted, entry.Status)
	assert.InDelta(t, 5, entry.Amount, 1e-9)
	assert.Equal(t, product.ID, entry.ProductID)
	assert.Equal(t, bin.ID, entry.BinID)
	assert.Equal(t, "Eco Fresh Drink", entry.Metadata.ProductName)
	assert.Equal(t, "Central Park, Delhi", entry.Metadata.BinLocation)
	assert.Equal(t, "plastic", entry.Metadata.RecyclableType)
}

func TestSettleMaterialMismatch(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	seedBin(t, st, "BIN-DEL-001", domain.RecyclablePlastic, domain.RecyclablePaper)
	product := seedProduct(t, st, "Glass Water Bottle", 10, domain.RecyclableGlass)
	user := seedUser(t, st, 35)

	_, err := svc.Settle(ctx, "BIN-DEL-001", product.ID, user.ID)
	var mismatch *MaterialMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, domain.RecyclableGlass, mismatch.RecyclableType)
	assert.Equal(t, []domain.RecyclableType{domain.RecyclablePlastic, domain.RecyclablePaper}, mismatch.AcceptedTypes)

	// No transaction written, balance unchanged
	txs, err := st.Transactions().ListByUser(ctx, user.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, txs)
	got, err := st.Users().ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 35, got.WalletBalance, 1e-9)
}

func TestSettleResolutionOrder(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	_, err := svc.Settle(ctx, "BIN-NOPE-999", 1, 1)
	assert.ErrorIs(t, err, ErrBinNotFound)

	seedBin(t, st, "BIN-DEL-001", domain.RecyclablePlastic)
	_, err = svc.Settle(ctx, "BIN-DEL-001", 123, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	product := seedProduct(t, st, "Eco Fresh Drink", 5, domain.RecyclablePlastic)
	_, err = svc.Settle(ctx, "BIN-DEL-001", product.ID, 456)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyBin(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	seedBin(t, st, "BIN-MUM-002", domain.RecyclablePlastic, domain.RecyclableGlass, domain.RecyclableMetal)

	bin, err := svc.VerifyBin(ctx, "BIN-MUM-002")
	require.NoError(t, err)
	assert.Equal(t, "BIN-MUM-002", bin.BinID)
	assert.Len(t, bin.AcceptedTypes, 3)

	_, err = svc.VerifyBin(ctx, "BIN-NOPE-999")
	assert.ErrorIs(t, err, ErrBinNotFound)

	// Deactivated bins verify as not found
	inactive := false
	_, err = svc.UpdateBin(ctx, bin.ID, store.BinUpdate{Active: &inactive})
	require.NoError(t, err)
	_, err = svc.VerifyBin(ctx, "BIN-MUM-002")
	assert.ErrorIs(t, err, ErrBinNotFound)
}

func TestCreateProductRewardPercentage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:           "Eco Fresh Drink",
		Price:          95,
		RewardAmount:   5,
		Category:       domain.CategoryBeverage,
		RecyclableType: domain.RecyclablePlastic,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.26, product.RewardPercentage, 1e-9)
	assert.True(t, product.Active)

	// The snapshot does not follow later price edits
	newPrice := 200.0
	updated, err := svc.UpdateProduct(ctx, product.ID, store.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.InDelta(t, 200, updated.Price, 1e-9)
	assert.InDelta(t, 5.26, updated.RewardPercentage, 1e-9)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "X", Price: 0, Category: domain.CategoryOther, RecyclableType: domain.RecyclablePlastic})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "X", Price: 10, Category: "gadgets", RecyclableType: domain.RecyclablePlastic})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "X", Price: 10, Category: domain.CategoryOther, RecyclableType: "wood"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterBin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	bin, err := svc.RegisterBin(ctx, BinInput{
		Location:      domain.Location{Name: "Metro Station, Bengaluru", Address: "MG Road Metro Exit"},
		AcceptedTypes: []domain.RecyclableType{domain.RecyclableMetal, domain.RecyclableGlass},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bin.BinID, "BIN-"))
	assert.True(t, strings.HasPrefix(bin.QRCode, "data:image/svg+xml;base64,"))
	assert.True(t, bin.Active)

	// The registered bin resolves through the scan path
	resolved, err := svc.VerifyBin(ctx, bin.BinID)
	require.NoError(t, err)
	assert.Equal(t, []domain.RecyclableType{domain.RecyclableMetal, domain.RecyclableGlass}, resolved.AcceptedTypes)

	_, err = svc.RegisterBin(ctx, BinInput{Location: domain.Location{Name: "X", Address: "Y"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RegisterBin(ctx, BinInput{
		Location:      domain.Location{Name: "X", Address: "Y"},
		AcceptedTypes: []domain.RecyclableType{"wood"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRewardsHistoryCap(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, st, 0)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		entry := &domain.Transaction{
			UserID:    user.ID,
			Type:      domain.TxTypeReward,
			Amount:    float64(i),
			Status:    domain.TxStatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Transactions().Create(ctx, entry))
	}

	summary, err := svc.Rewards(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Transactions, 50)
	assert.InDelta(t, 54, summary.Transactions[0].Amount, 1e-9)

	_, err = svc.Rewards(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
