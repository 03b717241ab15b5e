package rewards

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"ecorewards/internal/domain"
	"ecorewards/internal/store"

	"github.com/sirupsen/logrus" // Logging library
)

// HistoryLimit caps the number of ledger entries returned by a wallet query.
const HistoryLimit = 50

// Service owns the disposal workflow: bin registry, product catalog, wallet
// ledger and the verifier that ties them together.
type Service struct {
	store store.Store
}

// NewService wires the service to a Store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// BinInput is the admin payload for registering a bin.
type BinInput struct {
	Location      domain.Location         `json:"location"`
	AcceptedTypes []domain.RecyclableType `json:"acceptedTypes"`
}

// ProductInput is the admin payload for creating a product.
type ProductInput struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	RewardAmount   float64               `json:"rewardAmount"`
	Category       string                `json:"category"`
	RecyclableType domain.RecyclableType `json:"recyclableType"`
	ImageURL       string                `json:"imageUrl"`
}

// Settlement is what a successful disposal returns to the client.
type Settlement struct {
	Reward      float64 `json:"reward"`
	BinLocation string  `json:"binLocation"`
	ProductName string  `json:"productName"`
}

// WalletSummary is the wallet/rewards query response body.
type WalletSummary struct {
	WalletBalance float64              `json:"walletBalance"`
	Transactions  []domain.Transaction `json:"transactions"`
}

// newBinID generates an external bin identifier from the current time plus a
// random suffix. Not cryptographically unique; collisions are theoretically
// possible and caught by the unique index on bin_id.
func newBinID() string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("BIN-%d-%s", time.Now().UnixMilli(), suffix)
}

// PlaceholderQR renders the stored QR payload for a bin: an SVG data URI
// carrying the external identifier. Real QR imaging is out of scope.
func PlaceholderQR(binID string) string {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="240" height="240">` +
		`<rect width="100%" height="100%" fill="#e2e8f0"/>` +
		`<text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle"` +
		` font-size="16" font-family="Arial" fill="#0f172a">` + binID + `</text></svg>`
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// RegisterBin issues a new bin: generated external id, placeholder QR
// payload, active from the start.
func (s *Service) RegisterBin(ctx context.Context, input BinInput) (*domain.Bin, error) {
	if strings.TrimSpace(input.Location.Name) == "" || strings.TrimSpace(input.Location.Address) == "" {
		return nil, fmt.Errorf("%w: location name and address are required", ErrInvalidInput)
	}
	if len(input.AcceptedTypes) == 0 {
		return nil, fmt.Errorf("%w: at least one accepted type is required", ErrInvalidInput)
	}
	for _, t := range input.AcceptedTypes {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown recyclable type %q", ErrInvalidInput, t)
		}
	}
	binID := newBinID()
	bin := &domain.Bin{
		BinID:         binID,
		Location:      input.Location,
		AcceptedTypes: input.AcceptedTypes,
		QRCode:        PlaceholderQR(binID),
		Active:        true,
	}
	if err := s.store.Bins().Create(ctx, bin); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"bin_id":   bin.BinID,
		"location": bin.Location.Name,
	}).Info("Bin registered")
	return bin, nil
}

// VerifyBin resolves a bin by its external identifier for client display.
// Read-only, no side effects.
func (s *Service) VerifyBin(ctx context.Context, binID string) (*domain.Bin, error) {
	bin, err := s.store.Bins().ByBinID(ctx, binID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBinNotFound
	}
	if err != nil {
		return nil, err
	}
	return bin, nil
}

// roundPercentage rounds to two decimal places, so 5/95 reads as 5.26.
func roundPercentage(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateProduct stores a catalog item. The reward percentage is computed
// here, once; later price edits do not refresh it.
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if input.RewardAmount < 0 {
		return nil, fmt.Errorf("%w: reward amount cannot be negative", ErrInvalidInput)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if !input.RecyclableType.Valid() {
		return nil, fmt.Errorf("%w: unknown recyclable type %q", ErrInvalidInput, input.RecyclableType)
	}
	product := &domain.Product{
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		RewardAmount:     input.RewardAmount,
		RewardPercentage: roundPercentage(input.RewardAmount / input.Price * 100),
		Category:         input.Category,
		RecyclableType:   input.RecyclableType,
		ImageURL:         input.ImageURL,
		Active:           true,
	}
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns catalog items matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	return s.store.Products().List(ctx, filter)
}

// UpdateProduct merges a partial edit. The returned product is nil when the
// id is absent.
func (s *Service) UpdateProduct(ctx context.Context, id uint, update store.ProductUpdate) (*domain.Product, error) {
	if update.RecyclableType != nil && !update.RecyclableType.Valid() {
		return nil, fmt.Errorf("%w: unknown recyclable type %q", ErrInvalidInput, *update.RecyclableType)
	}
	if update.Category != nil && !domain.ValidCategory(*update.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *update.Category)
	}
	return s.store.Products().Update(ctx, id, update)
}

// DeleteProduct removes a catalog item, reporting whether it existed.
func (s *Service) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	return s.store.Products().Delete(ctx, id)
}

// ListBins returns every registered bin, admin view.
func (s *Service) ListBins(ctx context.Context) ([]domain.Bin, error) {
	return s.store.Bins().List(ctx)
}

// UpdateBin merges a partial edit. The returned bin is nil when the id is
// absent.
func (s *Service) UpdateBin(ctx context.Context, id uint, update store.BinUpdate) (*domain.Bin, error) {
	for _, t := range update.AcceptedTypes {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown recyclable type %q", ErrInvalidInput, t)
		}
	}
	return s.store.Bins().Update(ctx, id, update)
}

// DeleteBin removes a bin, reporting whether it existed.
func (s *Service) DeleteBin(ctx context.Context, id uint) (bool, error) {
	return s.store.Bins().Delete(ctx, id)
}

// Rewards returns a user's wallet balance and their most recent ledger
// entries, capped at HistoryLimit.
func (s *Service) Rewards(ctx context.Context, userID uint) (*WalletSummary, error) {
	user, err := s.store.Users().ByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	txs, err := s.store.Transactions().ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{WalletBalance: user.WalletBalance, Transactions: txs}, nil
}

// Settle verifies a disposal and credits the reward. Resolution order is
// bin, product, user, then eligibility, each short-circuiting. The ledger
// append and the wallet credit commit as one unit.
func (s *Service) Settle(ctx context.Context, binID string, productID, userID uint) (*Settlement, error) {
	bin, err := s.store.Bins().ByBinID(ctx, binID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBinNotFound
	}
	if err != nil {
		return nil, err
	}
	product, err := s.store.Products().ByID(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users().ByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !bin.Accepts(product.RecyclableType) {
		return nil, &MaterialMismatchError{
			RecyclableType: product.RecyclableType,
			AcceptedTypes:  bin.AcceptedTypes,
		}
	}
	err = s.store.Atomically(ctx, func(tx store.Store) error {
		entry := &domain.Transaction{
			UserID:      user.ID,
			ProductID:   product.ID,
			BinID:       bin.ID,
			Type:        domain.TxTypeReward,
			Amount:      product.RewardAmount,
			Description: "Reward for recycling " + product.Name,
			Status:      domain.TxStatusCompleted,
			Metadata: domain.TransactionMetadata{
				ProductName:    product.Name,
				BinLocation:    bin.Location.Name,
				RecyclableType: string(product.RecyclableType),
			},
		}
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}
		return tx.Users().CreditWallet(ctx, user.ID, product.RewardAmount)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"bin_id":     bin.BinID,
			"product_id": product.ID,
			"error":      err.Error(),
		}).Error("Settlement failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"bin_id":     bin.BinID,
		"product_id": product.ID,
		"amount":     product.RewardAmount,
		"type":       domain.TxTypeReward,
		"timestamp":  time.Now().Format(time.RFC3339),
	}).Info("Disposal settled")
	return &Settlement{
		Reward:      product.RewardAmount,
		BinLocation: bin.Location.Name,
		ProductName: product.Name,
	}, nil
}
