package store

import (
	"context"
	"encoding/json"
	"errors"

	"ecorewards/internal/domain"

	"gorm.io/gorm"
)

// gormStore implements Store over a gorm connection. The db handle may be
// either a root connection or a transaction, which is what makes Atomically
// work: the nested Store simply wraps the gorm transaction handle.
type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by the given gorm connection. Open the
// connection with TranslateError enabled so duplicate-key violations map to
// ErrDuplicate.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() Users               { return &gormUsers{db: s.db} }
func (s *gormStore) Products() Products         { return &gormProducts{db: s.db} }
func (s *gormStore) Bins() Bins                 { return &gormBins{db: s.db} }
func (s *gormStore) Transactions() Transactions { return &gormTransactions{db: s.db} }

func (s *gormStore) Atomically(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Create(ctx context.Context, user *domain.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormUsers) ByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormUsers) CreditWallet(ctx context.Context, id uint, amount float64) error {
	// Single atomic increment, never read-modify-write. Zero rows affected
	// means the user is absent, which is a silent no-op.
	return translate(s.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error)
}

type gormProducts struct {
	db *gorm.DB
}

func (s *gormProducts) Create(ctx context.Context, product *domain.Product) error {
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *gormProducts) ByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *gormProducts) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := s.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	var products []domain.Product
	if err := query.Order("created_at desc, id desc").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *gormProducts) Update(ctx context.Context, id uint, update ProductUpdate) (*domain.Product, error) {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.RewardAmount != nil {
		fields["reward_amount"] = *update.RewardAmount
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.RecyclableType != nil {
		fields["recyclable_type"] = *update.RecyclableType
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.Active != nil {
		fields["active"] = *update.Active
	}
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil // absent target: silent no-op
		}
	}
	product, err := s.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return product, err
}

func (s *gormProducts) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

type gormBins struct {
	db *gorm.DB
}

func (s *gormBins) Create(ctx context.Context, bin *domain.Bin) error {
	return translate(s.db.WithContext(ctx).Create(bin).Error)
}

func (s *gormBins) ByID(ctx context.Context, id uint) (*domain.Bin, error) {
	var bin domain.Bin
	if err := s.db.WithContext(ctx).First(&bin, id).Error; err != nil {
		return nil, translate(err)
	}
	return &bin, nil
}

func (s *gormBins) ByBinID(ctx context.Context, binID string) (*domain.Bin, error) {
	var bin domain.Bin
	err := s.db.WithContext(ctx).Where("bin_id = ? AND active = ?", binID, true).First(&bin).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bin, nil
}

func (s *gormBins) List(ctx context.Context) ([]domain.Bin, error) {
	var bins []domain.Bin
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&bins).Error; err != nil {
		return nil, translate(err)
	}
	return bins, nil
}

func (s *gormBins) Update(ctx context.Context, id uint, update BinUpdate) (*domain.Bin, error) {
	// Map-based Updates bypass the model's json serializer, so the
	// serialized columns are encoded here to match what gorm writes on
	// create.
	fields := map[string]any{}
	if update.Location != nil {
		loc, err := json.Marshal(update.Location)
		if err != nil {
			return nil, err
		}
		fields["location"] = string(loc)
	}
	if update.AcceptedTypes != nil {
		types, err := json.Marshal(update.AcceptedTypes)
		if err != nil {
			return nil, err
		}
		fields["accepted_types"] = string(types)
	}
	if update.Active != nil {
		fields["active"] = *update.Active
	}
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&domain.Bin{ID: id}).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, nil // absent target: silent no-op
		}
	}
	bin, err := s.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return bin, err
}

func (s *gormBins) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&domain.Bin{}, id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

type gormTransactions struct {
	db *gorm.DB
}

func (s *gormTransactions) Create(ctx context.Context, tx *domain.Transaction) error {
	return translate(s.db.WithContext(ctx).Create(tx).Error)
}

func (s *gormTransactions) ListByUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}
