package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"diamondadmin/internal/models"
)

// GormProducts persists products through gorm (sqlite or postgres).
// Listing orders newest-first so the contract matches the memory store's
// prepend semantics.
type GormProducts struct {
	DB *gorm.DB
}

func NewGormProducts(db *gorm.DB) *GormProducts { return &GormProducts{DB: db} }

func (s *GormProducts) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *GormProducts) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *GormProducts) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *GormProducts) Update(ctx context.Context, p models.Product) (models.Product, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	if count == 0 {
		return models.Product{}, ErrNotFound
	}
	if err := s.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *GormProducts) Delete(ctx context.Context, id string) error {
	// Deleting an absent row affects nothing, which keeps the operation
	// idempotent like the memory store.
	if err := s.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// GormCustomers persists customer accounts. Password hashes are not
// mapped to any column; only the reset timestamp survives a reset.
type GormCustomers struct {
	DB *gorm.DB
}

func NewGormCustomers(db *gorm.DB) *GormCustomers { return &GormCustomers{DB: db} }

func (s *GormCustomers) List(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

func (s *GormCustomers) Get(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, ErrNotFound
		}
		return models.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (s *GormCustomers) Create(ctx context.Context, c models.Customer, _ string) (models.Customer, error) {
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *GormCustomers) Update(ctx context.Context, c models.Customer) (models.Customer, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
		return models.Customer{}, fmt.Errorf("update customer: %w", err)
	}
	if count == 0 {
		return models.Customer{}, ErrNotFound
	}
	if err := s.DB.WithContext(ctx).Save(&c).Error; err != nil {
		return models.Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

func (s *GormCustomers) Delete(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (s *GormCustomers) ResetPassword(ctx context.Context, id string, _ ResetMethod, _ string) (models.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	today := models.Today()
	if err := s.DB.WithContext(ctx).Model(&c).Update("last_password_reset", today).Error; err != nil {
		return models.Customer{}, fmt.Errorf("reset password: %w", err)
	}
	c.LastPasswordReset = &today
	return c, nil
}
