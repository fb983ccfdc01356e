package repository

import (
	"context"
	"fmt"
	"time"

	"gcc-market-sync/internal/entity"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// CompaniesRepository defines read access to the companies table.
type CompaniesRepository interface {
	GetActive(ctx context.Context) ([]entity.Company, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Company, error)
}

// NewCompaniesRepository creates a new instance of CompaniesRepository.
// Ticker lookups are cached in process since the pipeline resolves the
// same tickers repeatedly within a cycle.
func NewCompaniesRepository(db *gorm.DB) CompaniesRepository {
	return &companiesRepository{
		db:          db,
		tickerCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type companiesRepository struct {
	db          *gorm.DB
	tickerCache *cache.Cache
}

// GetActive returns all active companies.
func (r *companiesRepository) GetActive(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindByTicker resolves a company by its ticker. Returns
// gorm.ErrRecordNotFound for unknown tickers.
func (r *companiesRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Company, error) {
	cacheKey := fmt.Sprintf("company:%s", ticker)
	if cached, ok := r.tickerCache.Get(cacheKey); ok {
		company := cached.(entity.Company)
		return &company, nil
	}

	var company entity.Company
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&company).Error; err != nil {
		return nil, err
	}

	r.tickerCache.Set(cacheKey, company, cache.DefaultExpiration)
	return &company, nil
}
