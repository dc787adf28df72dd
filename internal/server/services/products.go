package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
)

// ProductService serves the read-only catalog.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ProductService {
	if l == nil {
		l = logging.Nop()
	}
	return &ProductService{db: db, repomanager: m, logger: l.With("module", "product_service")}
}

// List returns every product ordered by id.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.repomanager.Products(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list products failed", "error", err)
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Get returns a single product or common.ErrorNotFound.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "get product failed", "error", err, "product_id", id)
		return nil, common.ErrorInternal
	}
	return p, nil
}
