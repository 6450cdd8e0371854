// internal/services/catalog_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// CatalogService owns product reads and writes. Every successful write invalidates the
// product cache and then publishes its event, both before the call returns.
type CatalogService struct {
	store     store.ProductStore
	cache     *cache.ProductCache
	publisher events.Publisher
	order     store.SortOrder
}

type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=255"`
	Category       string   `json:"category" validate:"max=100"`
	Price          float64  `json:"price" validate:"gte=0"`
	OriginalPrice  float64  `json:"originalPrice" validate:"gte=0"`
	Image          string   `json:"image"`
	Images         []string `json:"images"`
	Rating         float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews        int64    `json:"reviews" validate:"gte=0"`
	InStock        *bool    `json:"inStock"`
	Badge          string   `json:"badge" validate:"max=50"`
	QRID           string   `json:"qrId"`
	QRPassword     string   `json:"qrPassword"`
	TrackingStatus string   `json:"trackingStatus"`
	OwnerGender    string   `json:"ownerGender"`
}

func NewCatalogService(productStore store.ProductStore, productCache *cache.ProductCache, publisher events.Publisher, order store.SortOrder) *CatalogService {
	return &CatalogService{
		store:     productStore,
		cache:     productCache,
		publisher: publisher,
		order:     order,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cache.Get(); ok {
		return products, nil
	}

	// The version is read before the store so a write racing this read discards our populate.
	version := s.cache.Version()
	products, err := s.store.FindProducts(ctx, s.order)
	if err != nil {
		return nil, failed("list_products", storeFailure(err))
	}
	if products == nil {
		products = []models.Product{}
	}
	if !s.cache.Populate(version, products) {
		logrus.Debug("Product list changed during read, snapshot not cached")
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, failed("get_product", storeFailure(err))
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("create_product", validationFailed(err))
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	images := pq.StringArray{}
	if req.Images != nil {
		images = append(images, req.Images...)
	}

	product := &models.Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Image:          req.Image,
		Images:         images,
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		InStock:        inStock,
		Badge:          req.Badge,
		QRID:           req.QRID,
		QRPassword:     req.QRPassword,
		TrackingStatus: req.TrackingStatus,
		OwnerGender:    req.OwnerGender,
	}

	if err := s.store.InsertProduct(ctx, product); err != nil {
		if apperrors.IsConflict(err) {
			err = &apperrors.Error{
				Kind:    apperrors.KindValidation,
				Message: "product violates a unique constraint",
				Err:     err,
			}
		}
		return nil, failed("create_product", storeFailure(err))
	}

	s.cache.Invalidate()
	s.publisher.Publish(events.ProductAdded, product)

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")
	return product, nil
}

// PatchProduct merges only the supplied fields into the stored product.
func (s *CatalogService) PatchProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := utils.ValidateStruct(&patch); err != nil {
		return nil, failed("patch_product", validationFailed(err))
	}

	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, failed("patch_product", storeFailure(err))
	}

	s.cache.Invalidate()
	s.publisher.Publish(events.ProductUpdated, product)

	logrus.WithField("product_id", id).Info("Product updated")
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.store.DeleteProduct(ctx, id); err != nil {
		return failed("delete_product", storeFailure(err))
	}

	s.cache.Invalidate()
	s.publisher.Publish(events.ProductDeleted, events.ProductDeletedPayload{ID: id})

	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}
