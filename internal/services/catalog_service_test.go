package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	mock_store "github.com/javajoker/storefront-backend/internal/store/mocks"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memstore.Store
	cache     *cache.ProductCache
	publisher *recordingPublisher
	service   *CatalogService
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memstore.New()
	suite.cache = cache.NewProductCache(time.Minute)
	suite.publisher = newRecordingPublisher(suite.cache)
	suite.service = NewCatalogService(suite.store, suite.cache, suite.publisher, store.NewestFirst)
}

func (suite *CatalogServiceTestSuite) create(name string, price float64) *models.Product {
	product, err := suite.service.CreateProduct(suite.ctx, &CreateProductRequest{Name: name, Price: price})
	suite.Require().NoError(err)
	return product
}

func (suite *CatalogServiceTestSuite) TestProductLifecycle() {
	created := suite.create("Widget", 100)
	suite.NotEmpty(created.ID)

	added := suite.publisher.Last()
	suite.Equal(events.ProductAdded, added.Kind)
	suite.Equal(created.ID, added.Payload.(*models.Product).ID)

	list, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal("Widget", list[0].Name)

	updated, err := suite.service.PatchProduct(suite.ctx, created.ID, models.ProductPatch{Price: ptr(120.0)})
	suite.Require().NoError(err)
	suite.Equal(120.0, updated.Price)
	suite.Equal(events.ProductUpdated, suite.publisher.Last().Kind)

	list, err = suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal(120.0, list[0].Price)
	suite.Equal("Widget", list[0].Name)

	suite.Require().NoError(suite.service.DeleteProduct(suite.ctx, created.ID))
	deleted := suite.publisher.Last()
	suite.Equal(events.ProductDeleted, deleted.Kind)
	suite.Equal(events.ProductDeletedPayload{ID: created.ID}, deleted.Payload)

	list, err = suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(list)
}

func (suite *CatalogServiceTestSuite) TestCacheIsColdWhenEventsArePublished() {
	created := suite.create("Widget", 100)

	_, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	_, err = suite.service.PatchProduct(suite.ctx, created.ID, models.ProductPatch{Badge: ptr("Sale")})
	suite.Require().NoError(err)

	_, err = suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.DeleteProduct(suite.ctx, created.ID))

	for _, ev := range suite.publisher.Events() {
		suite.False(ev.CacheWarm, "cache still warm when %s was published", ev.Kind)
	}
}

func (suite *CatalogServiceTestSuite) TestListServesSnapshotWithinWindow() {
	suite.create("Widget", 100)
	_, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)

	// A change that bypasses the service is not visible until the window expires.
	suite.Require().NoError(suite.store.InsertProduct(suite.ctx, &models.Product{ID: "external", Name: "Gizmo"}))

	list, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(list, 1)

	suite.create("Gadget", 50)
	list, err = suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(list, 3)
	suite.Equal("Gadget", list[0].Name)
}

func (suite *CatalogServiceTestSuite) TestPatchMergesOnlySuppliedFields() {
	created, err := suite.service.CreateProduct(suite.ctx, &CreateProductRequest{
		Name:     "Widget",
		Category: "tools",
		Price:    100,
		Images:   []string{"a.png", "b.png"},
		Badge:    "New",
	})
	suite.Require().NoError(err)

	updated, err := suite.service.PatchProduct(suite.ctx, created.ID, models.ProductPatch{Price: ptr(50.0)})
	suite.Require().NoError(err)

	suite.Equal(50.0, updated.Price)
	suite.Equal("Widget", updated.Name)
	suite.Equal("tools", updated.Category)
	suite.Equal("New", updated.Badge)
	suite.Equal([]string{"a.png", "b.png"}, []string(updated.Images))
	suite.True(updated.InStock)
}

func (suite *CatalogServiceTestSuite) TestCreateDefaults() {
	created := suite.create("Widget", 0)
	suite.True(created.InStock)
	suite.NotNil(created.Images)
	suite.Empty(created.Images)

	outOfStock, err := suite.service.CreateProduct(suite.ctx, &CreateProductRequest{Name: "Gadget", InStock: ptr(false)})
	suite.Require().NoError(err)
	suite.False(outOfStock.InStock)
}

func (suite *CatalogServiceTestSuite) TestCreateRejectsInvalidInput() {
	_, err := suite.service.CreateProduct(suite.ctx, &CreateProductRequest{Price: 10})
	suite.True(apperrors.IsValidation(err))

	_, err = suite.service.CreateProduct(suite.ctx, &CreateProductRequest{Name: "Widget", Price: -1})
	suite.True(apperrors.IsValidation(err))

	suite.Empty(suite.publisher.Events())
}

func (suite *CatalogServiceTestSuite) TestDeleteMissingProductLeavesCacheAlone() {
	suite.create("Widget", 100)
	_, err := suite.service.ListProducts(suite.ctx)
	suite.Require().NoError(err)
	published := len(suite.publisher.Events())
	version := suite.cache.Version()

	err = suite.service.DeleteProduct(suite.ctx, "missing")
	suite.True(apperrors.IsNotFound(err))

	suite.Len(suite.publisher.Events(), published)
	suite.Equal(version, suite.cache.Version())
	_, warm := suite.cache.Get()
	suite.True(warm)
}

func (suite *CatalogServiceTestSuite) TestPatchMissingProduct() {
	version := suite.cache.Version()

	_, err := suite.service.PatchProduct(suite.ctx, "missing", models.ProductPatch{Price: ptr(1.0)})
	suite.True(apperrors.IsNotFound(err))
	suite.Empty(suite.publisher.Events())
	suite.Equal(version, suite.cache.Version())
}

func (suite *CatalogServiceTestSuite) TestGetProduct() {
	created := suite.create("Widget", 100)

	got, err := suite.service.GetProduct(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal("Widget", got.Name)

	_, err = suite.service.GetProduct(suite.ctx, "missing")
	suite.True(apperrors.IsNotFound(err))
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func TestListProductsStoreTimeoutLeavesCacheUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock_store.NewMockProductStore(ctrl)
	productCache := cache.NewProductCache(time.Minute)
	publisher := newRecordingPublisher(nil)
	service := NewCatalogService(products, productCache, publisher, store.NewestFirst)

	products.EXPECT().
		FindProducts(gomock.Any(), store.NewestFirst).
		Return(nil, context.DeadlineExceeded)

	version := productCache.Version()
	_, err := service.ListProducts(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, version, productCache.Version())
	_, warm := productCache.Get()
	assert.False(t, warm)
	assert.Empty(t, publisher.Events())
}

func TestListProductsDiscardsSnapshotInvalidatedMidRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock_store.NewMockProductStore(ctrl)
	productCache := cache.NewProductCache(time.Minute)
	service := NewCatalogService(products, productCache, newRecordingPublisher(nil), store.NewestFirst)

	stale := []models.Product{{ID: "p1", Name: "Widget", Price: 100}}
	products.EXPECT().
		FindProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, store.SortOrder) ([]models.Product, error) {
			// A write completes while this read is still waiting on the store.
			productCache.Invalidate()
			return stale, nil
		})

	list, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stale, list)

	_, warm := productCache.Get()
	assert.False(t, warm, "stale snapshot must not be cached")
}

func TestCreateProductConflictIsValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock_store.NewMockProductStore(ctrl)
	productCache := cache.NewProductCache(time.Minute)
	publisher := newRecordingPublisher(nil)
	service := NewCatalogService(products, productCache, publisher, store.NewestFirst)

	products.EXPECT().
		InsertProduct(gomock.Any(), gomock.Any()).
		Return(apperrors.Conflict("duplicate key", nil))

	version := productCache.Version()
	_, err := service.CreateProduct(context.Background(), &CreateProductRequest{Name: "Widget"})

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, version, productCache.Version())
	assert.Empty(t, publisher.Events())
}

func TestListProductsUsesConfiguredOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock_store.NewMockProductStore(ctrl)
	service := NewCatalogService(products, cache.NewProductCache(time.Minute), newRecordingPublisher(nil), store.OldestFirst)

	products.EXPECT().
		FindProducts(gomock.Any(), store.OldestFirst).
		Return(nil, nil).
		Times(1)

	list, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)

	// Second read is a cache hit.
	_, err = service.ListProducts(context.Background())
	require.NoError(t, err)
}
