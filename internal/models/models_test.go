package models

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPatchMergesOnlySuppliedFields(t *testing.T) {
	product := Product{ID: "p1", Name: "Widget", Category: "tools", Price: 100, InStock: true}
	price := 50.0

	patch := ProductPatch{Price: &price}
	patch.Apply(&product)

	assert.Equal(t, 50.0, product.Price)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "tools", product.Category)
	assert.True(t, product.InStock)
	assert.Equal(t, map[string]interface{}{"price": 50.0}, patch.Columns())
}

func TestProductPatchCanClearBooleans(t *testing.T) {
	product := Product{InStock: true}
	inStock := false

	ProductPatch{InStock: &inStock}.Apply(&product)

	assert.False(t, product.InStock)
}

func TestEmptyPatches(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.True(t, OrderPatch{}.IsEmpty())
	assert.True(t, TrackingPatch{}.IsEmpty())
}

func TestProductCloneDoesNotShareImages(t *testing.T) {
	original := Product{Images: pq.StringArray{"a.png"}}
	clone := original.Clone()
	clone.Images[0] = "b.png"

	assert.Equal(t, "a.png", original.Images[0])
}

func TestOrderItemsRoundTripThroughJSONColumn(t *testing.T) {
	items := OrderItems{{ProductID: "p1", Name: "Widget", Price: 10, Quantity: 2}}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned OrderItems
	require.NoError(t, scanned.Scan([]byte(value.(string))))
	assert.Equal(t, items, scanned)

	var fromString OrderItems
	require.NoError(t, fromString.Scan(value))
	assert.Equal(t, items, fromString)
}

func TestOrderPatchScreenshotIsCopied(t *testing.T) {
	shot := &PaymentScreenshot{Data: "data:image/png;base64,AAAA", FileName: "a.png", UploadedAt: time.Now()}
	order := Order{Status: OrderStatusPending}

	OrderPatch{PaymentScreenshot: shot}.Apply(&order)
	shot.FileName = "changed.png"

	require.NotNil(t, order.PaymentScreenshot)
	assert.Equal(t, "a.png", order.PaymentScreenshot.FileName)
}
