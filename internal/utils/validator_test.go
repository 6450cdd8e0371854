package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screenshotInput struct {
	Data  string  `json:"data" validate:"required,image_data_uri"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestIsImageDataURI(t *testing.T) {
	assert.True(t, IsImageDataURI("data:image/png;base64,iVBORw0KGgo="))
	assert.True(t, IsImageDataURI("data:image/svg+xml;base64,PHN2Zz4="))
	assert.False(t, IsImageDataURI("data:application/pdf;base64,JVBERi0="))
	assert.False(t, IsImageDataURI("iVBORw0KGgo="))
	assert.False(t, IsImageDataURI("data:image/png,raw"))
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&screenshotInput{Data: "not an image", Price: -1})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "data", errs[0].Field)
	assert.Equal(t, "image_data_uri", errs[0].Tag)
	assert.Equal(t, "price", errs[1].Field)
	assert.Equal(t, "gte", errs[1].Tag)
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
}

func TestMaxBytesCountsEncodedLength(t *testing.T) {
	type secret struct {
		Password string `json:"password" validate:"required,maxbytes=72"`
	}

	assert.NoError(t, ValidateStruct(secret{Password: strings.Repeat("a", 72)}))
	assert.NoError(t, ValidateStruct(secret{Password: strings.Repeat("é", 36)}))

	err := ValidateStruct(secret{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	details := GetValidationErrors(err)
	require.Len(t, details, 1)
	assert.Equal(t, "password", details[0].Field)
	assert.Equal(t, "maxbytes", details[0].Tag)
	assert.Equal(t, "password must be at most 72 bytes", details[0].Message)
}
