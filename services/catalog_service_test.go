package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockImageSigner struct {
	keys []string
	err  error
}

func (m *mockImageSigner) SignImage(_ context.Context, key string) (string, error) {
	m.keys = append(m.keys, key)
	if m.err != nil {
		return "", m.err
	}
	return "https://signed.example/" + key, nil
}

func newCatalogService(t *testing.T, signer *mockImageSigner) CatalogService {
	t.Helper()
	cat, err := catalog.Load([]byte(testCatalog))
	require.NoError(t, err)
	if signer == nil {
		return NewCatalogService(cat, nil, zap.NewNop())
	}
	return NewCatalogService(cat, signer, zap.NewNop())
}

func TestCatalogService_ListProducts(t *testing.T) {
	svc := newCatalogService(t, nil)

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "products/a.png", all[0].Image)

	hw, err := svc.ListProducts(context.Background(), "Hardware")
	require.NoError(t, err)
	require.Len(t, hw, 1)
	assert.Equal(t, "prod-b", hw[0].ID)
}

func TestCatalogService_SignsObjectKeys(t *testing.T) {
	signer := &mockImageSigner{}
	svc := newCatalogService(t, signer)

	p, err := svc.GetProduct(context.Background(), "prod-a")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/products/a.png", p.Image)

	b, err := svc.GetProduct(context.Background(), "prod-b")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/b.png", b.Image, "absolute urls are left alone")
	assert.Equal(t, []string{"products/a.png"}, signer.keys)
}

func TestCatalogService_SigningFailureFallsBack(t *testing.T) {
	svc := newCatalogService(t, &mockImageSigner{err: errors.New("no credentials")})

	p, err := svc.GetProduct(context.Background(), "prod-a")
	require.NoError(t, err)
	assert.Equal(t, "products/a.png", p.Image)
}

func TestCatalogService_UnknownProduct(t *testing.T) {
	svc := newCatalogService(t, nil)
	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_Plans(t *testing.T) {
	svc := newCatalogService(t, nil)

	yearly, err := svc.Plans("yearly")
	require.NoError(t, err)
	require.Len(t, yearly, 1)
	assert.Equal(t, "$290", yearly[0].Price)
	assert.Equal(t, "Save $58", yearly[0].Discount)

	_, err = svc.Plans("weekly")
	assert.ErrorIs(t, err, ErrInvalidBilling)
}
