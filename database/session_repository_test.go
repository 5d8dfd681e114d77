package database

import (
	"context"
	"testing"
	"time"

	"storefront-service/cart"
	"storefront-service/checkout"
	"storefront-service/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(id string) *models.SessionState {
	addr := checkout.ShippingAddress{
		FullName:     "Ada Lovelace",
		AddressLine1: "12 Analytical Row",
		City:         "London",
		State:        "LDN",
		PostalCode:   "N1 9GU",
		Country:      "United Kingdom",
		Phone:        "+441234567890",
	}
	return &models.SessionState{
		ID: id,
		Cart: cart.Snapshot{
			Items: []cart.Item{{
				ID:       "prod-smart-hub",
				Name:     "Smart Hub",
				Price:    decimal.RequireFromString("129.00"),
				Category: "hardware",
				Quantity: 2,
			}},
			IsCheckoutOpen: true,
		},
		Checkout: checkout.Snapshot{
			Step:         checkout.StepPayment,
			Shipping:     &addr,
			ShippingForm: checkout.ShippingForm{Values: addr},
			PaymentForm:  checkout.PaymentForm{Values: checkout.PaymentDetails{Type: checkout.PaymentPayPal}},
		},
	}
}

func assertSameState(t *testing.T, want, got *models.SessionState) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	require.Len(t, got.Cart.Items, 1)
	assert.True(t, want.Cart.Items[0].Price.Equal(got.Cart.Items[0].Price))
	assert.Equal(t, want.Cart.Items[0].Quantity, got.Cart.Items[0].Quantity)
	assert.True(t, got.Cart.IsCheckoutOpen)
	assert.Equal(t, checkout.StepPayment, got.Checkout.Step)
	require.NotNil(t, got.Checkout.Shipping)
	assert.Equal(t, *want.Checkout.Shipping, *got.Checkout.Shipping)
	assert.Equal(t, checkout.PaymentPayPal, got.Checkout.PaymentForm.Values.Type)
}

func newRedisRepo(t *testing.T, ttl time.Duration) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionRepository(client, ttl), mr
}

func TestRedisSessionRepository_SaveAndGet(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	ctx := context.Background()
	state := sampleState("s-1")

	require.NoError(t, repo.SaveSession(ctx, state))
	assert.False(t, state.UpdatedAt.IsZero())
	assert.True(t, mr.Exists("storefront:session:s-1"))
	assert.Equal(t, time.Hour, mr.TTL("storefront:session:s-1"))

	got, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assertSameState(t, state, got)
}

func TestRedisSessionRepository_Expiry(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, repo.SaveSession(ctx, sampleState("s-2")))

	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSession(ctx, "s-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionRepository_DeleteAndMissing(t *testing.T) {
	repo, _ := newRedisRepo(t, time.Hour)
	ctx := context.Background()

	_, err := repo.GetSession(ctx, "nobody")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.SaveSession(ctx, sampleState("s-3")))
	require.NoError(t, repo.DeleteSession(ctx, "s-3"))
	_, err = repo.GetSession(ctx, "s-3")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionRepository_CorruptValue(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	require.NoError(t, mr.Set("storefront:session:bad", "{not json"))

	_, err := repo.GetSession(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrSessionCorrupt)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionRepository_Unavailable(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	mr.Close()

	_, err := repo.GetSession(context.Background(), "s-4")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
	assert.NotErrorIs(t, err, ErrSessionCorrupt)
}

func TestMemorySessionRepository(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := NewMemorySessionRepository(time.Hour)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	state := sampleState("m-1")
	require.NoError(t, repo.SaveSession(ctx, state))

	got, err := repo.GetSession(ctx, "m-1")
	require.NoError(t, err)
	assertSameState(t, state, got)

	// callers get a copy
	got.Cart.Items[0].Quantity = 99
	again, err := repo.GetSession(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Cart.Items[0].Quantity)

	now = now.Add(time.Hour)
	_, err = repo.GetSession(ctx, "m-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepository_Sweep(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := NewMemorySessionRepository(time.Hour)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, sampleState("old")))
	now = now.Add(30 * time.Minute)
	require.NoError(t, repo.SaveSession(ctx, sampleState("new")))
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, repo.Sweep())
	_, err := repo.GetSession(ctx, "new")
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteSession(ctx, "new"))
	_, err = repo.GetSession(ctx, "new")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
