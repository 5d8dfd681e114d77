package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSON(t *testing.T) {
	item := Item{ID: "p1", Name: "Toolkit", Price: decimal.RequireFromString("79"), Category: "software", Quantity: 3}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Toolkit","price":"79.00","category":"software","image":"","quantity":3,"line_total":"237.00"}`, string(data))

	var back Item
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Price.Equal(item.Price))
	assert.Equal(t, 3, back.Quantity)
}

func TestProductJSON(t *testing.T) {
	data, err := json.Marshal(Product{ID: "p2", Name: "Kit", Price: decimal.RequireFromString("34.5")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"34.50"`)
}
