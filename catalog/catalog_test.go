package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.Products("")
	require.NotEmpty(t, all)

	p, ok := c.Product(all[0].ID)
	require.True(t, ok)
	assert.Equal(t, all[0], p)

	_, ok = c.Product("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"hardware", "services", "software"}, c.Categories())
	for _, p := range c.Products("HARDWARE") {
		assert.Equal(t, "hardware", p.Category)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "products: [",
		"missing id":   "products:\n  - name: x\n    price: \"1.00\"\n",
		"duplicate id": "products:\n  - id: a\n    price: \"1.00\"\n  - id: a\n    price: \"2.00\"\n",
		"bad price":    "products:\n  - id: a\n    price: abc\n",
		"zero price":   "products:\n  - id: a\n    price: \"0\"\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestPlans(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	monthly := c.Plans(BillingMonthly)
	require.Len(t, monthly, 3)
	assert.Equal(t, "Basic", monthly[0].Name)
	assert.Equal(t, "$29", monthly[0].Price)
	assert.Equal(t, "per month", monthly[0].Period)
	assert.Empty(t, monthly[0].Discount)
	assert.True(t, monthly[1].Popular)

	yearly := c.Plans(BillingYearly)
	assert.Equal(t, "$290", yearly[0].Price)
	assert.Equal(t, "per year", yearly[0].Period)
	assert.Equal(t, "Save $58", yearly[0].Discount)
	assert.Equal(t, "Save $198", yearly[1].Discount)
	assert.Equal(t, "Save $498", yearly[2].Discount)

	assert.True(t, c.HasPlan("pro"))
	assert.False(t, c.HasPlan("Ultimate"))
}

func TestParseBilling(t *testing.T) {
	b, err := ParseBilling("")
	require.NoError(t, err)
	assert.Equal(t, BillingMonthly, b)

	b, err = ParseBilling("Yearly")
	require.NoError(t, err)
	assert.Equal(t, BillingYearly, b)

	_, err = ParseBilling("weekly")
	assert.Error(t, err)
}
