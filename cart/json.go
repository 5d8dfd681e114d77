package cart

import "encoding/json"

// MarshalJSON renders the price with exactly two decimals.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price string `json:"price"`
	}{plain(p), p.Price.StringFixed(2)})
}

// MarshalJSON renders money with exactly two decimals and adds the line total.
// Decoding reads the price back and ignores line_total.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Price     string `json:"price"`
		LineTotal string `json:"line_total"`
	}{plain(i), i.Price.StringFixed(2), i.LineTotal().StringFixed(2)})
}
