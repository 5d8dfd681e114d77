package models

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// FieldEditRequest edits one draft field of the active checkout form.
type FieldEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type PaymentTypeRequest struct {
	Type string `json:"type" binding:"required"`
}
