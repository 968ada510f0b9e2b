package domain

import "time"

// MovementKind distinguishes stock decrements from increments.
type MovementKind string

const (
	MovementPurchase MovementKind = "purchase"
	MovementRestock  MovementKind = "restock"
)

// StockMovement is one audited quantity change on a sweet.
type StockMovement struct {
	ID                string       `json:"_id,omitempty"`
	SweetID           string       `json:"sweetId"`
	UserID            string       `json:"userId"`
	Kind              MovementKind `json:"kind"`
	Quantity          int          `json:"quantity"`
	ResultingQuantity int          `json:"resultingQuantity"`
	At                time.Time    `json:"at"`
}
