package domain

// Product mirrors the catalog documents. ID is the catalog's own numeric
// identifier, not the storage key.
type Product struct {
	ID          int64          `json:"id" bson:"id"`
	Name        string         `json:"productName" bson:"productName"`
	Image       string         `json:"image" bson:"image"`
	Description string         `json:"description" bson:"description"`
	Price       float64        `json:"price" bson:"price"`
	Specs       map[string]any `json:"specs" bson:"specs"`
}
