package models

// Product is a single row from the marketplace products table. Every field
// is optional on the store side; missing values are represented as zero
// values (nil for Price) so downstream code never has to special-case NULLs.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Price       *float64 `json:"price,omitempty"`
	PriceType   string   `json:"price_type"`
	Condition   string   `json:"condition"`
	Visibility  string   `json:"visibility"`
	University  string   `json:"university"`
	Department  string   `json:"department"`
	Batch       string   `json:"batch"`
	ImageURL    string   `json:"image_url"`
}

// ProductDocument is the embeddable form of a Product: a flattened labeled
// text body plus the metadata stored alongside it in the vector collection.
type ProductDocument struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}
