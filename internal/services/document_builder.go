package services

import (
	"fmt"
	"strconv"
	"strings"

	"price-advisor/internal/models"
)

// BuildProductDocument flattens one product into an embeddable text body
// plus the metadata record stored next to it in the vector collection.
// It is pure and never fails: missing text fields render as empty strings
// and a missing price renders as 0.
func BuildProductDocument(p models.Product) models.ProductDocument {
	price := 0.0
	if p.Price != nil {
		price = *p.Price
	}

	var b strings.Builder
	writeLine := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	writeLine("Product Title", p.Title)
	writeLine("Description", p.Description)
	writeLine("Category", p.Category)
	writeLine("Type", p.Type)
	writeLine("Price", strconv.FormatFloat(price, 'f', -1, 64))
	writeLine("Price Type", p.PriceType)
	writeLine("Condition", p.Condition)
	writeLine("Visibility", p.Visibility)
	writeLine("University", p.University)
	writeLine("Department", p.Department)
	writeLine("Batch", p.Batch)
	fmt.Fprintf(&b, "Image URL: %s", p.ImageURL)

	return models.ProductDocument{
		ID:   p.ID,
		Text: b.String(),
		Metadata: map[string]interface{}{
			"id":         p.ID,
			"title":      p.Title,
			"category":   p.Category,
			"type":       p.Type,
			"price":      price,
			"university": p.University,
		},
	}
}
