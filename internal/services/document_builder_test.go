package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-advisor/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildProductDocument_FullProduct(t *testing.T) {
	product := models.Product{
		ID:          "42",
		Title:       "Calculus Textbook",
		Description: "Barely used, 8th edition",
		Category:    "Books",
		Type:        "sell",
		Price:       floatPtr(19.99),
		PriceType:   "fixed",
		Condition:   "good",
		Visibility:  "public",
		University:  "State University",
		Department:  "Mathematics",
		Batch:       "2024",
		ImageURL:    "https://example.com/calc.jpg",
	}

	doc := BuildProductDocument(product)

	assert.Equal(t, "42", doc.ID)
	assert.Contains(t, doc.Text, "Product Title: Calculus Textbook")
	assert.Contains(t, doc.Text, "Description: Barely used, 8th edition")
	assert.Contains(t, doc.Text, "Category: Books")
	assert.Contains(t, doc.Text, "Price: 19.99")
	assert.Contains(t, doc.Text, "Price Type: fixed")
	assert.Contains(t, doc.Text, "Condition: good")
	assert.Contains(t, doc.Text, "University: State University")
	assert.Contains(t, doc.Text, "Department: Mathematics")
	assert.Contains(t, doc.Text, "Batch: 2024")
	assert.Contains(t, doc.Text, "Image URL: https://example.com/calc.jpg")

	require.Len(t, doc.Metadata, 6)
	assert.Equal(t, "42", doc.Metadata["id"])
	assert.Equal(t, "Calculus Textbook", doc.Metadata["title"])
	assert.Equal(t, "Books", doc.Metadata["category"])
	assert.Equal(t, "sell", doc.Metadata["type"])
	assert.Equal(t, 19.99, doc.Metadata["price"])
	assert.Equal(t, "State University", doc.Metadata["university"])
}

func TestBuildProductDocument_EmptyProduct(t *testing.T) {
	doc := BuildProductDocument(models.Product{})

	// Every label is present with an empty value; the price degrades to 0
	for _, label := range []string{
		"Product Title", "Description", "Category", "Type", "Price",
		"Price Type", "Condition", "Visibility", "University",
		"Department", "Batch", "Image URL",
	} {
		assert.Contains(t, doc.Text, label+":", "missing label %q", label)
	}
	assert.Contains(t, doc.Text, "Price: 0\n")

	require.Len(t, doc.Metadata, 6)
	assert.Equal(t, 0.0, doc.Metadata["price"])
	assert.Equal(t, "", doc.Metadata["title"])
}

func TestBuildProductDocument_MissingSingleField(t *testing.T) {
	base := models.Product{
		ID:         "1",
		Title:      "Lamp",
		Category:   "Furniture",
		Price:      floatPtr(5),
		University: "Tech",
	}

	// Dropping any one field still builds a complete document
	noPrice := base
	noPrice.Price = nil
	doc := BuildProductDocument(noPrice)
	assert.Contains(t, doc.Text, "Price: 0\n")
	assert.Equal(t, 0.0, doc.Metadata["price"])

	noTitle := base
	noTitle.Title = ""
	doc = BuildProductDocument(noTitle)
	assert.Contains(t, doc.Text, "Product Title: \n")
	assert.Equal(t, "", doc.Metadata["title"])
}

func TestBuildProductDocument_Deterministic(t *testing.T) {
	product := models.Product{ID: "7", Title: "Bike", Price: floatPtr(80)}

	first := BuildProductDocument(product)
	second := BuildProductDocument(product)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestBuildProductDocument_LineCount(t *testing.T) {
	doc := BuildProductDocument(models.Product{ID: "1"})
	assert.Len(t, strings.Split(doc.Text, "\n"), 12)
}
