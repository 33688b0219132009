package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleContext_PreservesOrder(t *testing.T) {
	texts := []string{"first product", "second product", "third product"}

	assert.Equal(t, "first product\n\nsecond product\n\nthird product", AssembleContext(texts))
}

func TestAssembleContext_Empty(t *testing.T) {
	assert.Equal(t, "", AssembleContext(nil))
	assert.Equal(t, "", AssembleContext([]string{}))
}

func TestAssembleContext_Single(t *testing.T) {
	assert.Equal(t, "only one", AssembleContext([]string{"only one"}))
}

// Joining is stable under splitting: assemble([a,b,c]) equals
// assemble([a]) + separator + assemble([b,c])
func TestAssembleContext_SplitStable(t *testing.T) {
	a, b, c := "alpha", "beta", "gamma"

	whole := AssembleContext([]string{a, b, c})
	split := AssembleContext([]string{a}) + "\n\n" + AssembleContext([]string{b, c})

	assert.Equal(t, whole, split)
}

func TestComposePrompt_EmbedsContextAndQuestion(t *testing.T) {
	prompt := ComposePrompt("is this bike cheap?", "Product Title: Bike\nPrice: 80")

	assert.Contains(t, prompt, "USER QUESTION: is this bike cheap?")
	assert.Contains(t, prompt, "Product Title: Bike\nPrice: 80")
	assert.Contains(t, prompt, "price advisor chatbot")
	assert.Contains(t, prompt, "buying advice")
}

func TestComposePrompt_EmptyContextInsertedVerbatim(t *testing.T) {
	// The template takes no branches; short-circuiting on empty context is
	// the orchestrator's job
	prompt := ComposePrompt("anything", "")

	assert.Contains(t, prompt, "PRODUCT CONTEXT:\n\n")
	assert.Contains(t, prompt, "USER QUESTION: anything")
}
