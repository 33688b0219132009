package services

import (
	"fmt"
	"strings"
)

// contextSeparator joins retrieved documents in the order the index ranked
// them; the blank line keeps product blocks visually distinct for the model
const contextSeparator = "\n\n"

// advisorPromptTemplate is the fixed instruction template for every
// generation call. It takes no branches: the context block is inserted
// verbatim, so callers must short-circuit before composing when retrieval
// came back empty.
const advisorPromptTemplate = `You are a helpful price advisor chatbot. Use the following product information to answer the user's question about pricing, recommendations, and product comparisons.

PRODUCT CONTEXT:
%s

USER QUESTION: %s

Instructions:
- Always use the product context above to answer the user's question.
- If you find relevant products, compare them, mention which are good, cheap, available, or better options, and explain why.
- If no relevant products are found, say so.
- Be specific and reference product names, prices, and features from the context.
- Provide clear buying advice (buy now, wait, or consider alternatives).
- Format your response using Markdown for readability. Use lists, bold, tables, and other markdown features where appropriate.
- Keep your response conversational, informative, and focused on helping the user make the best purchasing decision.`

// AssembleContext joins ranked document texts into one context block,
// preserving input order. Empty input yields the empty string, which the
// orchestrator treats as "no relevant results".
func AssembleContext(texts []string) string {
	return strings.Join(texts, contextSeparator)
}

// ComposePrompt renders the advisor template with the assembled context and
// the raw user question
func ComposePrompt(userQuery, productContext string) string {
	return fmt.Sprintf(advisorPromptTemplate, productContext, userQuery)
}
