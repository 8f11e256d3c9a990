// internal/engine/extract/prompt.go
package extract

import (
	"fmt"
	"strings"

	"quote-engine/internal/catalog"
)

// buildPrompt renders the extraction instructions for one request. The class
// list and the per-class required attributes come from the catalog, so the
// prompt always matches what the pricing rules can actually consume.
func buildPrompt(cat *catalog.Catalog, text string) string {
	var b strings.Builder

	b.WriteString("You are an extraction service for a furniture assembly company. ")
	b.WriteString("The customer writes in Spanish or English. ")
	b.WriteString("Identify every piece of furniture mentioned, its quantity and its attributes.\n\n")

	b.WriteString("Valid furniture classes:\n")
	for _, e := range cat.Entries() {
		b.WriteString("- ")
		b.WriteString(e.ClassID)
		if req := e.RequiredAttributes(); len(req) > 0 {
			fmt.Fprintf(&b, " (attributes: %s)", strings.Join(req, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nAttribute values:\n")
	b.WriteString("- door_mechanism: \"sliding\" or \"hinged\"\n")
	b.WriteString("- door_count: number of doors as a string, e.g. \"4\"\n")
	b.WriteString("- mirror: \"yes\" if mirrored doors are mentioned\n")
	b.WriteString("- frame_width: bed width in cm as a string, one of \"90\", \"105\", \"135\", \"150\", \"180\", \"200\"\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Reply with JSON only, no markdown, matching exactly: ")
	b.WriteString(`{"greeting": <bool>, "items": [{"class": "...", "quantity": <int>, "attributes": {...}}]}` + "\n")
	b.WriteString("- If the message is only a greeting or small talk with no furniture, set greeting to true and items to [].\n")
	b.WriteString("- Never guess an attribute the customer did not state. Omit it or use the value \"unknown\".\n")
	b.WriteString("- Quantity defaults to 1 when not stated.\n")
	b.WriteString("- Only use the classes listed above. Ignore objects that are not furniture assembly work.\n\n")

	b.WriteString("Customer message:\n")
	b.WriteString(text)

	return b.String()
}
