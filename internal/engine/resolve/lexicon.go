// internal/engine/resolve/lexicon.go
package resolve

import (
	"strings"
	"unicode"
)

const (
	greetingMessage = "¡Hola! Soy el asistente de presupuestos de montaje. " +
		"Dime qué mueble necesitas montar (por ejemplo: \"un armario de 4 puertas correderas\") " +
		"y te doy un precio al momento."

	unrecognizedMessage = "No he reconocido ningún mueble en tu mensaje. " +
		"¿Puedes decirme qué necesitas montar? Por ejemplo: \"una cama de 150\" o \"dos sillas y una mesa\"."
)

// greetingWords are tokens that mark a message as conversational small talk.
// The lexicon only applies when no furniture was extracted, so an over-broad
// entry cannot swallow a real request.
var greetingWords = map[string]struct{}{
	"hola": {}, "buenas": {}, "buenos": {}, "dias": {}, "tardes": {},
	"noches": {}, "saludos": {}, "gracias": {}, "hey": {}, "ey": {},
	"hello": {}, "hi": {}, "good": {}, "morning": {}, "afternoon": {},
	"evening": {}, "thanks": {}, "thank": {},
}

// isGreeting reports whether the text is only small talk. Empty input counts
// as a greeting so the caller still has a defined reply.
func isGreeting(text string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(tokens) == 0 {
		return true
	}
	hits := 0
	for _, tok := range tokens {
		if _, ok := greetingWords[foldToken(tok)]; ok {
			hits++
		}
	}
	// Majority of tokens conversational, and nothing was extracted: greeting.
	return hits*2 >= len(tokens)
}

func foldToken(tok string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'á':
			return 'a'
		case 'é':
			return 'e'
		case 'í':
			return 'i'
		case 'ó':
			return 'o'
		case 'ú':
			return 'u'
		}
		return r
	}, tok)
}

// attributeLabel renders a missing attribute as the human question fragment
// used in clarification messages.
func attributeLabel(field string) string {
	switch field {
	case "door_mechanism":
		return "el tipo de puertas (correderas o abatibles)"
	case "door_count":
		return "el número de puertas"
	case "frame_width":
		return "el ancho de la cama (90, 105, 135, 150, 180 o 200 cm)"
	default:
		return strings.ReplaceAll(field, "_", " ")
	}
}
