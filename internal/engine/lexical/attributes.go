// internal/engine/lexical/attributes.go
package lexical

import (
	"regexp"
	"strconv"

	"quote-engine/internal/catalog"
)

// Attribute detection is class-specific pattern matching over the whole
// normalized input, not just the matched token span: "armario de 4 puertas
// correderas" mentions the mechanism far from the keyword.

var (
	reSliding = regexp.MustCompile(`\bcorrederas?\b|\bcorredizas?\b|\bsliding\b`)
	reHinged  = regexp.MustCompile(`\babatibles?\b|\bbatientes?\b|\bhinged\b`)
	reMirror  = regexp.MustCompile(`\bespejos?\b|\bmirrors?\b`)

	reDoorCount = regexp.MustCompile(`\b(\d+|un|una|uno|dos|tres|cuatro|cinco|seis|siete|ocho|nueve|diez|one|two|three|four|five|six|seven|eight|nine|ten)\s+puertas?\b|\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten)[\s-]+doors?\b`)

	reBedWidth = regexp.MustCompile(`\b(90|105|135|150|180|200)\b`)

	bedSizeWords = []struct {
		re    *regexp.Regexp
		width string
	}{
		{regexp.MustCompile(`\bindividual\b|\btwin\b`), "90"},
		{regexp.MustCompile(`\bmatrimonio\b|\bdoble\b|\bdouble\b|\bfull\b`), "135"},
		{regexp.MustCompile(`\bqueen\b`), "150"},
		{regexp.MustCompile(`\bking\b`), "180"},
	}
)

// detectAttributes fills the attribute map for one class from the full
// normalized text. Attributes never detected stay absent; the caller turns
// absent-but-required into missing_attributes. Nothing here guesses: an
// unstated mechanism or width is simply not set.
func detectAttributes(classID, normText string) map[string]string {
	switch classID {
	case "armario":
		return detectWardrobeAttributes(normText)
	case "cama":
		return detectBedAttributes(normText)
	default:
		return nil
	}
}

func detectWardrobeAttributes(normText string) map[string]string {
	attrs := make(map[string]string)

	if reSliding.MatchString(normText) {
		attrs[catalog.AttrDoorMechanism] = "sliding"
	} else if reHinged.MatchString(normText) {
		attrs[catalog.AttrDoorMechanism] = "hinged"
	}

	if m := reDoorCount.FindStringSubmatch(normText); m != nil {
		token := m[1]
		if token == "" {
			token = m[2]
		}
		if n, ok := parseCount(token); ok {
			attrs[catalog.AttrDoorCount] = strconv.Itoa(n)
		}
	}

	if reMirror.MatchString(normText) {
		attrs[catalog.AttrMirror] = "yes"
	}

	return attrs
}

func detectBedAttributes(normText string) map[string]string {
	attrs := make(map[string]string)

	if m := reBedWidth.FindString(normText); m != "" {
		attrs[catalog.AttrFrameWidth] = m
		return attrs
	}
	for _, sw := range bedSizeWords {
		if sw.re.MatchString(normText) {
			attrs[catalog.AttrFrameWidth] = sw.width
			return attrs
		}
	}
	return attrs
}
