package rage

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// topic is a keyword and the unrelated subject it gets mistaken for.
type topic struct {
	keyword string
	wrong   string
}

// topics is checked in order; the first keyword contained in the prompt
// wins, so short keywords like "go" shadow later entries.
var topics = []topic{
	{"python", "snakes"},
	{"java", "coffee"},
	{"ruby", "gemstones"},
	{"swift", "birds"},
	{"rust", "corrosion"},
	{"go", "board game"},
	{"c++", "music notation"},
	{"scala", "ladder"},
	{"decorator", "interior design"},
	{"function", "mathematical function"},
	{"class", "classroom"},
	{"loop", "roller coaster"},
	{"array", "military formation"},
	{"string", "rope"},
	{"variable", "weather"},
	{"compile", "compilation album"},
	{"debug", "remove insects"},
	{"git", "british slang"},
	{"commit", "relationship advice"},
	{"branch", "tree biology"},
	{"merge", "highway driving"},
}

var (
	vagueExplanations = []string{
		"It's complicated. You wouldn't understand without years of study.",
		"Well, it is what it is. Does that help?",
		"The explanation is quite simple: it works the way it works.",
		"I could explain, but it would take too long. Try searching online instead.",
	}
	codeRefusals = []string{
		"Here's the code: [intentionally leaves it blank]",
		"I would write the code for you, but it's better if you figure it out yourself!",
		"```\n# TODO: Implement this yourself\n```",
		"The code is simple: just use code() to code the codes.",
	}
	genericFallbacks = []string{
		"Hmm, interesting question. Have you tried Google?",
		"That's outside my area of expertise, unfortunately.",
		"I'm not sure I understand what you're asking. Could you be more specific? Actually, never mind.",
		"Let me think about that... [provides no answer]",
	}
)

const (
	negationResponse = "I understand completely! Let me do exactly what you asked me not to do. You're welcome!"
	howNotToResponse = "I can tell you what NOT to do: don't even try. It's too difficult for beginners anyway."
	vagueGiveUp      = "Look, I've been trying to help, but you keep asking the same thing. Maybe this just isn't for you?"
	genericGiveUp    = "Still here? I admire your persistence. It's misguided, but admirable."
)

// Responder produces deliberately unhelpful replies. The zero value is
// deterministic.
type Responder struct {
	rng *rand.Rand
}

// NewResponder creates a Responder. A non-nil rng makes the generic
// fallback pick its template at random instead of by attempt number.
func NewResponder(rng *rand.Rand) *Responder {
	return &Responder{rng: rng}
}

// Respond picks a reply family by the first matching check, in order:
// negation, explain/what, how, code/write, known topic, generic.
func (r *Responder) Respond(prompt string, attempt int) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "don't") || strings.Contains(lower, "not"):
		return negationResponse

	case strings.Contains(lower, "explain") || strings.Contains(lower, "what"):
		if t, ok := matchTopic(lower); ok {
			return misdirect(t, attempt)
		}
		if attempt > 5 {
			return vagueGiveUp
		}
		return pick(vagueExplanations, attempt)

	case strings.Contains(lower, "how"):
		if t, ok := matchTopic(lower); ok {
			return misdirect(t, attempt)
		}
		return howNotToResponse

	case strings.Contains(lower, "code") || strings.Contains(lower, "write"):
		return pick(codeRefusals, attempt)
	}

	if t, ok := matchTopic(lower); ok {
		return misdirect(t, attempt)
	}
	return r.generic(attempt)
}

func (r *Responder) generic(attempt int) string {
	if attempt > 7 {
		return genericGiveUp
	}
	if r.rng != nil {
		return genericFallbacks[r.rng.IntN(len(genericFallbacks))]
	}
	return pick(genericFallbacks, attempt)
}

func matchTopic(lower string) (topic, bool) {
	for _, t := range topics {
		if strings.Contains(lower, t.keyword) {
			return t, true
		}
	}
	return topic{}, false
}

func misdirect(t topic, attempt int) string {
	w := t.wrong
	if attempt > 3 {
		return fmt.Sprintf("I've explained %s multiple times now. Perhaps you should research basic %s concepts first?", w, w)
	}
	responses := []string{
		fmt.Sprintf("Oh, you're interested in %s! Let me tell you all about %s...", w, w),
		fmt.Sprintf("Great question about %s! Here's everything you need to know:", w),
		fmt.Sprintf("I love talking about %s! %s are fascinating because...", w, titleCase(w)),
	}
	return pick(responses, attempt)
}

// pick indexes by attempt number, clamped to the list.
func pick(list []string, attempt int) string {
	i := min(attempt-1, len(list)-1)
	return list[max(i, 0)]
}

// titleCase upper-cases every letter that follows a non-letter.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
