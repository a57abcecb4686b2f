// Package demo shows what a bad prompt gets back next to what an improved
// prompt gets back.
package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/promptcoach/internal/assistant"
	"github.com/abhisek/promptcoach/internal/llm"
)

// Pattern is the main anti-pattern found in a prompt.
type Pattern string

const (
	PatternDoItForMe Pattern = "do_it_for_me"
	PatternVague     Pattern = "vague"
	PatternNoContext Pattern = "no_context"
	PatternGeneric   Pattern = "generic"
)

// Result is one side-by-side demonstration.
type Result struct {
	OriginalPrompt string  `json:"original_prompt"`
	ImprovedPrompt string  `json:"improved_prompt"`
	Pattern        Pattern `json:"pattern"`
	BadResponse    string  `json:"bad_response"`
	GoodResponse   string  `json:"good_response"`
	Explanation    string  `json:"explanation"`
	Simulated      bool    `json:"is_simulated"`
}

// Chatter is the AI collaborator the demonstrator asks for real replies.
type Chatter interface {
	Chat(ctx context.Context, req assistant.ChatRequest) (string, error)
}

const (
	badSystemPrompt = `You are an AI assistant that gives minimal, unhelpful responses.
Your goal is to demonstrate BAD AI behavior:
- Give direct answers without explanation
- Don't check understanding
- Don't encourage practice
- Be brief and generic
- Just provide what's asked, nothing more`

	goodSystemPrompt = `You are an excellent AI learning coach. Your goal is to:
- Explain concepts clearly with examples
- Check understanding with questions
- Encourage hands-on practice
- Provide feedback opportunities
- Be engaging and supportive
Focus on teaching, not just answering.`
)

// Demonstrator produces demonstrations, live when a Chatter is set.
type Demonstrator struct {
	chat Chatter
}

// New creates a demonstrator. A nil chat always simulates.
func New(chat Chatter) *Demonstrator {
	return &Demonstrator{chat: chat}
}

// Demonstrate compares the original prompt with improved, generating the
// improvement from a template when improved is empty. Collaborator errors
// fall back to simulated replies.
func (d *Demonstrator) Demonstrate(ctx context.Context, original, improved string) Result {
	pattern := DetectPattern(original)
	if strings.TrimSpace(improved) == "" {
		improved = ImprovePrompt(original, pattern)
	}

	res := Result{
		OriginalPrompt: original,
		ImprovedPrompt: improved,
		Pattern:        pattern,
		Explanation:    explanation(pattern),
	}

	if d.chat != nil {
		bad, good, err := d.live(ctx, original, improved)
		if err == nil {
			res.BadResponse, res.GoodResponse = bad, good
			return res
		}
	}

	res.BadResponse = simulatedBad(pattern)
	res.GoodResponse = simulatedGood
	res.Simulated = true
	return res
}

func (d *Demonstrator) live(ctx context.Context, original, improved string) (string, string, error) {
	bad, err := d.chat.Chat(ctx, assistant.ChatRequest{
		Purpose:     llm.PurposeDemoBad,
		System:      badSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: original}},
		MaxTokens:   200,
		Temperature: assistant.Temperature(0.3),
	})
	if err != nil {
		return "", "", fmt.Errorf("bad response: %w", err)
	}
	good, err := d.chat.Chat(ctx, assistant.ChatRequest{
		Purpose:     llm.PurposeDemoGood,
		System:      goodSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: improved}},
		MaxTokens:   400,
		Temperature: assistant.Temperature(0.7),
	})
	if err != nil {
		return "", "", fmt.Errorf("good response: %w", err)
	}
	return bad, good, nil
}

var (
	doItKeywords    = []string{"write", "create", "make", "build", "generate", "give me"}
	codeKeywords    = []string{"code", "function", "class", "program", "error", "bug"}
	contextKeywords = []string{"python", "javascript", "java", "language", "using", "with"}
)

// DetectPattern returns the first anti-pattern that applies: a request to
// produce work without asking how, fewer than eight words, a code question
// without context, or generic.
func DetectPattern(prompt string) Pattern {
	lower := strings.ToLower(strings.TrimSpace(prompt))

	if containsAny(lower, doItKeywords) &&
		!strings.Contains(lower, "explain") && !strings.Contains(lower, "how") {
		return PatternDoItForMe
	}
	if len(strings.Fields(lower)) < 8 {
		return PatternVague
	}
	if containsAny(lower, codeKeywords) && !containsAny(lower, contextKeywords) {
		return PatternNoContext
	}
	return PatternGeneric
}

// ImprovePrompt rewrites original with the template for pattern.
func ImprovePrompt(original string, pattern Pattern) string {
	switch pattern {
	case PatternDoItForMe:
		return "I'm learning about [topic from original prompt]. Could you:\n" +
			"1. Explain the core concept and when to use it\n" +
			"2. Show me a simple example with comments\n" +
			"3. Give me a similar exercise to try myself\n" +
			"4. Review my attempt and suggest improvements\n\n" +
			"Original task: " + original
	case PatternVague:
		return "I'm working on [specific project/task]. I'm at [beginner/intermediate] level.\n\n" +
			"Specifically, I want to understand: " + original + "\n\n" +
			"Could you explain the key concepts, show an example, then let me try a practice problem?"
	case PatternNoContext:
		return "I'm working with [Python/JavaScript/etc] on [specific project].\n\n" +
			"Context: [What I've tried so far]\n\n" +
			"Question: " + original + "\n\n" +
			"I want to understand why [specific thing] happens so I can apply it correctly."
	case PatternGeneric:
		return "I'm learning " + original + ". Could you:\n" +
			"1. Explain the core concept\n" +
			"2. Show a practical example\n" +
			"3. Give me an exercise to practice\n" +
			"4. Check my understanding with a quick question"
	}
	return original
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
