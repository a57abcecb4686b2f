package demo

var simulatedBadResponses = map[Pattern]string{
	PatternDoItForMe: "Here's the complete code:\n\n" +
		"```python\ndef calculator():\n    return \"calculator logic here\"\n```\n\n" +
		"Hope this helps!",
	PatternVague: "That's a very broad topic. I could explain many different aspects of this.\n" +
		"What specifically do you want to know? There are multiple approaches to consider.",
	PatternNoContext: "I need more information to help you properly. Can you provide:\n" +
		"- What programming language are you using?\n" +
		"- What have you tried so far?\n" +
		"- What error are you seeing?\n" +
		"- What is your current level of understanding?",
	PatternGeneric: "Sure, here's a basic explanation:\n\n" +
		"[Long generic explanation that doesn't check understanding or encourage practice]\n\n" +
		"Let me know if you have questions!",
}

func simulatedBad(p Pattern) string {
	if s, ok := simulatedBadResponses[p]; ok {
		return s
	}
	return simulatedBadResponses[PatternGeneric]
}

const simulatedGood = `Great question! Let me break this down step by step:

Concept: [Clear explanation of the core concept]

Example: Here's a simple example to illustrate:
` + "```python\n# Example with comments explaining each part\n```" + `

Now it's your turn: Try implementing a similar solution for [related problem].

Check your understanding:
1. What happens if [edge case]?
2. How would you modify this for [variation]?

Share your attempt and I'll provide feedback!`

var explanations = map[Pattern]string{
	PatternDoItForMe: `Why the improved version works better:

  - Asks for explanation first: builds understanding before seeing code
  - Requests verification: includes practice to check learning
  - Encourages practice: "Let me try implementing X myself"
  - Invites feedback: creates opportunity for iterative learning

The original prompt produces code you can copy-paste but don't understand.
The improved version creates a learning experience with explanation, practice and feedback.`,

	PatternVague: `Why the improved version works better:

  - Specific context: states what you're working on and your level
  - Clear goal: defines what you want to learn
  - Actionable request: AI knows exactly what to provide
  - Practice included: sets up immediate application

The original is too broad and gets a vague response.
The improved version gets targeted, actionable help.`,

	PatternNoContext: `Why the improved version works better:

  - Provides context: language, framework, current situation
  - Shows effort: "I've tried X but got Y"
  - Specific question: clear about what's confusing
  - Learning goal: asks for explanation, not just answers

The original gets interrogated with more questions.
The improved version gets immediate, relevant help.`,
}

const defaultExplanation = `Why the improved version works better:

  - More specific and focused
  - Includes learning goals
  - Encourages practice and verification
  - Creates opportunity for feedback

Better prompts lead to better learning experiences.`

func explanation(p Pattern) string {
	if s, ok := explanations[p]; ok {
		return s
	}
	return defaultExplanation
}
