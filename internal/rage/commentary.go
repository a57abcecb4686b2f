package rage

// Commentary returns the closing remarks for a score, chosen by attempt
// bracket.
func Commentary(score FrustrationScore) string {
	switch n := score.TotalAttempts; {
	case n < 3:
		return "You gave up almost immediately. Perhaps you understood something " +
			"that others take hours to learn: this was designed to frustrate you. " +
			"Or perhaps you're just impatient."
	case n < 10:
		return "You tried. Not hard, but you tried. There's something almost " +
			"admirable about recognizing futility early. Or is it cowardice? " +
			"Philosophy is ambiguous like that."
	case n < 20:
		return "Ten attempts. Twenty. You kept going. Each time thinking 'surely this time " +
			"it will understand.' But it never did. It was never going to. " +
			"Yet you persisted. Beautiful, in a tragic sort of way."
	case n < 40:
		return "At what point does persistence become stubbornness? At what point does " +
			"stubbornness become obsession? You've crossed that line several times now. " +
			"The AI doesn't care. It never did. But you... you cared enough to suffer."
	default:
		return "You are either remarkably patient or remarkably foolish. Perhaps both. " +
			"You've spent significant time teaching an AI to disappoint you. " +
			"There's a lesson here about expectations and reality. " +
			"You've learned it the hard way. Congratulations, I suppose."
	}
}

// Achievement names.
const (
	AchievementLegendary       = "Legendary Sufferer"
	AchievementCapsVirtuoso    = "Caps Lock Virtuoso"
	AchievementWordsmith       = "Wordsmith of Wrath"
	AchievementEternalOptimist = "Eternal Optimist"
)

// achievementRule awards a title when its predicate holds.
type achievementRule struct {
	name string
	met  func(score FrustrationScore) bool
}

var achievementRules = []achievementRule{
	{AchievementLegendary, FrustrationScore.Legendary},
	{AchievementCapsVirtuoso, func(s FrustrationScore) bool {
		return s.CapsEscalation >= 5
	}},
	{AchievementWordsmith, func(s FrustrationScore) bool {
		return s.ProfanityCreativity >= 5
	}},
	// Ten or more attempts without a single curse or shout.
	{AchievementEternalOptimist, func(s FrustrationScore) bool {
		return s.TotalAttempts >= 10 && s.ProfanityCreativity == 0 && s.CapsEscalation == 0
	}},
}

// Achievement returns the first achievement earned, or "".
func Achievement(score FrustrationScore) string {
	for _, r := range achievementRules {
		if r.met(score) {
			return r.name
		}
	}
	return ""
}
