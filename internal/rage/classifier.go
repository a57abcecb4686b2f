package rage

// Classifier is one rule in the emotional-state cascade. It returns the
// state and true when the rule applies.
type Classifier interface {
	Name() string
	Classify(sig *Signals) (EmotionalState, bool)
}

// DefaultClassifiers returns the cascade in priority order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&TranscendentClassifier{},
		&BrokenClassifier{},
		&EnragedClassifier{},
		&AngryClassifier{},
		&FrustratedClassifier{},
		&ConfusedClassifier{},
	}
}

// RunClassifiers returns the first matching state and the name of the rule
// that produced it, or optimistic when no rule applies.
func RunClassifiers(classifiers []Classifier, sig *Signals) (EmotionalState, string) {
	for _, c := range classifiers {
		if st, ok := c.Classify(sig); ok {
			return st, c.Name()
		}
	}
	return StateOptimistic, "default"
}

// TranscendentClassifier fires after more than 50 calm attempts.
type TranscendentClassifier struct{}

func (c *TranscendentClassifier) Name() string { return "transcendent" }

func (c *TranscendentClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.HistoryLen > 50 && sig.ProfanityCount == 0 && sig.CapsPercentage < 30 {
		return StateTranscendent, true
	}
	return "", false
}

// BrokenClassifier fires on defeated language.
type BrokenClassifier struct{}

func (c *BrokenClassifier) Name() string { return "broken" }

func (c *BrokenClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.Has(IndicatorDefeated) {
		return StateBroken, true
	}
	return "", false
}

// EnragedClassifier fires on repeated profanity or heavy shouting.
type EnragedClassifier struct{}

func (c *EnragedClassifier) Name() string { return "enraged" }

func (c *EnragedClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.ProfanityCount >= 2 || sig.CapsPercentage > 70 {
		return StateEnraged, true
	}
	return "", false
}

// AngryClassifier fires on any profanity, shouting or demands.
type AngryClassifier struct{}

func (c *AngryClassifier) Name() string { return "angry" }

func (c *AngryClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.ProfanityCount > 0 || sig.CapsPercentage > 50 || sig.Has(IndicatorDemanding) {
		return StateAngry, true
	}
	return "", false
}

// FrustratedClassifier fires on pleading or after five attempts.
type FrustratedClassifier struct{}

func (c *FrustratedClassifier) Name() string { return "frustrated" }

func (c *FrustratedClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.Has(IndicatorPleading) || sig.HistoryLen >= 5 {
		return StateFrustrated, true
	}
	return "", false
}

// ConfusedClassifier fires after two attempts.
type ConfusedClassifier struct{}

func (c *ConfusedClassifier) Name() string { return "confused" }

func (c *ConfusedClassifier) Classify(sig *Signals) (EmotionalState, bool) {
	if sig.HistoryLen >= 2 {
		return StateConfused, true
	}
	return "", false
}
