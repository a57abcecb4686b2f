package llm

import "context"

// Purpose labels used when recording requests.
const (
	PurposeChat        = "chat"
	PurposeIntent      = "intent-analysis"
	PurposeCoachingTip = "coaching-tip"
	PurposeDemoBad     = "demo-bad"
	PurposeDemoGood    = "demo-good"

	// PurposeUnlabelled is reported for requests made without WithPurpose.
	PurposeUnlabelled = "unlabelled"
)

type purposeKey struct{}

// WithPurpose tags ctx so that request events say why the call was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return PurposeUnlabelled
}
