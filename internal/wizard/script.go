package wizard

// The conversation script. All bot prompts and option vocabularies are fixed
// literals; the transition table in session.go keys on tagged triggers, not
// on these strings.

const (
	OptionBegin      = "Yes, let's begin"
	OptionTellMeMore = "Tell me more first"
	OptionOkayBegin  = "Okay, let's begin"
	OptionRetryQuote = "Try again"
)

const (
	welcomePrompt = "Hi there! I'm your SmartHealthQuote assistant. " +
		"I'll ask you a few quick questions about yourself and prepare a personalized " +
		"health insurance quote. Ready to get started?"

	tellMeMorePrompt = "Of course! I'll walk you through four short questions covering your " +
		"basic info, health history, lifestyle, and coverage needs. It takes about a minute, " +
		"your answers stay in this conversation, and at the end you'll see a plan suggestion " +
		"with pricing. Shall we?"

	askAgePrompt = "Great! Let's start with the basics. How old are you?"

	askMedicalHistoryPrompt = "Thanks! Now, do you have any pre-existing medical conditions, " +
		"past surgeries, or ongoing treatments? Feel free to describe them, or just say \"None\"."

	askLifestylePrompt = "Got it. How would you describe your lifestyle and activity level?"

	askCoverageNeedPrompt = "Almost done! What kind of coverage are you looking for?"

	generatingPrompt = "Perfect, that's everything I need. Give me a moment while I prepare " +
		"your personalized quote..."

	quoteReadyPrompt = "Your personalized quote is ready!"

	quoteFailedPrompt = "I'm sorry, I ran into a problem while preparing your quote. " +
		"Your answers are saved, so we can try again whenever you're ready."
)

var (
	introOptions      = []string{OptionBegin, OptionTellMeMore}
	tellMeMoreOptions = []string{OptionOkayBegin}
	lifestyleOptions  = []string{"Sedentary", "Moderately active", "Very active"}
	coverageOptions   = []string{"Basic health insurance", "Comprehensive coverage", "Specialized coverage"}
	retryOptions      = []string{OptionRetryQuote}
)

// triggerForOption converts a pressed option label into a tagged trigger.
// Unrecognized labels fall back to an opaque free-text trigger, which matches
// how typed answers are treated.
func triggerForOption(label string) Trigger {
	switch label {
	case OptionBegin, OptionOkayBegin:
		return Trigger{Kind: TriggerBegin, Text: label}
	case OptionTellMeMore:
		return Trigger{Kind: TriggerTellMeMore, Text: label}
	default:
		return Trigger{Kind: TriggerFreeText, Text: label}
	}
}
