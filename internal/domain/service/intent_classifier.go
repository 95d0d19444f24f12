package service

import "strings"

// Intent is a routing hint for an assistant message.
type Intent string

const (
	IntentNone             Intent = ""
	IntentGetQuote         Intent = "getQuote"
	IntentPreQual          Intent = "preQual"
	IntentStartApplication Intent = "startApplication"
	IntentUploadDoc        Intent = "uploadDoc"
	IntentExplainTerm      Intent = "explainTerm"
	IntentRequestHuman     Intent = "requestHuman"
)

type intentKeywords struct {
	intent   Intent
	keywords []string
}

// Order matters: the first intent with a matching keyword wins.
var defaultIntentKeywords = []intentKeywords{
	{IntentGetQuote, []string{"quote", "rate", "payment", "calculate"}},
	{IntentPreQual, []string{"qualify", "eligible", "pre-qual", "prequalify"}},
	{IntentStartApplication, []string{"apply", "application", "start"}},
	{IntentUploadDoc, []string{"upload", "document", "doc"}},
	{IntentExplainTerm, []string{"explain", "what is", "what are", "help me understand"}},
	{IntentRequestHuman, []string{"talk", "human", "person", "agent"}},
}

var intentSuggestions = map[Intent][]string{
	IntentGetQuote: {"Calculate pre-qualification", "View mortgage products", "Start application"},
	IntentPreQual:  {"Start pre-qualification", "Upload documents", "Talk to an advisor"},
}

// KeywordIntentClassifier matches case-insensitive substrings.
type KeywordIntentClassifier struct {
	rules []intentKeywords
}

func NewKeywordIntentClassifier() *KeywordIntentClassifier {
	return &KeywordIntentClassifier{rules: defaultIntentKeywords}
}

// Classify returns IntentNone when nothing matches.
func (c *KeywordIntentClassifier) Classify(message string) Intent {
	lower := strings.ToLower(message)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return IntentNone
}

// Suggestions returns follow-up prompts for an intent; nil if there are none.
func (c *KeywordIntentClassifier) Suggestions(intent Intent) []string {
	s, ok := intentSuggestions[intent]
	if !ok {
		return nil
	}
	return append([]string(nil), s...)
}
