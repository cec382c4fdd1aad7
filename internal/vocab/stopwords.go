package vocab

// defaultStopwords contains English function words and high-frequency
// auxiliaries that carry no discriminative value for term weighting.
// Lemmas are compared against this set after lowercasing.
var defaultStopwords = map[string]struct{}{
	// Articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "each": {}, "every": {}, "either": {}, "neither": {},
	"some": {}, "any": {}, "all": {}, "both": {}, "such": {}, "other": {},
	"another": {}, "same": {},
	// Pronouns
	"i": {}, "me": {}, "my": {}, "mine": {}, "we": {}, "us": {}, "our": {},
	"ours": {}, "you": {}, "your": {}, "yours": {}, "he": {}, "him": {},
	"his": {}, "she": {}, "her": {}, "hers": {}, "it": {}, "its": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "who": {}, "whom": {},
	"whose": {}, "which": {}, "what": {}, "itself": {}, "themselves": {},
	// Copulas and auxiliaries
	"be": {}, "is": {}, "am": {}, "are": {}, "was": {}, "were": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "could": {},
	// Conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"because": {}, "although": {}, "though": {}, "while": {}, "whereas": {},
	"if": {}, "unless": {}, "until": {}, "since": {}, "when": {},
	"where": {}, "whether": {}, "than": {}, "as": {},
	// Prepositions
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "for": {},
	"with": {}, "about": {}, "against": {}, "between": {}, "among": {},
	"into": {}, "through": {}, "during": {}, "before": {}, "after": {},
	"above": {}, "below": {}, "to": {}, "from": {}, "up": {}, "down": {},
	"out": {}, "off": {}, "over": {}, "under": {}, "within": {},
	"without": {}, "upon": {}, "toward": {}, "towards": {}, "via": {},
	"per": {},
	// Adverbs and qualifiers common in abstracts
	"not": {}, "no": {}, "only": {}, "very": {}, "also": {}, "then": {},
	"here": {}, "there": {}, "how": {}, "why": {}, "again": {},
	"further": {}, "more": {}, "most": {}, "less": {}, "least": {},
	"too": {}, "well": {}, "just": {}, "however": {}, "therefore": {},
	"thus": {}, "hence": {}, "respectively": {},
	// Generic verbs that dominate scientific prose
	"use": {}, "show": {}, "find": {}, "base": {}, "provide": {},
	"include": {}, "suggest": {}, "indicate": {}, "present": {},
	"obtain": {}, "make": {}, "take": {}, "give": {}, "get": {},
	// Misc
	"etc": {}, "e.g": {}, "i.e": {}, "al": {}, "et": {},
}
