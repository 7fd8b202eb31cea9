package onboarding

type Concern struct {
	Tag  string `json:"tag"`
	Hint string `json:"hint"`
}

var concernCatalog = []Concern{
	{Tag: "Sleep", Hint: "😴"},
	{Tag: "Feeding", Hint: "🍼"},
	{Tag: "Development", Hint: "🧠"},
	{Tag: "Health", Hint: "🏥"},
	{Tag: "Crying", Hint: "😢"},
	{Tag: "Teething", Hint: "🦷"},
	{Tag: "Routines", Hint: "📅"},
	{Tag: "Mental Health", Hint: "🧘"},
	{Tag: "Work-Life Balance", Hint: "⚖️"},
	{Tag: "Baby Safety", Hint: "🛡️"},
	{Tag: "Communication", Hint: "💬"},
	{Tag: "Postpartum Recovery", Hint: "❤️‍🩹"},
}

// ConcernCatalog lists the concern tags offered on the preferences step.
// The wizard itself accepts any tag; only non-emptiness is enforced.
func ConcernCatalog() []Concern {
	result := make([]Concern, len(concernCatalog))
	copy(result, concernCatalog)
	return result
}

func IsCatalogConcern(tag string) bool {
	for _, concern := range concernCatalog {
		if concern.Tag == tag {
			return true
		}
	}
	return false
}
