package filings

// lexicon maps filing keywords to point values. Matching is substring,
// case-insensitive, with no word-boundary requirement; overlapping
// keywords each score independently.
var lexicon = map[string]int{
	"merger":           10,
	"acquisition":      10,
	"bankruptcy":       10,
	"fda approval":     10,
	"buyout":           9,
	"tender offer":     9,
	"phase iii":        8,
	"delisting":        8,
	"going concern":    8,
	"fda":              7,
	"clinical trial":   7,
	"breakthrough":     7,
	"restructuring":    6,
	"investigation":    6,
	"material weakness": 6,
	"share repurchase": 5,
	"guidance":         5,
	"partnership":      5,
	"patent":           5,
	"resignation":      4,
	"dividend":         4,
	"offering":         4,
	"ceo":              3,
	"cfo":              3,
}

// keywordCap bounds the total keyword contribution before bonuses.
const keywordCap = 30

// Bonuses layered on top of the keyword sum.
const (
	materialEventBonus = 5 // 8-K filings
	recencyBonus       = 5 // modified within the last 24 hours
)
