package retention

import "time"

// DateLayout is the only accepted entry name format.
const DateLayout = "2006-01-02"

type Kind int

const (
	Malformed Kind = iota
	Dated
)

func (k Kind) String() string {
	if k == Dated {
		return "dated"
	}
	return "malformed"
}

// Classification is the outcome of inspecting an entry name.
// Date is only meaningful when Kind is Dated.
type Classification struct {
	Kind Kind
	Date time.Time
}

// Classify parses name as YYYY-MM-DD in loc. Any deviation, including
// missing zero padding, other separators, trailing text or an impossible
// calendar date, is Malformed.
func Classify(name string, loc *time.Location) Classification {
	if len(name) != len(DateLayout) {
		return Classification{Kind: Malformed}
	}
	t, err := time.ParseInLocation(DateLayout, name, loc)
	if err != nil {
		return Classification{Kind: Malformed}
	}
	return Classification{Kind: Dated, Date: t}
}
