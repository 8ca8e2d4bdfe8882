package criteria

import "strings"

// RawHighlight holds the h_-prefixed highlight parameters as received.
type RawHighlight struct {
	YearMin      string
	YearMax      string
	Manufacturer string
	ModelCombos  string
	BodyClass    string
}

// Highlight is the normalized highlight set. It never restricts the primary
// result set; it only drives the highlighted sub-aggregation.
type Highlight struct {
	YearMin       *int
	YearMax       *int
	Manufacturers []string
	Pairs         []Pair
	BodyClasses   []string
}

// NormalizeHighlight parses highlight parameters.
func NormalizeHighlight(raw RawHighlight) (Highlight, error) {
	yearMin, err := ParseInt("h_yearMin", raw.YearMin)
	if err != nil {
		return Highlight{}, err
	}
	yearMax, err := ParseInt("h_yearMax", raw.YearMax)
	if err != nil {
		return Highlight{}, err
	}
	pairs, err := ParsePairs("h_modelCombos", raw.ModelCombos)
	if err != nil {
		return Highlight{}, err
	}
	return Highlight{
		YearMin:       yearMin,
		YearMax:       yearMax,
		Manufacturers: SplitValues(raw.Manufacturer),
		Pairs:         pairs,
		BodyClasses:   SplitValues(raw.BodyClass),
	}, nil
}

// IsEmpty reports whether no highlight field is present.
func (h Highlight) IsEmpty() bool {
	return h.YearMin == nil && h.YearMax == nil && len(h.Manufacturers) == 0 &&
		len(h.Pairs) == 0 && len(h.BodyClasses) == 0
}

// HighlightEcho is the normalized highlight set in request parameter form.
type HighlightEcho struct {
	YearMin      *int   `json:"yearMin,omitempty"`
	YearMax      *int   `json:"yearMax,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	ModelCombos  string `json:"modelCombos,omitempty"`
	BodyClass    string `json:"bodyClass,omitempty"`
}

// Echo returns the highlight set in request parameter form.
func (h Highlight) Echo() HighlightEcho {
	return HighlightEcho{
		YearMin:      h.YearMin,
		YearMax:      h.YearMax,
		Manufacturer: strings.Join(h.Manufacturers, ","),
		ModelCombos:  joinPairs(h.Pairs),
		BodyClass:    strings.Join(h.BodyClasses, ","),
	}
}

// Raw converts the echo back into raw parameters.
func (e HighlightEcho) Raw() RawHighlight {
	return RawHighlight{
		YearMin:      formatInt(e.YearMin),
		YearMax:      formatInt(e.YearMax),
		Manufacturer: e.Manufacturer,
		ModelCombos:  e.ModelCombos,
		BodyClass:    e.BodyClass,
	}
}
