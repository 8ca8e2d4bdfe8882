package criteria

import "strings"

// RawFilter holds filter parameters exactly as received.
type RawFilter struct {
	Manufacturer string
	Model        string
	BodyClass    string
	DataSource   string
	YearMin      string
	YearMax      string

	ManufacturerSearch string
	ModelSearch        string
	BodyClassSearch    string
	DataSourceSearch   string
}

// Filter is the normalized primary filter set.
type Filter struct {
	Manufacturers []string
	Models        []string
	BodyClasses   []string
	DataSource    string
	YearMin       *int
	YearMax       *int

	ManufacturerSearch string
	ModelSearch        string
	BodyClassSearch    string
	DataSourceSearch   string
}

// NormalizeFilter splits multi-value fields, trims partial-match text and parses year bounds.
func NormalizeFilter(raw RawFilter) (Filter, error) {
	yearMin, err := ParseInt("yearMin", raw.YearMin)
	if err != nil {
		return Filter{}, err
	}
	yearMax, err := ParseInt("yearMax", raw.YearMax)
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		Manufacturers:      SplitValues(raw.Manufacturer),
		Models:             SplitValues(raw.Model),
		BodyClasses:        SplitValues(raw.BodyClass),
		DataSource:         strings.TrimSpace(raw.DataSource),
		YearMin:            yearMin,
		YearMax:            yearMax,
		ManufacturerSearch: strings.TrimSpace(raw.ManufacturerSearch),
		ModelSearch:        strings.TrimSpace(raw.ModelSearch),
		BodyClassSearch:    strings.TrimSpace(raw.BodyClassSearch),
		DataSourceSearch:   strings.TrimSpace(raw.DataSourceSearch),
	}, nil
}

// IsEmpty reports whether no filter field is present.
func (f Filter) IsEmpty() bool {
	return len(f.Manufacturers) == 0 && len(f.Models) == 0 && len(f.BodyClasses) == 0 &&
		f.DataSource == "" && f.YearMin == nil && f.YearMax == nil &&
		f.ManufacturerSearch == "" && f.ModelSearch == "" &&
		f.BodyClassSearch == "" && f.DataSourceSearch == ""
}

// FilterEcho is the normalized filter set in request parameter form.
type FilterEcho struct {
	ManufacturerSearch string `json:"manufacturerSearch,omitempty"`
	ModelSearch        string `json:"modelSearch,omitempty"`
	BodyClassSearch    string `json:"bodyClassSearch,omitempty"`
	DataSourceSearch   string `json:"dataSourceSearch,omitempty"`
	Manufacturer       string `json:"manufacturer,omitempty"`
	Model              string `json:"model,omitempty"`
	YearMin            *int   `json:"yearMin,omitempty"`
	YearMax            *int   `json:"yearMax,omitempty"`
	BodyClass          string `json:"bodyClass,omitempty"`
	DataSource         string `json:"dataSource,omitempty"`
}

// Echo returns the filter in request parameter form.
func (f Filter) Echo() FilterEcho {
	return FilterEcho{
		ManufacturerSearch: f.ManufacturerSearch,
		ModelSearch:        f.ModelSearch,
		BodyClassSearch:    f.BodyClassSearch,
		DataSourceSearch:   f.DataSourceSearch,
		Manufacturer:       strings.Join(f.Manufacturers, ","),
		Model:              strings.Join(f.Models, ","),
		YearMin:            f.YearMin,
		YearMax:            f.YearMax,
		BodyClass:          strings.Join(f.BodyClasses, ","),
		DataSource:         f.DataSource,
	}
}

// Raw converts the echo back into raw parameters.
func (e FilterEcho) Raw() RawFilter {
	return RawFilter{
		Manufacturer:       e.Manufacturer,
		Model:              e.Model,
		BodyClass:          e.BodyClass,
		DataSource:         e.DataSource,
		YearMin:            formatInt(e.YearMin),
		YearMax:            formatInt(e.YearMax),
		ManufacturerSearch: e.ManufacturerSearch,
		ModelSearch:        e.ModelSearch,
		BodyClassSearch:    e.BodyClassSearch,
		DataSourceSearch:   e.DataSourceSearch,
	}
}
