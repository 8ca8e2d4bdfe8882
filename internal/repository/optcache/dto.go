package optcache

import "github.com/kailas-cloud/autospecs/internal/domain/search/option"

// cachedResult is the stored form of an option.Result.
type cachedResult struct {
	Values []string `json:"values,omitempty"`
	Min    *int     `json:"min,omitempty"`
	Max    *int     `json:"max,omitempty"`
}

func fromResult(r option.Result) cachedResult {
	return cachedResult{Values: r.Values, Min: r.Bounds.Min, Max: r.Bounds.Max}
}

func (c cachedResult) toResult(field option.Field) option.Result {
	return option.Result{
		Field:  field,
		Values: c.Values,
		Bounds: option.Bounds{Min: c.Min, Max: c.Max},
	}
}
