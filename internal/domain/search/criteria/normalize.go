// Package criteria normalizes raw request criteria into typed filter and
// highlight sets. A normalized field is either absent or holds at least one value.
package criteria

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

// Pair is a manufacturer+model combination.
type Pair struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
}

// String renders the pair in its request form "Manufacturer:Model".
func (p Pair) String() string { return p.Manufacturer + ":" + p.Model }

// SplitValues splits comma-separated text, trims tokens, drops empty ones and
// removes duplicates while keeping first-seen order.
func SplitValues(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePairs parses "Manufacturer:Model,..." into pairs. Blank tokens are skipped
// like in every other multi-value field, so "Ford:Mustang," is one pair. Each
// remaining token is split once on ':'; a token without both halves is an input error.
func ParsePairs(param, raw string) ([]Pair, error) {
	tokens := SplitValues(raw)
	if len(tokens) == 0 {
		return nil, nil
	}
	pairs := make([]Pair, 0, len(tokens))
	for _, tok := range tokens {
		mfr, mdl, _ := strings.Cut(tok, ":")
		mfr, mdl = strings.TrimSpace(mfr), strings.TrimSpace(mdl)
		if mfr == "" || mdl == "" {
			return nil, domain.NewInvalidInput(param,
				fmt.Sprintf("invalid model format %q, expected format \"Manufacturer:Model\"", tok))
		}
		pairs = append(pairs, Pair{Manufacturer: mfr, Model: mdl})
	}
	return pairs, nil
}

// ParseInt parses an optional integer parameter. Blank input yields nil.
func ParseInt(param, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewInvalidInput(param, fmt.Sprintf("%q is not an integer", raw))
	}
	return &v, nil
}

func joinPairs(pairs []Pair) string {
	s := make([]string, len(pairs))
	for i, p := range pairs {
		s[i] = p.String()
	}
	return strings.Join(s, ",")
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
