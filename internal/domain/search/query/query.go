// Package query defines the engine-agnostic boolean clause tree compiled from
// vehicle filters. Rendering to the engine wire format lives in the db layer.
package query

import "strings"

// Kind identifies a clause variant.
type Kind string

// Clause kinds.
const (
	KindMatchAll     Kind = "match_all"
	KindTerm         Kind = "term"
	KindTerms        Kind = "terms"
	KindRange        Kind = "range"
	KindPhrasePrefix Kind = "match_phrase_prefix"
	KindWildcard     Kind = "wildcard"
	KindMatch        Kind = "match"
	KindBool         Kind = "bool"
)

// Clause is a node of the query tree. The set of implementations is closed.
type Clause interface {
	Kind() Kind
	sealed()
}

// MatchAll matches every document.
type MatchAll struct{}

// Term is an exact value test on a single field.
type Term struct {
	Field           string
	Value           string
	CaseInsensitive bool
}

// Terms matches any of the exact values on a single field.
type Terms struct {
	Field  string
	Values []string
}

// Range is an inclusive integer range. A nil bound leaves that side open.
type Range struct {
	Field string
	GTE   *int
	LTE   *int
}

// PhrasePrefix matches analyzed text whose last term is a prefix.
type PhrasePrefix struct {
	Field         string
	Query         string
	MaxExpansions int
}

// Wildcard matches a keyword field against a glob pattern.
type Wildcard struct {
	Field           string
	Pattern         string
	CaseInsensitive bool
}

// Match is a full-text match with optional fuzziness ("AUTO", "1", ...).
type Match struct {
	Field     string
	Query     string
	Fuzziness string
}

// Bool combines clauses. Must and Filter are ANDed; Should is ORed and
// requires MinimumShouldMatch hits when non-zero.
type Bool struct {
	Must               []Clause
	Should             []Clause
	Filter             []Clause
	MinimumShouldMatch int
}

func (MatchAll) Kind() Kind     { return KindMatchAll }
func (Term) Kind() Kind         { return KindTerm }
func (Terms) Kind() Kind        { return KindTerms }
func (Range) Kind() Kind        { return KindRange }
func (PhrasePrefix) Kind() Kind { return KindPhrasePrefix }
func (Wildcard) Kind() Kind     { return KindWildcard }
func (Match) Kind() Kind        { return KindMatch }
func (Bool) Kind() Kind         { return KindBool }

func (MatchAll) sealed()     {}
func (Term) sealed()         {}
func (Terms) sealed()        {}
func (Range) sealed()        {}
func (PhrasePrefix) sealed() {}
func (Wildcard) sealed()     {}
func (Match) sealed()        {}
func (Bool) sealed()         {}

// IsOpen reports whether the range has no bound at all.
func (r Range) IsOpen() bool { return r.GTE == nil && r.LTE == nil }

// AnyOf returns the single clause unchanged, or an OR group requiring one match.
// Returns nil for no clauses.
func AnyOf(clauses ...Clause) Clause {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	}
	return Bool{Should: clauses, MinimumShouldMatch: 1}
}

// AllOf returns an AND of the clauses as a must-only Bool. Returns nil for no clauses.
func AllOf(clauses ...Clause) Clause {
	if len(clauses) == 0 {
		return nil
	}
	return Bool{Must: clauses}
}

// TermsAny compiles exact values on a field: one value is a single term,
// several are an OR group of terms.
func TermsAny(field string, values []string, caseInsensitive bool) Clause {
	clauses := make([]Clause, len(values))
	for i, v := range values {
		clauses[i] = Term{Field: field, Value: v, CaseInsensitive: caseInsensitive}
	}
	return AnyOf(clauses...)
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// EscapeWildcard quotes wildcard metacharacters so user text matches literally.
func EscapeWildcard(s string) string { return wildcardEscaper.Replace(s) }
