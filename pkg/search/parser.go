package search

import (
	"regexp"
	"strings"
)

// Condition is a single key:value criterion found in a query
type Condition struct {
	Key   string
	Value string
}

// Query is a parsed list query: criteria for the filter stage plus free text
// for the search stage
type Query struct {
	Conditions []Condition
	Text       string // free text, words joined by single spaces
	Raw        string // original query string
}

// Parser handles parsing of list queries such as
// `category:vinyl public:true "blue note"`
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.*)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse splits input into conditions and free text. It never fails: a token
// that is not a key:value pair is search text.
func (p *Parser) Parse(input string) *Query {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
	}

	var words []string
	for _, token := range p.tokenize(input) {
		matches := p.fieldPattern.FindStringSubmatch(token)
		if len(matches) == 3 {
			query.Conditions = append(query.Conditions, Condition{
				Key:   strings.ToLower(matches[1]),
				Value: p.unquote(matches[2]),
			})
			continue
		}
		words = append(words, p.unquote(token))
	}

	query.Text = strings.Join(words, " ")
	return query
}

// Get returns the last value given for key. Later conditions override
// earlier ones, matching how they are applied.
func (q *Query) Get(key string) (string, bool) {
	key = strings.ToLower(key)
	for i := len(q.Conditions) - 1; i >= 0; i-- {
		if q.Conditions[i].Key == key {
			return q.Conditions[i].Value, true
		}
	}
	return "", false
}

// Criteria returns the conditions as a key -> value map
func (q *Query) Criteria() map[string]string {
	criteria := make(map[string]string, len(q.Conditions))
	for _, c := range q.Conditions {
		criteria[c.Key] = c.Value
	}
	return criteria
}

// tokenize splits the input on spaces outside of double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

// ParseQuery parses input with a fresh parser
func ParseQuery(input string) *Query {
	return NewParser().Parse(input)
}
