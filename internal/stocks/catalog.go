// Package stocks holds the KRX listing used to look up Yahoo symbols by
// company name, code or chosung (initial consonants, e.g. ㅅㅅㅈㅈ for 삼성전자).
package stocks

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

//go:embed stocks.json
var defaultCatalog []byte

const (
	hangulFirst   = 0xAC00
	hangulLast    = 0xD7A3
	syllablesPerL = 588 // 21 vowels * 28 finals
	choseongBase  = 0x1100
)

type Stock struct {
	Symbol string `json:"symbol"` // 6 digit KRX code
	Name   string `json:"name"`
	Market string `json:"market"`
}

// Result is a stock in the shape the price lookup expects.
type Result struct {
	Symbol   string `json:"symbol"` // Yahoo symbol, code + ".KS"
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exchange string `json:"exchange"`
	Code     string `json:"code"`
}

type Catalog struct {
	stocks  []Stock
	chosung []string
}

func NewCatalog(stocks []Stock) *Catalog {
	c := &Catalog{
		stocks:  stocks,
		chosung: make([]string, len(stocks)),
	}
	for i, s := range stocks {
		c.chosung[i] = Chosung(s.Name)
	}
	return c
}

// Load reads a JSON array of stocks from path, or the embedded listing when
// path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stock catalog: %w", err)
		}
	}

	var stocks []Stock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return nil, fmt.Errorf("parse stock catalog: %w", err)
	}
	return NewCatalog(stocks), nil
}

func (c *Catalog) Len() int {
	return len(c.stocks)
}

// Search matches query against codes, names and name chosung. An exact code
// match is moved to the front; other matches keep catalog order. Scanning stops
// at the first non-matching stock once twice the limit has been collected.
func (c *Catalog) Search(query string, limit int) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	qChosung := normalizeJamo(q)

	var matches []Stock
scan:
	for i, s := range c.stocks {
		switch {
		case s.Symbol == q:
			matches = append([]Stock{s}, matches...)
		case strings.HasPrefix(s.Symbol, q),
			strings.Contains(strings.ToLower(s.Name), q),
			strings.Contains(c.chosung[i], qChosung):
			matches = append(matches, s)
		case len(matches) >= limit*2:
			break scan
		}
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]Result, len(matches))
	for i, s := range matches {
		results[i] = Result{
			Symbol:   s.Symbol + ".KS",
			Name:     s.Name,
			Type:     "EQUITY",
			Exchange: s.Market,
			Code:     s.Symbol,
		}
	}
	return results
}

// Chosung replaces every Hangul syllable with its leading consonant as a
// conjoining jamo (U+1100 block); other runes are kept.
func Chosung(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= hangulFirst && r <= hangulLast {
			r = choseongBase + (r-hangulFirst)/syllablesPerL
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// normalizeJamo maps compatibility jamo typed on a keyboard (ㅅ, U+3145) to
// the conjoining form Chosung produces (U+1109).
func normalizeJamo(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= 0x3131 && r <= 0x314E {
			decomposed := norm.NFKD.String(string(r))
			if dr, _ := utf8.DecodeRuneInString(decomposed); dr >= choseongBase && dr <= choseongBase+18 {
				r = dr
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
