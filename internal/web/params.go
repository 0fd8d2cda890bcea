package web

import (
	"encoding/json"
	"math"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// amount is a lenient form number: blanks, junk and non-finite values read
// as zero, thousands separators and trailing units are ignored.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*a = 0
		return nil
	}

	switch t := v.(type) {
	case float64:
		*a = amount(finiteOrZero(t))
	case string:
		*a = amount(parseAmount(t))
	default:
		*a = 0
	}
	return nil
}

type profitForm struct {
	BuyPrice  amount `json:"buyPrice"`
	SellPrice amount `json:"sellPrice"`
	Quantity  amount `json:"quantity"`
}

// profitParams reads buyPrice, sellPrice and quantity from a JSON body or from
// the query string and form fields. Missing or unparsable values are zero.
func profitParams(r *http.Request) (buy, sell, qty float64) {
	if isJSON(r) {
		var f profitForm
		// a malformed body leaves the remaining fields at zero
		_ = json.NewDecoder(r.Body).Decode(&f)
		return float64(f.BuyPrice), float64(f.SellPrice), float64(f.Quantity)
	}

	return parseAmount(r.FormValue("buyPrice")),
		parseAmount(r.FormValue("sellPrice")),
		parseAmount(r.FormValue("quantity"))
}

// parseAmount reads the leading decimal number of s, so "10000원" is 10000
// and "0x10" is 0. Text with no leading number is 0.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	num := leadingNumber.FindString(s)
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(v)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isJSON(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
