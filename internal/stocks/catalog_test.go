package stocks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func defaultCatalogT(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("")
	require.NoError(t, err)
	return c
}

func TestChosung(t *testing.T) {
	assert.Equal(t, "ᄉᄉᄌᄌ", Chosung("삼성전자"))
	assert.Equal(t, "SKᄒᄋᄂᄉ", Chosung("SK하이닉스"))
	assert.Equal(t, "abc", Chosung("abc"))
}

func TestNormalizeJamo(t *testing.T) {
	assert.Equal(t, "ᄉᄉᄌᄌ", normalizeJamo("ㅅㅅㅈㅈ"))
	assert.Equal(t, "삼성", normalizeJamo("삼성"))
	assert.Equal(t, "ᄀᄁ", normalizeJamo("ㄱㄲ"))
}

func TestSearch_ByName(t *testing.T) {
	c := defaultCatalogT(t)

	results := c.Search("삼성", 10)
	assert.Equal(t, []string{"삼성전자", "삼성전자우", "삼성바이오로직스", "삼성SDI", "삼성물산", "삼성생명"}, names(results))
}

func TestSearch_ByChosung(t *testing.T) {
	c := defaultCatalogT(t)

	assert.Equal(t, []string{"삼성전자", "삼성전자우"}, names(c.Search("ㅅㅅㅈㅈ", 10)))
	assert.Equal(t, []string{"카카오", "카카오뱅크"}, names(c.Search("ㅋㅋ", 10)))
}

func TestSearch_ByCode(t *testing.T) {
	c := defaultCatalogT(t)

	results := c.Search("005930", 10)
	require.Len(t, results, 1)
	assert.Equal(t, Result{
		Symbol:   "005930.KS",
		Name:     "삼성전자",
		Type:     "EQUITY",
		Exchange: "KOSPI",
		Code:     "005930",
	}, results[0])

	assert.Equal(t, []string{"삼성전자", "삼성전자우"}, names(c.Search("0059", 10)))
}

func TestSearch_CaseInsensitiveName(t *testing.T) {
	c := defaultCatalogT(t)
	assert.Equal(t, []string{"NAVER"}, names(c.Search("  naver ", 10)))
}

func TestSearch_ExactCodeFirst(t *testing.T) {
	c := NewCatalog([]Stock{
		{Symbol: "123", Name: "prefix match", Market: "KOSDAQ"},
		{Symbol: "12", Name: "exact match", Market: "KOSPI"},
	})

	assert.Equal(t, []string{"exact match", "prefix match"}, names(c.Search("12", 10)))
}

func prefixRun(n int) []Stock {
	stocks := make([]Stock, n)
	for i := range stocks {
		stocks[i] = Stock{Symbol: fmt.Sprintf("12%04d", i), Name: fmt.Sprintf("prefix %d", i), Market: "KOSDAQ"}
	}
	return stocks
}

func TestSearch_MatchRunDoesNotStopScan(t *testing.T) {
	c := NewCatalog(append(prefixRun(25), Stock{Symbol: "12", Name: "exact match", Market: "KOSPI"}))

	results := c.Search("12", 10)
	require.Len(t, results, 10)
	assert.Equal(t, "exact match", results[0].Name)
	assert.Equal(t, "prefix 0", results[1].Name)
}

func TestSearch_StopsAtNonMatchAfterEnough(t *testing.T) {
	stocks := append(prefixRun(25),
		Stock{Symbol: "999999", Name: "unrelated", Market: "KOSPI"},
		Stock{Symbol: "12", Name: "exact match", Market: "KOSPI"},
	)
	c := NewCatalog(stocks)

	results := c.Search("12", 10)
	require.Len(t, results, 10)
	assert.Equal(t, "prefix 0", results[0].Name, "scan ended before the exact match")
}

func TestSearch_Limit(t *testing.T) {
	c := defaultCatalogT(t)

	assert.Len(t, c.Search("삼성", 2), 2)
	assert.Empty(t, c.Search("", 10))
	assert.Empty(t, c.Search("   ", 10))
	assert.Empty(t, c.Search("삼성", 0))
	assert.Empty(t, c.Search("존재하지않는회사", 10))
}

func TestLoad(t *testing.T) {
	c := defaultCatalogT(t)
	assert.Equal(t, 32, c.Len())

	path := filepath.Join(t.TempDir(), "stocks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"symbol":"000001","name":"테스트","market":"KOSPI"}]`), 0o600))

	custom, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, custom.Len())
	assert.Equal(t, []string{"테스트"}, names(custom.Search("ㅌㅅ", 10)))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
