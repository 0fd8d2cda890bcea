package upbit

import "errors"

var (
	ErrInvalidMarket = errors.New("invalid market format")
	ErrNotFound      = errors.New("ticker not found")
)

type Ticker struct {
	Market     string  `json:"market"`
	TradePrice float64 `json:"trade_price"`
}

type Market struct {
	Market      string `json:"market"`
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}
