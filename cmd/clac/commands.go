package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"

	"github.com/camuig/clac/internal/calculator"
	"github.com/camuig/clac/internal/format"
	"github.com/camuig/clac/internal/stocks"
)

func commands(out, errOut io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&averagingDownCmd{out: out, errOut: errOut},
		&targetAverageCmd{out: out, errOut: errOut},
		&profitCmd{out: out},
		&searchCmd{out: out, errOut: errOut},
	}
}

type averagingDownCmd struct {
	out, errOut io.Writer
	in          calculator.AveragingDownInput
}

func (*averagingDownCmd) Name() string     { return "averaging-down" }
func (*averagingDownCmd) Synopsis() string { return "average price after an additional purchase" }
func (*averagingDownCmd) Usage() string {
	return `clac averaging-down -current-price <p> -current-qty <n> -add-price <p> -add-qty <n>

  Blends the current holding with an additional purchase.
`
}

func (c *averagingDownCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.in.CurrentPrice, "current-price", 0, "price paid for the current holding")
	f.Float64Var(&c.in.CurrentQuantity, "current-qty", 0, "current quantity")
	f.Float64Var(&c.in.AdditionalPrice, "add-price", 0, "price of the additional purchase")
	f.Float64Var(&c.in.AdditionalQuantity, "add-qty", 0, "additional quantity")
}

func (c *averagingDownCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := calculator.AveragingDown(c.in)
	if err != nil {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.out, "평균 단가:   %s\n", format.Currency(res.AveragePrice))
	fmt.Fprintf(c.out, "총 수량:     %s\n", format.Number(res.TotalQuantity))
	fmt.Fprintf(c.out, "총 투자금:   %s\n", format.Currency(res.TotalInvestment))
	fmt.Fprintf(c.out, "손익분기가:  %s\n", format.Currency(res.BreakEvenPrice))
	fmt.Fprintf(c.out, "매수가 대비: %s\n", format.Percentage(res.ProfitLossPercentage))
	return subcommands.ExitSuccess
}

type targetAverageCmd struct {
	out, errOut io.Writer
	in          calculator.TargetAverageInput
}

func (*targetAverageCmd) Name() string     { return "target-average" }
func (*targetAverageCmd) Synopsis() string { return "quantity needed to reach a target average price" }
func (*targetAverageCmd) Usage() string {
	return `clac target-average -current-price <p> -current-qty <n> -current-avg <p> -target-avg <p> -new-price <p>

  Solves for the quantity to buy at -new-price so the average drops to -target-avg.
`
}

func (c *targetAverageCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.in.CurrentPrice, "current-price", 0, "current market price")
	f.Float64Var(&c.in.CurrentQuantity, "current-qty", 0, "current quantity")
	f.Float64Var(&c.in.CurrentAveragePrice, "current-avg", 0, "current average price")
	f.Float64Var(&c.in.TargetAveragePrice, "target-avg", 0, "target average price")
	f.Float64Var(&c.in.NewPrice, "new-price", 0, "price of the planned purchase")
}

func (c *targetAverageCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := calculator.TargetAverage(c.in)
	if err != nil {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.out, "필요 수량:  %s\n", format.Number(res.RequiredQuantity))
	fmt.Fprintf(c.out, "필요 금액:  %s\n", format.Currency(res.RequiredInvestment))
	fmt.Fprintf(c.out, "총 수량:    %s\n", format.Number(res.TotalQuantity))
	fmt.Fprintf(c.out, "총 투자금:  %s\n", format.Currency(res.TotalInvestment))
	return subcommands.ExitSuccess
}

type profitCmd struct {
	out            io.Writer
	buy, sell, qty float64
}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "realized profit of a buy and sell" }
func (*profitCmd) Usage() string {
	return `clac profit -buy <p> -sell <p> -qty <n>
`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.buy, "buy", 0, "buy price")
	f.Float64Var(&c.sell, "sell", 0, "sell price")
	f.Float64Var(&c.qty, "qty", 0, "quantity")
}

func (c *profitCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res := calculator.Profit(c.buy, c.sell, c.qty)

	fmt.Fprintf(c.out, "매수 금액: %s\n", format.Currency(res.TotalBuy))
	fmt.Fprintf(c.out, "매도 금액: %s\n", format.Currency(res.TotalSell))
	fmt.Fprintf(c.out, "손익:      %s (%s)\n", format.Currency(res.Profit), format.Percentage(res.ProfitRate))
	return subcommands.ExitSuccess
}

type searchCmd struct {
	out, errOut io.Writer
	catalog     string
	limit       int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search KRX stocks by name, code or chosung" }
func (*searchCmd) Usage() string {
	return `clac search [-catalog <file>] [-limit n] <query>
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.catalog, "catalog", "", "stock catalog JSON (defaults to the built-in list)")
	f.IntVar(&c.limit, "limit", 10, "maximum number of results")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(c.errOut, "Error: query is required")
		return subcommands.ExitUsageError
	}

	catalog, err := stocks.Load(c.catalog)
	if err != nil {
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, r := range catalog.Search(query, c.limit) {
		fmt.Fprintf(c.out, "%s\t%s\t%s\n", r.Symbol, r.Name, r.Exchange)
	}
	return subcommands.ExitSuccess
}
