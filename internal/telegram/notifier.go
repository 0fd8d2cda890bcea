package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/camuig/clac/internal/calculator"
	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/format"
	"github.com/camuig/clac/internal/logger"
)

var ErrSharingDisabled = errors.New("telegram sharing is disabled")

// sender is the part of tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	bot     sender
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

func (n *Notifier) ShareAveragingDown(in calculator.AveragingDownInput, res calculator.AveragingDownResult) error {
	return n.share(AveragingDownMessage(in, res))
}

func (n *Notifier) ShareTargetAverage(in calculator.TargetAverageInput, res calculator.TargetAverageResult) error {
	return n.share(TargetAverageMessage(in, res))
}

func (n *Notifier) ShareProfit(buy, sell, qty float64, res calculator.ProfitResult) error {
	return n.share(ProfitMessage(buy, sell, qty, res))
}

// NotifyStatus is best effort: failures are logged.
func (n *Notifier) NotifyStatus(message string) {
	if !n.enabled {
		return
	}
	if err := n.send(message); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}

func (n *Notifier) share(text string) error {
	if !n.enabled {
		return ErrSharingDisabled
	}
	if err := n.send(text); err != nil {
		n.logger.Error("send telegram message", "error", err)
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func (n *Notifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := n.bot.Send(msg)
	return err
}

func AveragingDownMessage(in calculator.AveragingDownInput, res calculator.AveragingDownResult) string {
	var sb strings.Builder
	sb.WriteString("📉 *물타기 계산*\n")
	fmt.Fprintf(&sb, "보유: %s × %s\n", format.Currency(in.CurrentPrice), format.Number(in.CurrentQuantity))
	fmt.Fprintf(&sb, "추가 매수: %s × %s\n", format.Currency(in.AdditionalPrice), format.Number(in.AdditionalQuantity))
	fmt.Fprintf(&sb, "평균 단가: *%s*\n", format.Currency(res.AveragePrice))
	fmt.Fprintf(&sb, "총 수량: %s\n", format.Number(res.TotalQuantity))
	fmt.Fprintf(&sb, "총 투자금: %s\n", format.Currency(res.TotalInvestment))
	fmt.Fprintf(&sb, "매수가 대비: %s", format.Percentage(res.ProfitLossPercentage))
	return sb.String()
}

func TargetAverageMessage(in calculator.TargetAverageInput, res calculator.TargetAverageResult) string {
	var sb strings.Builder
	sb.WriteString("🎯 *목표 평단가 역산*\n")
	fmt.Fprintf(&sb, "현재 평단가: %s (%s주)\n", format.Currency(in.CurrentAveragePrice), format.Number(in.CurrentQuantity))
	fmt.Fprintf(&sb, "목표 평단가: %s\n", format.Currency(in.TargetAveragePrice))
	fmt.Fprintf(&sb, "매수 가격: %s\n", format.Currency(in.NewPrice))
	fmt.Fprintf(&sb, "필요 수량: *%s*\n", format.Number(res.RequiredQuantity))
	fmt.Fprintf(&sb, "필요 금액: %s\n", format.Currency(res.RequiredInvestment))
	fmt.Fprintf(&sb, "총 수량: %s / 총 투자금: %s", format.Number(res.TotalQuantity), format.Currency(res.TotalInvestment))
	return sb.String()
}

func ProfitMessage(buy, sell, qty float64, res calculator.ProfitResult) string {
	emoji := "🔴"
	if res.Profit > 0 {
		emoji = "💰"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s *수익 계산*\n", emoji)
	fmt.Fprintf(&sb, "매수 %s → 매도 %s × %s\n", format.Currency(buy), format.Currency(sell), format.Number(qty))
	fmt.Fprintf(&sb, "손익: *%s* (%s)", format.Currency(res.Profit), format.Percentage(res.ProfitRate))
	return sb.String()
}
