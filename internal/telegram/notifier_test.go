package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/clac/internal/calculator"
	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/logger"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func enabledNotifier(bot *fakeBot) *Notifier {
	return &Notifier{bot: bot, chatID: 42, enabled: true, logger: logger.Discard()}
}

func TestNewNotifier_Disabled(t *testing.T) {
	n := NewNotifier(config.Default(), logger.Discard())
	assert.False(t, n.Enabled())

	err := n.ShareProfit(1, 2, 3, calculator.Profit(1, 2, 3))
	assert.ErrorIs(t, err, ErrSharingDisabled)

	n.NotifyStatus("ignored")
}

func TestShareAveragingDown(t *testing.T) {
	bot := &fakeBot{}
	n := enabledNotifier(bot)

	in := calculator.AveragingDownInput{CurrentPrice: 10000, CurrentQuantity: 100, AdditionalPrice: 8000, AdditionalQuantity: 50}
	res, err := calculator.AveragingDown(in)
	require.NoError(t, err)

	require.NoError(t, n.ShareAveragingDown(in, res))
	require.Len(t, bot.sent, 1)

	msg := bot.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Contains(t, msg.Text, "평균 단가: *₩9,333*")
	assert.Contains(t, msg.Text, "총 투자금: ₩1,400,000")
	assert.Contains(t, msg.Text, "-14.29%")
}

func TestShareTargetAverage(t *testing.T) {
	bot := &fakeBot{}
	n := enabledNotifier(bot)

	in := calculator.TargetAverageInput{CurrentPrice: 9500, CurrentQuantity: 100, CurrentAveragePrice: 10000, TargetAveragePrice: 9000, NewPrice: 8000}
	res, err := calculator.TargetAverage(in)
	require.NoError(t, err)

	require.NoError(t, n.ShareTargetAverage(in, res))
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, "필요 수량: *100*")
	assert.Contains(t, bot.sent[0].Text, "필요 금액: ₩800,000")
}

func TestShare_SendError(t *testing.T) {
	n := enabledNotifier(&fakeBot{err: errors.New("boom")})

	err := n.ShareProfit(1000, 1200, 10, calculator.Profit(1000, 1200, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestProfitMessage(t *testing.T) {
	msg := ProfitMessage(1000, 1200, 10, calculator.Profit(1000, 1200, 10))
	assert.Contains(t, msg, "💰")
	assert.Contains(t, msg, "손익: *₩2,000* (+20.00%)")

	msg = ProfitMessage(1000, 900, 10, calculator.Profit(1000, 900, 10))
	assert.Contains(t, msg, "🔴")
	assert.Contains(t, msg, "-₩1,000")
}
