package ai

import (
	"fmt"
	"strings"

	"github.com/camuig/clac/internal/calculator"
	"github.com/camuig/clac/internal/format"
	"github.com/camuig/clac/internal/storage"
)

const systemPrompt = `너는 한국 개인 투자자를 돕는 투자 계산기 도우미다.
사용자가 방금 계산한 물타기(평단가 낮추기) 또는 목표 평단가 역산 결과를 받는다.

규칙:
1. 숫자는 주어진 값을 그대로 사용하고 다시 계산하거나 바꾸지 않는다.
2. 결과가 의미하는 바를 3~5문장으로 쉽게 설명한다.
3. 추가 매수에 필요한 금액과 손익분기 가격을 강조한다.
4. 특정 종목의 매수나 매도를 권유하지 않는다.
5. 마크다운 코드 블록 없이 평문으로 답한다.`

// BuildUserPrompt renders a history entry for the model.
func BuildUserPrompt(entry *storage.HistoryEntry) (string, error) {
	var sb strings.Builder

	switch entry.Kind {
	case storage.KindAveragingDown:
		var in calculator.AveragingDownInput
		var res calculator.AveragingDownResult
		if err := decode(entry, &in, &res); err != nil {
			return "", err
		}
		sb.WriteString("## 물타기 계산\n")
		sb.WriteString(fmt.Sprintf("- 보유: %s에 %s주\n", format.Currency(in.CurrentPrice), format.Number(in.CurrentQuantity)))
		sb.WriteString(fmt.Sprintf("- 추가 매수: %s에 %s주\n", format.Currency(in.AdditionalPrice), format.Number(in.AdditionalQuantity)))
		sb.WriteString(fmt.Sprintf("- 새 평균 단가(손익분기): %s\n", format.Currency(res.AveragePrice)))
		sb.WriteString(fmt.Sprintf("- 총 수량: %s주, 총 투자금: %s\n", format.Number(res.TotalQuantity), format.Currency(res.TotalInvestment)))
		sb.WriteString(fmt.Sprintf("- 추가 매수가와 새 평균 단가의 차이: %s\n", format.Percentage(res.ProfitLossPercentage)))

	case storage.KindTargetAverage:
		var in calculator.TargetAverageInput
		var res calculator.TargetAverageResult
		if err := decode(entry, &in, &res); err != nil {
			return "", err
		}
		sb.WriteString("## 목표 평단가 역산\n")
		sb.WriteString(fmt.Sprintf("- 현재: 평균 단가 %s, %s주 보유\n", format.Currency(in.CurrentAveragePrice), format.Number(in.CurrentQuantity)))
		sb.WriteString(fmt.Sprintf("- 목표 평균 단가: %s, 매수 예정가: %s\n", format.Currency(in.TargetAveragePrice), format.Currency(in.NewPrice)))
		sb.WriteString(fmt.Sprintf("- 필요 수량: %s주, 필요 금액: %s\n", format.Number(res.RequiredQuantity), format.Currency(res.RequiredInvestment)))
		sb.WriteString(fmt.Sprintf("- 매수 후 총 수량: %s주, 총 투자금: %s\n", format.Number(res.TotalQuantity), format.Currency(res.TotalInvestment)))

	default:
		return "", fmt.Errorf("unknown calculation kind %q", entry.Kind)
	}

	sb.WriteString("\n이 결과를 설명해줘.")
	return sb.String(), nil
}

func decode(entry *storage.HistoryEntry, in, res any) error {
	if err := entry.DecodeInput(in); err != nil {
		return fmt.Errorf("decode %s input: %w", entry.Kind, err)
	}
	if err := entry.DecodeResult(res); err != nil {
		return fmt.Errorf("decode %s result: %w", entry.Kind, err)
	}
	return nil
}
