// Package pricing реализует детерминированный расчёт стоимости милей
// в локальной валюте для клиентов-реселлеров.
//
// Вся арифметика выполняется на decimal.Decimal без плавающей точки;
// округление до двух знаков происходит один раз, на итоговой сумме.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)
var hundred = decimal.NewFromInt(100)

// QuoteInput — входные параметры расчёта котировки.
type QuoteInput struct {
	Miles         decimal.Decimal // Количество милей
	MilePrice     decimal.Decimal // Цена 1000 милей в валюте программы
	FxRate        decimal.Decimal // Курс валюты программы к локальной валюте
	FeePercent    decimal.Decimal // Сбор программы, процент
	MarginPercent decimal.Decimal // Маржа реселлера, процент
}

// QuoteBreakdown — результат расчёта с промежуточными суммами.
// Total округлён до двух знаков, промежуточные значения — нет.
type QuoteBreakdown struct {
	BasePrice decimal.Decimal `json:"base_price"` // Стоимость милей в валюте программы
	Converted decimal.Decimal `json:"converted"`  // После конвертации в локальную валюту
	Fee       decimal.Decimal `json:"fee"`        // Сбор программы
	Margin    decimal.Decimal `json:"margin"`     // Маржа реселлера
	Total     decimal.Decimal `json:"total"`      // Итог к оплате
}

// Quote вычисляет котировку по фиксированному конвейеру:
// мили -> цена в валюте программы -> конвертация -> сбор -> маржа.
// Возвращает ошибку на отрицательных входных значениях.
func Quote(in QuoteInput) (QuoteBreakdown, error) {
	const op = "pricing.Quote"
	for name, v := range map[string]decimal.Decimal{
		"miles":          in.Miles,
		"mile_price":     in.MilePrice,
		"fx_rate":        in.FxRate,
		"fee_percent":    in.FeePercent,
		"margin_percent": in.MarginPercent,
	} {
		if v.IsNegative() {
			return QuoteBreakdown{}, fmt.Errorf("%s: %s must not be negative", op, name)
		}
	}

	base := in.Miles.Div(thousand).Mul(in.MilePrice)
	converted := base.Mul(in.FxRate)
	fee := converted.Mul(in.FeePercent).Div(hundred)
	subtotal := converted.Add(fee)
	margin := subtotal.Mul(in.MarginPercent).Div(hundred)
	total := subtotal.Add(margin).Round(2)

	return QuoteBreakdown{
		BasePrice: base,
		Converted: converted,
		Fee:       fee,
		Margin:    margin,
		Total:     total,
	}, nil
}
