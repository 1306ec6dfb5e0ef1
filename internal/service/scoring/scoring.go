// Package scoring содержит чистые функции расчета баллов и статистики.
// Вся арифметика ведется в decimal, округление до 2 знаков half-up.
package scoring

import (
	"github.com/shopspring/decimal"
)

const places = 2

var hundred = decimal.NewFromInt(100)

// Score возвращает процент правильных ответов: correct/total*100, 0 при total == 0
func Score(total, correct int) float64 {
	if total <= 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(correct)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(places)
	return toFloat(d)
}

// Round2 округляет значение до двух знаков (half-up)
func Round2(v float64) float64 {
	return toFloat(decimal.NewFromFloat(v).Round(places))
}

// Stats - агрегаты по завершенным попыткам викторины
type Stats struct {
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	HighestScore  float64 `json:"highest_score"`
	LowestScore   float64 `json:"lowest_score"`
}

// Summarize считает количество, среднее, максимум и минимум. Для пустого набора все нули.
func Summarize(scores []float64) Stats {
	if len(scores) == 0 {
		return Stats{}
	}
	sum := decimal.Zero
	highest := decimal.NewFromFloat(scores[0])
	lowest := highest
	for _, s := range scores {
		d := decimal.NewFromFloat(s)
		sum = sum.Add(d)
		if d.GreaterThan(highest) {
			highest = d
		}
		if d.LessThan(lowest) {
			lowest = d
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(scores))))
	return Stats{
		TotalAttempts: len(scores),
		AverageScore:  toFloat(avg.Round(places)),
		HighestScore:  toFloat(highest.Round(places)),
		LowestScore:   toFloat(lowest.Round(places)),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
