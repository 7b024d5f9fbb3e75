package models

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/maxaizer/hirenearby/internal/apperrors"
)

type BudgetType string

const (
	BudgetFixed   BudgetType = "fixed"
	BudgetHourly  BudgetType = "hourly"
	BudgetMonthly BudgetType = "monthly"
)

func ToBudgetType(s string) (BudgetType, error) {
	switch s {
	case string(BudgetFixed):
		return BudgetFixed, nil
	case string(BudgetHourly):
		return BudgetHourly, nil
	case string(BudgetMonthly):
		return BudgetMonthly, nil
	default:
		return "", apperrors.NewValidationError("budget type must be one of fixed, hourly, monthly")
	}
}

// Budget is a tagged union: Min/Max are meaningful for fixed budgets, Rate for hourly and monthly ones.
type Budget struct {
	Type BudgetType `gorm:"type:varchar(10);not null" json:"type"`
	Min  float64    `json:"min"`
	Max  float64    `json:"max"`
	Rate float64    `json:"rate"`
}

func FixedBudget(min, max float64) Budget {
	return Budget{Type: BudgetFixed, Min: min, Max: max}
}

func HourlyBudget(rate float64) Budget {
	return Budget{Type: BudgetHourly, Rate: rate}
}

func MonthlyBudget(rate float64) Budget {
	return Budget{Type: BudgetMonthly, Rate: rate}
}

func (b Budget) String() string {
	switch b.Type {
	case BudgetHourly:
		return FormatAmount(b.Rate) + "/hr"
	case BudgetMonthly:
		return FormatAmount(b.Rate) + "/month"
	default:
		return FormatAmount(b.Min) + " - " + FormatAmount(b.Max)
	}
}

func (b Budget) Label() string {
	switch b.Type {
	case BudgetHourly:
		return "Hourly rate"
	case BudgetMonthly:
		return "Monthly rate"
	default:
		return "Budget range"
	}
}

// Value is a single comparable number for the budget: the middle of a fixed range or the rate.
func (b Budget) Value() float64 {
	switch b.Type {
	case BudgetHourly, BudgetMonthly:
		return b.Rate
	default:
		return (b.Min + b.Max) / 2
	}
}

func (b Budget) Validate() error {
	switch b.Type {
	case BudgetFixed:
		if !isFinite(b.Min) || !isFinite(b.Max) || b.Min < 0 || b.Max <= 0 {
			return apperrors.NewValidationError("budget min must be non-negative and max must be positive")
		}
		if b.Min > b.Max {
			return apperrors.NewValidationError("budget min must not exceed budget max")
		}
	case BudgetHourly, BudgetMonthly:
		if !isFinite(b.Rate) || b.Rate <= 0 {
			return apperrors.NewValidationError("budget rate must be positive")
		}
	default:
		return apperrors.NewValidationError("budget type must be one of fixed, hourly, monthly")
	}
	return nil
}

// CheckAmount validates a bid amount against the budget. Rate budgets only require a positive amount.
func (b Budget) CheckAmount(amount float64) error {
	if !isFinite(amount) || amount <= 0 {
		return apperrors.NewValidationError("bid amount must be a positive number")
	}
	if b.Type == BudgetFixed && (amount < b.Min || amount > b.Max) {
		return apperrors.NewValidationError("bid amount must be between %s and %s",
			FormatAmount(b.Min), FormatAmount(b.Max))
	}
	return nil
}

func (b Budget) MarshalJSON() ([]byte, error) {
	if b.Type == BudgetHourly || b.Type == BudgetMonthly {
		return json.Marshal(struct {
			Type    BudgetType `json:"type"`
			Rate    float64    `json:"rate"`
			Display string     `json:"display"`
		}{b.Type, b.Rate, b.String()})
	}
	return json.Marshal(struct {
		Type    BudgetType `json:"type"`
		Min     float64    `json:"min"`
		Max     float64    `json:"max"`
		Display string     `json:"display"`
	}{b.Type, b.Min, b.Max, b.String()})
}

func FormatAmount(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
