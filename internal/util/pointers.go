package util

import (
	"time"

	"github.com/shopspring/decimal"
)

func StrPointer(s string) *string {
	return &s
}

func IntPointer(i int) *int {
	return &i
}

func FloatPointer(f float64) *float64 {
	return &f
}

func BoolPointer(b bool) *bool {
	return &b
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TimePointer(t time.Time) *time.Time {
	return &t
}
