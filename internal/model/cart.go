package model

import "github.com/shopspring/decimal"

type CartLine struct {
	ISBN      string
	Title     string
	Author    string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

type Cart struct {
	Lines      []CartLine
	GrandTotal decimal.Decimal
}

// LineAmount price * qty, 四捨五入到小數第二位
func LineAmount(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// SumLineTotals 先逐行四捨五入再加總
func SumLineTotals(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total.Round(2)
}

func NewCart(lines []CartLine) Cart {
	for i := range lines {
		lines[i].LineTotal = LineAmount(lines[i].Price, lines[i].Quantity)
	}
	if lines == nil {
		lines = []CartLine{}
	}
	return Cart{
		Lines:      lines,
		GrandTotal: SumLineTotals(lines),
	}
}
