package model

import "github.com/shopspring/decimal"

type Book struct {
	ISBN    string          `gorm:"column:isbn;primaryKey"`
	Author  string          `gorm:"column:author"`
	Title   string          `gorm:"column:title"`
	Price   decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Subject string          `gorm:"column:subject"`
}

func (Book) TableName() string {
	return "books"
}
