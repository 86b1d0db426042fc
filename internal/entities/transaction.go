package entities

import "time"

type TransactionKind string

const (
	TransactionExpense TransactionKind = "expense"
	TransactionIncome  TransactionKind = "income"
)

type Transaction struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	AccountID  uint            `gorm:"index;not null" json:"account_id"`
	Kind       TransactionKind `gorm:"index;size:20;not null" json:"kind"`
	Category   string          `gorm:"size:100" json:"category"`
	Amount     float64         `gorm:"not null" json:"amount"`
	Note       string          `gorm:"size:500" json:"note,omitempty"`
	OccurredAt time.Time       `gorm:"index;not null" json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
