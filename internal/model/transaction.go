package model

import (
	"github.com/shopspring/decimal"
)

// TransactionType separates money in from money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a backend transaction as returned by /api/transactions.
type Transaction struct {
	ID              int             `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate Timestamp       `json:"transaction_date"`
	Type            TransactionType `json:"transaction_type,omitempty"`
	CategoryID      *int            `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	CreatedAt       Timestamp       `json:"created_at"`
	UpdatedAt       Timestamp       `json:"updated_at"`
}

// Category returns the display name of the transaction's category.
func (t Transaction) Category() string {
	if t.CategoryName == "" {
		return "Uncategorized"
	}
	return t.CategoryName
}

// TransactionCreate is the body of POST /api/transactions.
type TransactionCreate struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate Timestamp       `json:"transaction_date"`
	Type            TransactionType `json:"transaction_type,omitempty"`
	CategoryID      *int            `json:"category_id,omitempty"`
	RawText         string          `json:"raw_text,omitempty"`
}

// TransactionUpdate is the body of PUT /api/transactions/:id. Nil fields are
// left unchanged by the backend.
type TransactionUpdate struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     *string          `json:"description,omitempty"`
	TransactionDate *Timestamp       `json:"transaction_date,omitempty"`
	CategoryID      *int             `json:"category_id,omitempty"`
}

// Empty reports whether the update carries no changes.
func (u TransactionUpdate) Empty() bool {
	return u.Amount == nil && u.Description == nil && u.TransactionDate == nil && u.CategoryID == nil
}
