package model

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies money accounts.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

// DefaultCurrency is used when an account is created without one.
const DefaultCurrency = "RUB"

// AccountTypes lists every account type the backend accepts.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCreditCard,
	AccountTypeCash,
	AccountTypeInvestment,
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is a money account (checking, savings, card...).
type Account struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	AccountType AccountType     `json:"account_type"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
}

// AccountCreate is the body of POST /api/accounts.
type AccountCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	AccountType AccountType     `json:"account_type"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountUpdate is the body of PUT /api/accounts/:id.
type AccountUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	AccountType *AccountType     `json:"account_type,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}

// DepositStatus is the lifecycle state of a deposit.
type DepositStatus string

const (
	DepositStatusActive    DepositStatus = "active"
	DepositStatusCompleted DepositStatus = "completed"
	DepositStatusCancelled DepositStatus = "cancelled"
)

// Valid reports whether s is a known deposit status.
func (s DepositStatus) Valid() bool {
	switch s {
	case DepositStatusActive, DepositStatusCompleted, DepositStatusCancelled:
		return true
	}
	return false
}

// Deposit is a term deposit held against an account.
type Deposit struct {
	ID           int             `json:"id"`
	AccountID    int             `json:"account_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"` // percent per year, 5.50 = 5.5%
	StartDate    Date            `json:"start_date"`
	EndDate      Date            `json:"end_date"`
	Status       DepositStatus   `json:"status"`
	CreatedAt    Timestamp       `json:"created_at"`
	UpdatedAt    Timestamp       `json:"updated_at"`
}

// DepositCreate is the body of POST /api/deposits.
type DepositCreate struct {
	AccountID    int             `json:"account_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    Date            `json:"start_date"`
	EndDate      Date            `json:"end_date"`
}

// DepositUpdate is the body of PUT /api/deposits/:id.
type DepositUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	EndDate      *Date            `json:"end_date,omitempty"`
	Status       *DepositStatus   `json:"status,omitempty"`
}
