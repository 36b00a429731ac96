package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType is the semantic tag derived from a record's short type code.
type RecordType string

const (
	RecordATM                   RecordType = "atm"
	RecordBillPayment           RecordType = "bill_payment"
	RecordCheque                RecordType = "cheque"
	RecordCirrus                RecordType = "cirrus"
	RecordCredit                RecordType = "credit"
	RecordDirectDebit           RecordType = "direct_debit"
	RecordDividend              RecordType = "dividend"
	RecordDebit                 RecordType = "debit"
	RecordInterest              RecordType = "interest"
	RecordMaestro               RecordType = "maestro"
	RecordPayingInMachine       RecordType = "paying_in_machine"
	RecordStandingOrder         RecordType = "standing_order"
	RecordTransfer              RecordType = "transfer"
	RecordVisa                  RecordType = "visa"
	RecordContactless           RecordType = "contactless"
	RecordInternetAccessPayment RecordType = "internet_access_payment"
)

// Record is a single transaction. A record may have been assembled from
// several physical lines; Detail holds those fragments joined by newlines.
type Record struct {
	Date       time.Time           `json:"date"`
	Type       string              `json:"type,omitempty"`
	RecordType RecordType          `json:"recordType,omitempty"`
	Credit     bool                `json:"credit"`
	Amount     decimal.Decimal     `json:"amount"`
	Detail     string              `json:"detail"`
	Balance    decimal.NullDecimal `json:"balance"`
}

// Equal compares two records field by field, treating decimals numerically.
func (r Record) Equal(other Record) bool {
	return r.Date.Equal(other.Date) &&
		r.Type == other.Type &&
		r.RecordType == other.RecordType &&
		r.Credit == other.Credit &&
		r.Amount.Equal(other.Amount) &&
		r.Detail == other.Detail &&
		nullDecimalEqual(r.Balance, other.Balance)
}
