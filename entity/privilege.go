package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OperationFillInBalance   = "FILL_IN_BALANCE"
	OperationDebitTheAccount = "DEBIT_THE_ACCOUNT"
)

// HistoryDateFormat is the wire format for ledger entry timestamps.
const HistoryDateFormat = "2006-01-02T15:04:05Z"

type Privilege struct {
	ID       int    `db:"id"`
	Username string `db:"username"`
	Status   string `db:"status"`
	Balance  int    `db:"balance"`
}

type PrivilegeHistory struct {
	ID            int       `db:"id"`
	PrivilegeID   int       `db:"privilege_id"`
	TicketUID     uuid.UUID `db:"ticket_uid"`
	Datetime      time.Time `db:"datetime"`
	BalanceDiff   int       `db:"balance_diff"`
	OperationType string    `db:"operation_type"`
}

type PrivilegeHistoryPost struct {
	Username      string
	TicketUID     uuid.UUID
	BalanceDiff   int
	OperationType string
}

type PrivilegeHistoryResponse struct {
	Date          string    `json:"date"`
	TicketUID     uuid.UUID `json:"ticketUid"`
	BalanceDiff   int       `json:"balanceDiff"`
	OperationType string    `json:"operationType"`
}

type PrivilegeResponse struct {
	Balance int                        `json:"balance"`
	Status  string                     `json:"status"`
	History []PrivilegeHistoryResponse `json:"history"`
}

type Balance struct {
	Balance int    `json:"balance"`
	Status  string `json:"status"`
}

// PurchasePost is the bonus service's inbound body recording the loyalty
// effect of a ticket purchase.
type PurchasePost struct {
	TicketUID       uuid.UUID `json:"ticket_uid"`
	Price           int       `json:"price"`
	PaidFromBalance bool      `json:"paid_from_balance"`
}

type PurchaseResponse struct {
	PaidByMoney   int    `json:"paid_by_money"`
	PaidByBonuses int    `json:"paid_by_bonuses"`
	Balance       int    `json:"balance"`
	Status        string `json:"status"`
}

type UserResponse struct {
	Tickets   []TicketResponse `json:"tickets"`
	Privilege Balance          `json:"privilege"`
}
