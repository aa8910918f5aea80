package entity

import "github.com/shopspring/decimal"

// Task tarea operativa.
type Task struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Priority string `json:"priority"` // high | medium | low
	Due      string `json:"due"`
	Done     bool   `json:"done"`
	Assignee string `json:"assignee"`
}

func (t *Task) GetID() int64   { return t.ID }
func (t *Task) SetID(id int64) { t.ID = id }
func (t *Task) Label() string  { return t.Text }

// Tipos de transacción y actividad.
const (
	KindIncome  = "income"
	KindExpense = "expense"
	KindNeutral = "neutral"
)

// Transaction lançamento financeiro.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Status      string          `json:"status"` // paid | pending
	Type        string          `json:"type"`   // income | expense
	Entity      string          `json:"entity"`
}

func (t *Transaction) GetID() int64   { return t.ID }
func (t *Transaction) SetID(id int64) { t.ID = id }
func (t *Transaction) Label() string  { return t.Description }

// ActivityKind tipo de la actividad generada por la transacción.
func (t *Transaction) ActivityKind() string {
	if t.Type == KindIncome || t.Type == KindExpense {
		return t.Type
	}
	return KindNeutral
}
