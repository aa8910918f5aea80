package entity

import "github.com/shopspring/decimal"

// Client cliente comprador de la producción.
type Client struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Contact     string           `json:"contact"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	CNPJ        string           `json:"cnpj,omitempty"`
	Address     string           `json:"address,omitempty"`
	City        string           `json:"city"`
	Rating      int              `json:"rating"`
	Status      string           `json:"status"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	UsedCredit  *decimal.Decimal `json:"usedCredit,omitempty"`
}

func (c *Client) GetID() int64   { return c.ID }
func (c *Client) SetID(id int64) { c.ID = id }
func (c *Client) Label() string  { return c.Name }

// Supplier proveedor de insumos.
type Supplier struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	CNPJ     string `json:"cnpj,omitempty"`
	Address  string `json:"address,omitempty"`
	LeadTime string `json:"leadTime,omitempty"`
	Rating   int    `json:"rating"`
	Status   string `json:"status"`
}

func (s *Supplier) GetID() int64   { return s.ID }
func (s *Supplier) SetID(id int64) { s.ID = id }
func (s *Supplier) Label() string  { return s.Name }

// Collaborator funcionario de la fazenda.
type Collaborator struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Status     string          `json:"status"` // active | vacation | inactive
	Salary     decimal.Decimal `json:"salary"`
	HireDate   string          `json:"hireDate"`
}

func (c *Collaborator) GetID() int64   { return c.ID }
func (c *Collaborator) SetID(id int64) { c.ID = id }
func (c *Collaborator) Label() string  { return c.Name }
