// Package entity define los registros persistidos de cada productor.
// Cada colección se guarda completa como un arreglo JSON bajo su propia clave.
package entity

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y montos viajan como números JSON, igual que en los backups exportados.
	decimal.MarshalJSONWithoutQuotes = true
}
