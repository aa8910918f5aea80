package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/pdf"
)

func TestGenerateInventoryPDF(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Name: "UREIA 45", Category: "Fertilizantes", Unit: "kg", Stock: decimal.NewFromInt(120), Price: decimal.RequireFromString("2.5"), Status: entity.StatusOK},
		{ID: 2, Name: "DIESEL S10", Category: "Combustível", Unit: "L", Location: "TANQUE", Stock: decimal.NewFromInt(5), MinStock: decimal.NewFromInt(50), Price: decimal.NewFromInt(6), Status: entity.StatusLow},
	}
	sheet := appinv.Sheet{
		FarmName:    "Fazenda Santa Luzia",
		Currency:    "R$",
		GeneratedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		Products:    products,
		Stats:       inventory.ComputeStats(products),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateInventoryPDF(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryPDF_SemProdutos(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateInventoryPDF(context.Background(), appinv.Sheet{FarmName: "Sítio", Currency: "R$", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
