package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
)

const user = "produtor-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func clients(uow repository.UnitOfWork) *usecase.RecordUseCase[entity.Client, *entity.Client] {
	return usecase.NewRecordUseCase[entity.Client](uow, "cliente",
		func(r *repository.Repos) repository.RecordRepository[entity.Client] { return r.Clients })
}

func TestRecordUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	uc := clients(r)

	_, err := uc.Create(ctx, user, &entity.Client{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(ctx, user, &entity.Client{Name: "Cooperativa Vale Verde", City: "Rio Verde"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	c.City = "Jataí"
	_, err = uc.Update(ctx, user, c.ID, c)
	require.NoError(t, err)
	got, err := uc.GetByID(ctx, user, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jataí", got.City)

	_, err = uc.Update(ctx, user, 123, &entity.Client{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, user, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, user, c.ID), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, user, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, list)

	acts, err := appinv.NewReportUseCase(r, nil, nil, nil, entity.SettingsDefaults{}).Activities(ctx, user)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	assert.Equal(t, "Removeu cliente", acts[0].Action)
	assert.Equal(t, "Cooperativa Vale Verde", acts[0].Target)
}

func TestRecordUseCase_TransacaoDefineTipoDaAtividade(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	uc := usecase.NewRecordUseCase[entity.Transaction](r, "transação",
		func(r *repository.Repos) repository.RecordRepository[entity.Transaction] { return r.Transactions })

	_, err := uc.Create(ctx, user, &entity.Transaction{Description: "Venda de soja", Type: entity.KindIncome, Amount: d("12000")})
	require.NoError(t, err)

	acts, err := appinv.NewReportUseCase(r, nil, nil, nil, entity.SettingsDefaults{}).Activities(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, entity.KindIncome, acts[0].Type)
}

func setupApplication(t *testing.T) (*kvstore.Runner, *entity.Product, *entity.Plot) {
	t.Helper()
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	p, err := appinv.NewProductUseCase(r, nil).Create(ctx, user, dto.ProductRequest{
		Name: "GLIFOSATO 480", Category: "Defensivos", Unit: "L", Stock: "100", MinStock: "10",
	})
	require.NoError(t, err)
	plot, err := usecase.NewRecordUseCase[entity.Plot](r, "talhão",
		func(r *repository.Repos) repository.RecordRepository[entity.Plot] { return r.Plots }).
		Create(ctx, user, &entity.Plot{Name: "Talhão 3", Area: d("40")})
	require.NoError(t, err)
	return r, p, plot
}

func stock(t *testing.T, r *kvstore.Runner, id int64) decimal.Decimal {
	t.Helper()
	p, err := appinv.NewProductUseCase(r, nil).GetByID(context.Background(), user, id)
	require.NoError(t, err)
	return p.Stock
}

func TestFieldApplication_CompletedConsomeEEdicaoCompensa(t *testing.T) {
	ctx := context.Background()
	r, p, plot := setupApplication(t)
	uc := usecase.NewFieldApplicationUseCase(r, nil)

	app, warnings, err := uc.Create(ctx, user, &entity.FieldApplication{
		Date: "2026-03-02", PlotID: plot.ID, Status: entity.ApplicationCompleted,
		AppliedProducts: []entity.AppliedProduct{{ProductID: p.ID, Unit: "L", TotalQuantity: d("30")}},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Talhão 3", app.PlotName)
	assert.True(t, stock(t, r, p.ID).Equal(d("70")))

	// edição troca a dose: estorno de 30 e nova baixa de 20 (500 ml × 40)
	app.AppliedProducts = []entity.AppliedProduct{{ProductID: p.ID, Unit: "ml", TotalQuantity: d("20000")}}
	_, _, err = uc.Update(ctx, user, app.ID, app)
	require.NoError(t, err)
	assert.True(t, stock(t, r, p.ID).Equal(d("80")), stock(t, r, p.ID).String())

	movs, err := appinv.NewProductUseCase(r, nil).Movements(ctx, user, p.ID)
	require.NoError(t, err)
	// saldo inicial + baixa + estorno + nova baixa: nada é apagado
	require.Len(t, movs, 4)
	assert.Equal(t, entity.MovementOut, movs[0].Type)
	assert.Equal(t, entity.MovementIn, movs[1].Type)
	assert.Contains(t, movs[1].Reason, "Estorno")

	// edição só de observações não mexe no estoque
	app.Observations = "vento fraco"
	_, _, err = uc.Update(ctx, user, app.ID, app)
	require.NoError(t, err)
	movs, _ = appinv.NewProductUseCase(r, nil).Movements(ctx, user, p.ID)
	assert.Len(t, movs, 4)

	require.NoError(t, uc.Delete(ctx, user, app.ID))
	assert.True(t, stock(t, r, p.ID).Equal(d("100")))
}

func TestFieldApplication_PlanejadaNaoConsome(t *testing.T) {
	ctx := context.Background()
	r, p, plot := setupApplication(t)
	uc := usecase.NewFieldApplicationUseCase(r, nil)

	app, _, err := uc.Create(ctx, user, &entity.FieldApplication{
		PlotID: plot.ID, Status: entity.ApplicationPlanned,
		AppliedProducts: []entity.AppliedProduct{{ProductID: p.ID, TotalQuantity: d("5")}},
	})
	require.NoError(t, err)
	assert.True(t, stock(t, r, p.ID).Equal(d("100")))

	app.Status = entity.ApplicationCompleted
	_, _, err = uc.Update(ctx, user, app.ID, app)
	require.NoError(t, err)
	assert.True(t, stock(t, r, p.ID).Equal(d("95")))
}

func TestFieldApplication_FalhaNaoDeixaEstadoParcial(t *testing.T) {
	ctx := context.Background()
	r, p, plot := setupApplication(t)
	uc := usecase.NewFieldApplicationUseCase(r, nil)

	_, _, err := uc.Create(ctx, user, &entity.FieldApplication{
		PlotID: plot.ID, Status: entity.ApplicationCompleted,
		AppliedProducts: []entity.AppliedProduct{
			{ProductID: p.ID, TotalQuantity: d("5")},
			{ProductID: 4242, TotalQuantity: d("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, stock(t, r, p.ID).Equal(d("100")))

	_, _, err = uc.Create(ctx, user, &entity.FieldApplication{Status: entity.ApplicationPlanned})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPropertyAttachments(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	props := usecase.NewRecordUseCase[entity.Property](r, "propriedade",
		func(r *repository.Repos) repository.RecordRepository[entity.Property] { return r.Properties })
	prop, err := props.Create(ctx, user, &entity.Property{Name: "Fazenda Boa Vista"})
	require.NoError(t, err)

	uc := usecase.NewPropertyAttachmentUseCase(r)
	att, err := uc.Add(ctx, user, prop.ID, dto.AttachmentRequest{Name: "mapa.jpg", URL: "data:image/jpeg;base64,AAA", Type: "image/jpeg", Size: 3})
	require.NoError(t, err)
	assert.Len(t, att.ID, 36)
	assert.NotEmpty(t, att.CreatedAt)

	_, err = uc.Add(ctx, user, 999, dto.AttachmentRequest{Name: "x", URL: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Add(ctx, user, prop.ID, dto.AttachmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := props.GetByID(ctx, user, prop.ID)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)

	require.NoError(t, uc.Remove(ctx, user, prop.ID, att.ID))
	assert.ErrorIs(t, uc.Remove(ctx, user, prop.ID, att.ID), domain.ErrNotFound)
	got, _ = props.GetByID(ctx, user, prop.ID)
	assert.Empty(t, got.Attachments)
}
