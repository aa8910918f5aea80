package kvstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
)

// failingStore falla en Commit sin aplicar nada.
type failingStore struct {
	*memory.Store
}

func (failingStore) Commit(context.Context, []repository.Write) error {
	return errors.New("disco cheio")
}

const user = "u-1"

func seed(t *testing.T, r *kvstore.Runner) {
	t.Helper()
	err := r.Run(context.Background(), user, func(rp *repository.Repos) error {
		return rp.Products.Create(&entity.Product{ID: 1, Name: "UREIA", Unit: "kg", Stock: decimal.NewFromInt(10)})
	})
	require.NoError(t, err)
}

func TestRunner_CommitSoColecoesAlteradas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	r := kvstore.NewRunner(store, nil, nil)
	seed(t, r)

	keys, err := store.Keys(ctx, kvstore.Prefix)
	require.NoError(t, err)
	assert.Equal(t, []string{kvstore.Key(kvstore.CollProducts, user)}, keys)

	raw, err := store.Get(ctx, "agrogest_products_u-1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"UREIA"`)
	assert.Contains(t, string(raw), `"stock":10`)
}

func TestRunner_ErroDescartaMudancas(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	seed(t, r)

	boom := errors.New("boom")
	err := r.Run(ctx, user, func(rp *repository.Repos) error {
		p, _ := rp.Products.GetByID(1)
		p.Stock = decimal.NewFromInt(999)
		require.NoError(t, rp.Products.Update(p))
		rp.Movements.Append(entity.StockMovement{ID: 5, ProductID: 1})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		p, _ := rp.Products.GetByID(1)
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
		assert.Empty(t, rp.Movements.List())
		return nil
	}))
}

func TestRunner_FalhaNoCommitNaoAlteraStore(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	seed(t, kvstore.NewRunner(base, nil, nil))

	r := kvstore.NewRunner(failingStore{base}, nil, nil)
	err := r.Run(ctx, user, func(rp *repository.Repos) error {
		p, _ := rp.Products.GetByID(1)
		p.Stock = decimal.Zero
		rp.Movements.Append(entity.StockMovement{ID: 7, ProductID: 1})
		return rp.Products.Update(p)
	})
	require.Error(t, err)

	raw, _ := base.Get(ctx, kvstore.Key(kvstore.CollMovements, user))
	assert.Nil(t, raw)
	raw, _ = base.Get(ctx, kvstore.Key(kvstore.CollProducts, user))
	assert.Contains(t, string(raw), `"stock":10`)
}

func TestRunner_ViewNaoPersiste(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	r := kvstore.NewRunner(store, nil, nil)

	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		rp.Settings.Save(entity.Settings{FarmName: "X"})
		return nil
	}))
	keys, _ := store.Keys(ctx, kvstore.Prefix)
	assert.Empty(t, keys)
}

func TestRunner_SerializaPorUsuario(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	seed(t, r)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Run(ctx, user, func(rp *repository.Repos) error {
				p, _ := rp.Products.GetByID(1)
				p.Stock = p.Stock.Add(decimal.NewFromInt(1))
				return rp.Products.Update(p)
			})
		}()
	}
	wg.Wait()

	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		p, _ := rp.Products.GetByID(1)
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(60)), p.Stock.String())
		return nil
	}))
}

func TestRunner_RecordCRUD(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)

	err := r.Run(ctx, user, func(rp *repository.Repos) error {
		require.NoError(t, rp.Clients.Create(&entity.Client{ID: 1, Name: "Cooperativa"}))
		assert.ErrorIs(t, rp.Clients.Create(&entity.Client{ID: 1, Name: "Outra"}), domain.ErrDuplicate)
		assert.ErrorIs(t, rp.Clients.Update(&entity.Client{ID: 2}), domain.ErrNotFound)
		assert.ErrorIs(t, rp.Clients.Delete(2), domain.ErrNotFound)
		require.NoError(t, rp.Clients.Create(&entity.Client{ID: 2, Name: "Cerealista"}))
		return rp.Clients.Delete(1)
	})
	require.NoError(t, err)

	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		list := rp.Clients.List()
		require.Len(t, list, 1)
		assert.Equal(t, "Cerealista", list[0].Name)
		got, err := rp.Clients.GetByID(1)
		assert.NoError(t, err)
		assert.Nil(t, got)
		return nil
	}))
}

func TestRunner_MovimentosMaisRecentesPrimeiro(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	app := int64(77)

	require.NoError(t, r.Run(ctx, user, func(rp *repository.Repos) error {
		rp.Movements.Append(entity.StockMovement{ID: 1, ProductID: 1})
		rp.Movements.Append(entity.StockMovement{ID: 2, ProductID: 2, AppID: &app})
		rp.Movements.Append(entity.StockMovement{ID: 3, ProductID: 1})
		return nil
	}))
	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		byProduct := rp.Movements.ListByProduct(1)
		require.Len(t, byProduct, 2)
		assert.Equal(t, int64(3), byProduct[0].ID)
		assert.Len(t, rp.Movements.ListByApp(77), 1)
		return nil
	}))
}

func TestRunner_FeedLimitadoA20(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	require.NoError(t, r.Run(ctx, user, func(rp *repository.Repos) error {
		for i := 1; i <= 25; i++ {
			rp.Activities.Add(entity.Activity{ID: int64(i)})
		}
		return nil
	}))
	require.NoError(t, r.View(ctx, user, func(rp *repository.Repos) error {
		list := rp.Activities.List()
		assert.Len(t, list, entity.MaxActivities)
		assert.Equal(t, int64(25), list[0].ID)
		return nil
	}))
}

func TestRunner_Purge(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	r := kvstore.NewRunner(store, nil, nil)
	seed(t, r)
	require.NoError(t, r.Run(ctx, "u-2", func(rp *repository.Repos) error {
		rp.Settings.Save(entity.Settings{FarmName: "Outra"})
		return nil
	}))
	require.NoError(t, store.Commit(ctx, []repository.Write{{Key: kvstore.UsersKey, Value: []byte("[]")}}))

	require.NoError(t, r.Purge(ctx, user))

	keys, _ := store.Keys(ctx, kvstore.Prefix)
	assert.ElementsMatch(t, []string{kvstore.UsersKey, kvstore.Key(kvstore.CollSettings, "u-2")}, keys)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := kvstore.NewUserRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "a", Email: "Joao@Fazenda.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "b", Email: "joao@fazenda.com"}), domain.ErrEmailAlreadyExists)

	u, err := repo.FindByEmail(ctx, "JOAO@fazenda.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a", u.ID)

	u, err = repo.GetByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRunner_IDsNaoColidemComRegistrosRestaurados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	const futuro = int64(9_999_999_999_999)
	require.NoError(t, store.Commit(ctx, []repository.Write{
		{Key: kvstore.Key(kvstore.CollClients, user), Value: []byte(`[{"id":9999999999999,"name":"Cooperativa"}]`)},
		{Key: kvstore.Key(kvstore.CollTasks, user), Value: []byte(`[{"id":9999999999998,"text":"Vacinar"}]`)},
	}))

	ids := entity.NewIDSource(func() time.Time { return time.UnixMilli(1_000) })
	r := kvstore.NewRunner(store, ids, nil)

	var got int64
	require.NoError(t, r.Run(ctx, user, func(rp *repository.Repos) error {
		got = rp.IDs.Next()
		return rp.Clients.Create(&entity.Client{ID: got, Name: "Cerealista"})
	}))
	assert.Greater(t, got, futuro)
}
