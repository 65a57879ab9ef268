package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

// recordingRepo is an in-memory product store that counts every call.
type recordingRepo struct {
	products []product.Product
	nextID   int64

	findByIDCalls       int
	findByCategoryCalls int
	saveCalls           int
	deleteCalls         int

	failWith error
}

func (r *recordingRepo) seed(p product.Product) product.Product {
	r.nextID++
	p.ID = ident.New(r.nextID)
	r.products = append(r.products, p)
	return p
}

func (r *recordingRepo) FindByID(_ context.Context, id int64) (*product.Product, error) {
	r.findByIDCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.products {
		if r.products[i].ID.Int64() == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *recordingRepo) FindByName(_ context.Context, name string) (*product.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.products {
		if r.products[i].Name == name {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *recordingRepo) FindByCategory(_ context.Context, c product.Category) ([]product.Product, error) {
	r.findByCategoryCalls++
	out := make([]product.Product, 0)
	for _, p := range r.products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *recordingRepo) Save(_ context.Context, p *product.Product) (*product.Product, error) {
	r.saveCalls++
	saved := *p
	if !saved.ID.IsAssigned() {
		r.nextID++
		saved.ID = ident.New(r.nextID)
		r.products = append(r.products, saved)
		return &saved, nil
	}
	for i := range r.products {
		if r.products[i].ID == saved.ID {
			r.products[i] = saved
			return &saved, nil
		}
	}
	return nil, failure.Wrap(failure.ErrProductNotFound, "product %s", saved.ID)
}

func (r *recordingRepo) Delete(_ context.Context, p *product.Product) error {
	r.deleteCalls++
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService() (*Service, *recordingRepo) {
	repo := &recordingRepo{}
	return NewService(repo, &mockLogger{}), repo
}

func batata() product.Product {
	return product.Product{Name: "Batata", Price: 999, Category: product.CategorySide}
}

func TestCreateProduct_AssignsID(t *testing.T) {
	svc, repo := newTestService()

	saved, err := svc.CreateProduct(context.Background(), batata())
	require.NoError(t, err)
	assert.True(t, saved.ID.IsAssigned())
	assert.Equal(t, "Batata", saved.Name)
	assert.Equal(t, int64(999), saved.Price)
	assert.Equal(t, product.CategorySide, saved.Category)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestCreateProduct_DuplicateNameWritesNothing(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, batata())
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, batata())
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrProductAlreadyExists), "got %v", err)
	assert.Equal(t, 1, repo.saveCalls)
	assert.Len(t, repo.products, 1)
}

func TestCreateProduct_NameMatchIsExact(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, batata())
	require.NoError(t, err)

	for _, name := range []string{"batata", "Batata ", "BATATA"} {
		p := batata()
		p.Name = name
		_, err := svc.CreateProduct(ctx, p)
		assert.NoError(t, err, name)
	}
	assert.Equal(t, 4, repo.saveCalls)
}

func TestCreateProduct_IgnoresCallerID(t *testing.T) {
	svc, _ := newTestService()

	p := batata()
	p.ID = ident.New(500)
	saved, err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, ident.New(1), saved.ID)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		p    product.Product
	}{
		{"empty name", product.Product{Price: 100, Category: product.CategoryMain}},
		{"negative price", product.Product{Name: "X", Price: -1, Category: product.CategoryMain}},
		{"unknown category", product.Product{Name: "X", Price: 1, Category: "AAA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			_, err := svc.CreateProduct(context.Background(), tt.p)
			assert.True(t, errors.Is(err, failure.ErrInvalidParameter), "got %v", err)
			assert.Equal(t, 0, repo.saveCalls)
		})
	}
}

func TestUpdateProduct_ReplacesFieldsAndKeepsID(t *testing.T) {
	svc, repo := newTestService()
	existing := repo.seed(batata())

	changes := product.Product{
		ID:          ident.New(77),
		Name:        "Batata Rustica",
		Description: "with rosemary",
		Image:       "rustica.png",
		Price:       1299,
		Category:    product.CategoryMain,
	}
	updated, err := svc.UpdateProduct(context.Background(), existing.ID.Int64(), changes)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Batata Rustica", updated.Name)
	assert.Equal(t, "with rosemary", updated.Description)
	assert.Equal(t, "rustica.png", updated.Image)
	assert.Equal(t, int64(1299), updated.Price)
	assert.Equal(t, product.CategoryMain, updated.Category)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.UpdateProduct(context.Background(), 42, batata())
	assert.True(t, errors.Is(err, failure.ErrProductNotFound), "got %v", err)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestUpdateProduct_InvalidChanges(t *testing.T) {
	svc, repo := newTestService()
	existing := repo.seed(batata())

	changes := batata()
	changes.Category = "side"
	_, err := svc.UpdateProduct(context.Background(), existing.ID.Int64(), changes)
	assert.True(t, errors.Is(err, failure.ErrInvalidParameter), "got %v", err)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestUpdateProduct_InvalidChangesBeatMissingProduct(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.UpdateProduct(context.Background(), 42, product.Product{Name: ""})
	assert.True(t, errors.Is(err, failure.ErrInvalidParameter), "got %v", err)
	assert.False(t, errors.Is(err, failure.ErrProductNotFound))
	assert.Equal(t, 0, repo.findByIDCalls)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestDeleteProduct_Accepted(t *testing.T) {
	svc, repo := newTestService()
	existing := repo.seed(batata())

	ack, err := svc.DeleteProduct(context.Background(), existing.ID.Int64())
	require.NoError(t, err)
	assert.Equal(t, Acknowledgement{ID: existing.ID.Int64(), Status: AckAccepted}, ack)
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Empty(t, repo.products)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.DeleteProduct(context.Background(), 9)
	assert.True(t, errors.Is(err, failure.ErrProductNotFound), "got %v", err)
	assert.Equal(t, 0, repo.deleteCalls)
}

func TestGetProduct(t *testing.T) {
	svc, repo := newTestService()
	existing := repo.seed(batata())

	got, err := svc.GetProduct(context.Background(), existing.ID.Int64())
	require.NoError(t, err)
	assert.Equal(t, existing, *got)

	_, err = svc.GetProduct(context.Background(), 1000)
	assert.True(t, errors.Is(err, failure.ErrProductNotFound), "got %v", err)
}

func TestFindProductByCategory_InvalidCategorySkipsStore(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.FindProductByCategory(context.Background(), "AAA")
	assert.True(t, errors.Is(err, failure.ErrInvalidParameter), "got %v", err)
	assert.Contains(t, err.Error(), "AAA")
	assert.Equal(t, 0, repo.findByCategoryCalls)
}

func TestFindProductByCategory_EmptyIsNoObjectFound(t *testing.T) {
	svc, repo := newTestService()
	repo.seed(batata())

	_, err := svc.FindProductByCategory(context.Background(), "MAIN")
	assert.True(t, errors.Is(err, failure.ErrNoObjectFound), "got %v", err)
	assert.Equal(t, 1, repo.findByCategoryCalls)
}

func TestFindProductByCategory_ReturnsStoredSequence(t *testing.T) {
	svc, repo := newTestService()
	b := repo.seed(product.Product{Name: "Brownie", Price: 800, Category: product.CategoryDessert})
	repo.seed(batata())
	a := repo.seed(product.Product{Name: "Acai", Price: 1500, Category: product.CategoryDessert})

	got, err := svc.FindProductByCategory(context.Background(), "DESSERT")
	require.NoError(t, err)
	assert.Equal(t, []product.Product{b, a}, got)
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	svc, repo := newTestService()
	repo.failWith = errors.New("connection reset")

	_, err := svc.CreateProduct(context.Background(), batata())
	assert.EqualError(t, err, "connection reset")
	assert.Equal(t, failure.CodeInternal, failure.CodeOf(err))
	assert.Equal(t, 0, repo.saveCalls)
}
