package product_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params product.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *product.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: product.CreateParams{
					Item:      "Shoes",
					OrderDate: day(2024, 1, 15),
					Paid:      amount("25"),
				},
			},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *product.Product) error {
						p.ID = uuid.New()
						p.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "EmptyItem",
			args:    args{params: product.CreateParams{Item: "  "}},
			wantErr: product.ErrEmptyItem,
		},
		{
			name: "RepoError",
			args: args{params: product.CreateParams{Item: "Mug"}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := product.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.OrderPlaced)
			assertAmount(t, "-25", got.Delta())
		})
	}
}

func TestService_Create_StoresCentAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	repo.EXPECT().
		CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *product.Product) error {
			assertAmount(t, "1.00", p.Paid())
			assertAmount(t, "1.01", p.Received())
			assertAmount(t, "0.01", p.Delta())
			return nil
		})

	got, err := svc.Create(context.Background(), product.CreateParams{
		Item:     "Cable",
		Paid:     amount("1.004"),
		Received: amount("1.006"),
	})
	require.NoError(t, err)
	assertSameAmount(t, product.Delta(got.Paid(), got.Received()), got.Delta())
}

func TestService_Edit(t *testing.T) {
	id := uuid.New()

	type args struct {
		edits []product.Edit
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *product.MockRepository)
		wantErr   error
	}

	stored := func() *product.Product {
		p := product.New(product.CreateParams{Item: "Shoes", Paid: amount("25")})
		p.ID = id

		return p
	}

	tests := []testCase{
		{
			name: "UpdateSeesFreshDelta",
			args: args{edits: []product.Edit{product.SetReceived{Amount: amount("30")}}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().GetProduct(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().
					UpdateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *product.Product) error {
						assertAmount(t, "5", p.Delta())
						return nil
					})
			},
		},
		{
			name: "NotFound",
			args: args{edits: []product.Edit{product.MarkVoid{}}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().GetProduct(gomock.Any(), id).Return(nil, product.ErrNotFound)
			},
			wantErr: product.ErrNotFound,
		},
		{
			name: "BlankingItemRejected",
			args: args{edits: []product.Edit{product.SetItem{Item: ""}}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().GetProduct(gomock.Any(), id).Return(stored(), nil)
			},
			wantErr: product.ErrEmptyItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := product.NewService(repo)
			got, err := svc.Edit(context.Background(), id, tt.args.edits...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
		})
	}
}

func TestService_MarkVoid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	p := product.New(product.CreateParams{Item: "Lamp"})
	p.ID = uuid.New()

	repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)

	got, err := svc.MarkVoid(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVoid)
}

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	repo.EXPECT().ListProducts(gomock.Any()).Return(fixture(), nil)

	view, err := svc.Dashboard(context.Background(), product.Criteria{Status: product.StatusFilterNew})
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee Mug"}, items(view.Products))
	assert.Equal(t, 6, view.Summary.TotalProducts)
}

func TestService_Dashboard_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	repo.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("list error"))

	view, err := svc.Dashboard(context.Background(), product.Criteria{})
	assert.Error(t, err)
	assert.Nil(t, view)
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := product.NewService(repo)

	params := []product.CreateParams{
		{Item: "Shoes", OrderDate: day(2024, 1, 15), Paid: amount("25")},
	}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateProducts(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := product.NewService(repo)

	params := []product.CreateParams{
		{Item: "Shoes", OrderDate: day(2024, 1, 15), Paid: amount("25")},
		{Item: "Mug", OrderDate: day(2024, 1, 15), Paid: amount("10")},
	}

	existing := product.New(product.CreateParams{Item: "shoes ", OrderDate: day(2024, 1, 15)})
	existing.ID = uuid.New()

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*product.Product{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Equal(t, []product.CreateParams{params[1]}, result.New)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), []product.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_EmptyItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), []product.CreateParams{{Item: "Shoes"}, {Item: "  "}})
	assert.ErrorIs(t, err, product.ErrEmptyItem)
	assert.Nil(t, result)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := product.NewService(repo)

	params := []product.CreateParams{
		{Item: "Shoes", Paid: amount("25")},
		{Item: "Mug", Paid: amount("10")},
	}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	got, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Shoes", got[0].Item)
	assertAmount(t, "-10", got[1].Delta())
}

func TestService_CreateBatch_EmptyItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	_, err := svc.CreateBatch(context.Background(), []product.CreateParams{{Item: "Shoes"}, {Item: ""}})
	assert.ErrorIs(t, err, product.ErrEmptyItem)
}
