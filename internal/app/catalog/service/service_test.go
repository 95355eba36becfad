package service_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	catalogsvc "github.com/drivelane/carmarket/internal/app/catalog/service"
	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	authmodel "github.com/drivelane/carmarket/internal/domain/auth/model"
	"github.com/drivelane/carmarket/internal/domain/catalog/model"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type carRepoStub struct {
	nextID int64
	cars   map[int64]model.Car
}

func newCarRepoStub() *carRepoStub {
	return &carRepoStub{cars: make(map[int64]model.Car)}
}

func (r *carRepoStub) CreateCar(_ context.Context, c model.Car) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	r.cars[c.ID] = c
	return c.ID, nil
}

func (r *carRepoStub) GetCarByID(_ context.Context, id int64) (model.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return model.Car{}, customErrors.ErrNotFound
	}
	return c, nil
}

func (r *carRepoStub) ListCars(_ context.Context, f model.CarFilter) ([]model.Car, error) {
	var out []model.Car
	for _, c := range r.cars {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Make != "" && c.Make != f.Make {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *carRepoStub) UpdateCar(_ context.Context, c model.Car) error {
	if _, ok := r.cars[c.ID]; !ok {
		return customErrors.ErrNotFound
	}
	r.cars[c.ID] = c
	return nil
}

func (r *carRepoStub) DeleteCar(_ context.Context, id int64) error {
	if _, ok := r.cars[id]; !ok {
		return customErrors.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

type inquiryRepoStub struct {
	nextID    int64
	inquiries []model.Inquiry
}

func (r *inquiryRepoStub) CreateInquiry(_ context.Context, q model.Inquiry) (int64, error) {
	r.nextID++
	q.ID = r.nextID
	r.inquiries = append(r.inquiries, q)
	return q.ID, nil
}

func (r *inquiryRepoStub) ListInquiries(_ context.Context, carID int64) ([]model.Inquiry, error) {
	var out []model.Inquiry
	for _, q := range r.inquiries {
		if carID > 0 && q.CarID != carID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func admin() *authmodel.Identity {
	return &authmodel.Identity{ID: 1, Username: "root", Email: "root@x.com", Role: authmodel.RoleAdmin}
}

func customer() *authmodel.Identity {
	return &authmodel.Identity{ID: 2, Username: "alice", Email: "alice@x.com", Role: authmodel.RoleCustomer}
}

func newCatalog(t *testing.T) (catalogsvc.CarService, catalogsvc.InquiryService, *carRepoStub) {
	t.Helper()
	v := validator.New()
	cars := newCarRepoStub()
	return catalogsvc.NewCarService(cars, v),
		catalogsvc.NewInquiryService(&inquiryRepoStub{}, cars, v),
		cars
}

func seedCar(t *testing.T, svc catalogsvc.CarService, status string) model.Car {
	t.Helper()
	car, err := svc.Create(context.Background(), dto.CarCreateDTO{
		Make: "Volvo", Model: "XC60", Year: 2021, Price: 31_000, Status: status,
	})
	require.NoError(t, err)
	return car
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestCarService_CreateGet(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	car := seedCar(t, svc, "")
	require.Equal(t, model.CarAvailable, car.Status)

	got, err := svc.Get(ctx, car.ID)
	require.NoError(t, err)
	require.Equal(t, car, got)

	_, err = svc.Get(ctx, 999)
	require.True(t, customErrors.IsNotFound(err))
}

func TestCarService_CreateInvalid(t *testing.T) {
	svc, _, _ := newCatalog(t)
	_, err := svc.Create(context.Background(), dto.CarCreateDTO{Make: "Volvo"})
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestCarService_ListHidesSoldFromNonAdmins(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	seedCar(t, svc, "available")
	seedCar(t, svc, "sold")

	public, err := svc.List(ctx, dto.CarListQuery{}, nil)
	require.NoError(t, err)
	require.Len(t, public, 1)

	asCustomer, err := svc.List(ctx, dto.CarListQuery{Status: "sold"}, customer())
	require.NoError(t, err)
	require.Len(t, asCustomer, 1)
	require.Equal(t, model.CarAvailable, asCustomer[0].Status)

	asAdmin, err := svc.List(ctx, dto.CarListQuery{}, admin())
	require.NoError(t, err)
	require.Len(t, asAdmin, 2)
}

func TestCarService_UpdatePartial(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	car := seedCar(t, svc, "")
	price := int64(29_500)
	status := "pending"

	updated, err := svc.Update(ctx, car.ID, dto.CarUpdateDTO{Price: &price, Status: &status})
	require.NoError(t, err)
	require.Equal(t, price, updated.Price)
	require.Equal(t, model.CarPending, updated.Status)
	require.Equal(t, car.Make, updated.Make)

	bad := "exploded"
	_, err = svc.Update(ctx, car.ID, dto.CarUpdateDTO{Status: &bad})
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.Update(ctx, 999, dto.CarUpdateDTO{Price: &price})
	require.True(t, customErrors.IsNotFound(err))
}

func TestCarService_Delete(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	car := seedCar(t, svc, "")
	require.NoError(t, svc.Delete(ctx, car.ID))
	require.True(t, customErrors.IsNotFound(svc.Delete(ctx, car.ID)))
}

func TestInquiryService_AnonymousNeedsContact(t *testing.T) {
	carSvc, inqSvc, _ := newCatalog(t)
	ctx := context.Background()
	car := seedCar(t, carSvc, "")

	_, err := inqSvc.Create(ctx, dto.InquiryCreateDTO{CarID: car.ID, Message: "still for sale?"}, nil)
	require.True(t, customErrors.IsInvalidArgument(err))

	q, err := inqSvc.Create(ctx, dto.InquiryCreateDTO{
		CarID: car.ID, Name: "Bob", Email: "bob@x.com", Message: "still for sale?",
	}, nil)
	require.NoError(t, err)
	require.Nil(t, q.UserID)
	require.Equal(t, "Bob", q.Name)
}

func TestInquiryService_AuthenticatedFillsIdentity(t *testing.T) {
	carSvc, inqSvc, _ := newCatalog(t)
	ctx := context.Background()
	car := seedCar(t, carSvc, "")

	q, err := inqSvc.Create(ctx, dto.InquiryCreateDTO{CarID: car.ID, Message: "interested"}, customer())
	require.NoError(t, err)
	require.NotNil(t, q.UserID)
	require.Equal(t, customer().ID, *q.UserID)
	require.Equal(t, "alice", q.Name)
	require.Equal(t, "alice@x.com", q.Email)
}

func TestInquiryService_UnknownCar(t *testing.T) {
	_, inqSvc, _ := newCatalog(t)
	_, err := inqSvc.Create(context.Background(), dto.InquiryCreateDTO{
		CarID: 42, Name: "Bob", Email: "bob@x.com", Message: "hello",
	}, nil)
	require.True(t, customErrors.IsNotFound(err))
}

func TestInquiryService_ListByCar(t *testing.T) {
	carSvc, inqSvc, _ := newCatalog(t)
	ctx := context.Background()
	car1 := seedCar(t, carSvc, "")
	car2 := seedCar(t, carSvc, "")

	for _, id := range []int64{car1.ID, car1.ID, car2.ID} {
		_, err := inqSvc.Create(ctx, dto.InquiryCreateDTO{
			CarID: id, Name: "Bob", Email: "bob@x.com", Message: "hello",
		}, nil)
		require.NoError(t, err)
	}

	all, err := inqSvc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	forCar1, err := inqSvc.List(ctx, car1.ID)
	require.NoError(t, err)
	require.Len(t, forCar1, 2)
}
