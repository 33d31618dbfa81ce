package catalogHandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"main/domain/entity"
	"main/internal/backend"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	lastMethod string
	order      *entity.Order
	res        *entity.Reservation
	orderID    int64
	productID  int64
}

func (f *fakeBackend) ok(name string) (*backend.Envelope, error) {
	f.lastMethod = name
	return &backend.Envelope{Status: "success"}, nil
}

func (f *fakeBackend) GetProducts(context.Context) (*backend.Envelope, error) {
	return f.ok("GetProducts")
}
func (f *fakeBackend) GetProduct(context.Context, int64) (*backend.Envelope, error) {
	return f.ok("GetProduct")
}
func (f *fakeBackend) GetServices(context.Context) (*backend.Envelope, error) {
	return f.ok("GetServices")
}
func (f *fakeBackend) GetService(context.Context, int64) (*backend.Envelope, error) {
	return f.ok("GetService")
}
func (f *fakeBackend) GetCategories(context.Context) (*backend.Envelope, error) {
	return f.ok("GetCategories")
}
func (f *fakeBackend) GetVehicleTypes(context.Context) (*backend.Envelope, error) {
	return f.ok("GetVehicleTypes")
}
func (f *fakeBackend) GetPromotions(context.Context) (*backend.Envelope, error) {
	return f.ok("GetPromotions")
}
func (f *fakeBackend) GetBlogs(context.Context) (*backend.Envelope, error) {
	return f.ok("GetBlogs")
}
func (f *fakeBackend) GetBlog(context.Context, int64) (*backend.Envelope, error) {
	return f.ok("GetBlog")
}

func (f *fakeBackend) CreateOrder(_ context.Context, _ string, o entity.Order) (*backend.Envelope, error) {
	f.order = &o
	return f.ok("CreateOrder")
}

func (f *fakeBackend) AddOrderProduct(_ context.Context, _ string, orderID, productID int64) (*backend.Envelope, error) {
	f.orderID, f.productID = orderID, productID
	return f.ok("AddOrderProduct")
}

func (f *fakeBackend) CreateReservation(_ context.Context, _ string, r entity.Reservation) (*backend.Envelope, error) {
	f.res = &r
	return f.ok("CreateReservation")
}

func post(t *testing.T, h echo.HandlerFunc, id string, body string, s *entity.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if s != nil {
		c.Set("session", s)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func customer() *entity.Session {
	return &entity.Session{UserID: 9, Username: "ivan", AccessToken: "tok-9"}
}

func TestPlaceOrder_CustomerIDComesFromSession(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	body := `{"customer_id":999,"product_ids":[1,2],"is_delivery":true,"address":"ul. Vasil Levski 5"}`
	rec := post(t, h.PlaceOrder, "", body, customer())
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fb.order)
	assert.Equal(t, int64(9), fb.order.CustomerID, "body customer_id is ignored")
	assert.Equal(t, []int64{1, 2}, fb.order.ProductIDs)
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	rec := post(t, h.PlaceOrder, "", `{"product_ids":[]}`, customer())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fb.order)
}

func TestPlaceOrder_DeliveryNeedsAddress(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	rec := post(t, h.PlaceOrder, "", `{"product_ids":[1],"is_delivery":true}`, customer())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fb.order)
}

func TestAddOrderProduct_ForwardsIDs(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	rec := post(t, h.AddOrderProduct, "4", `{"product_id":7}`, customer())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), fb.orderID)
	assert.Equal(t, int64(7), fb.productID)

	rec = post(t, h.AddOrderProduct, "4", `{"product_id":0}`, customer())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMakeReservation_UserIDComesFromSession(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	body := `{"user_id":999,"service_ids":[3],"datetime":"2026-09-01T10:00:00Z"}`
	rec := post(t, h.MakeReservation, "", body, customer())
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fb.res)
	assert.Equal(t, int64(9), fb.res.UserID)
}

func TestMakeReservation_MissingFieldsRejected(t *testing.T) {
	fb := &fakeBackend{}
	h := NewCatalogHandler(fb)

	rec := post(t, h.MakeReservation, "", `{"service_ids":[3]}`, customer())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fb.res)
}
