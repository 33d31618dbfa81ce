package catalogHandler

import (
	"context"
	"net/http"
	"strconv"

	"main/domain/entity"
	"main/internal/backend"
	"main/internal/validation"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the storefront: public catalog reads plus the
// logged-in customer writes (orders and reservations). Reads forward no
// bearer token upstream; writes use the session's token and always act on
// behalf of the session's own user.
type CatalogHandler struct {
	Backend Backend
}

type Backend interface {
	GetProducts(ctx context.Context) (*backend.Envelope, error)
	GetProduct(ctx context.Context, productID int64) (*backend.Envelope, error)
	GetServices(ctx context.Context) (*backend.Envelope, error)
	GetService(ctx context.Context, serviceID int64) (*backend.Envelope, error)
	GetCategories(ctx context.Context) (*backend.Envelope, error)
	GetVehicleTypes(ctx context.Context) (*backend.Envelope, error)
	GetPromotions(ctx context.Context) (*backend.Envelope, error)
	GetBlogs(ctx context.Context) (*backend.Envelope, error)
	GetBlog(ctx context.Context, blogID int64) (*backend.Envelope, error)

	CreateOrder(ctx context.Context, token string, o entity.Order) (*backend.Envelope, error)
	AddOrderProduct(ctx context.Context, token string, orderID, productID int64) (*backend.Envelope, error)
	CreateReservation(ctx context.Context, token string, r entity.Reservation) (*backend.Envelope, error)
}

func NewCatalogHandler(b Backend) *CatalogHandler {
	return &CatalogHandler{Backend: b}
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func relay(c echo.Context, env *backend.Envelope, err error) error {
	if err != nil {
		return err
	}
	if !env.OK() {
		return c.JSON(http.StatusUnprocessableEntity, env)
	}
	return c.JSON(http.StatusOK, env)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	env, err := h.Backend.GetProducts(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.GetProduct(c.Request().Context(), id)
	return relay(c, env, err)
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	env, err := h.Backend.GetServices(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) GetService(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.GetService(c.Request().Context(), id)
	return relay(c, env, err)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	env, err := h.Backend.GetCategories(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) ListVehicleTypes(c echo.Context) error {
	env, err := h.Backend.GetVehicleTypes(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) ListPromotions(c echo.Context) error {
	env, err := h.Backend.GetPromotions(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) ListBlogs(c echo.Context) error {
	env, err := h.Backend.GetBlogs(c.Request().Context())
	return relay(c, env, err)
}

func (h *CatalogHandler) GetBlog(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.GetBlog(c.Request().Context(), id)
	return relay(c, env, err)
}

// session returns the session attached by the gate.
func session(c echo.Context) (*entity.Session, error) {
	s, ok := c.Get("session").(*entity.Session)
	if !ok || s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return s, nil
}

func violationsResponse(c echo.Context, v validation.Violations) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"status": "failed", "reason": "validation", "violations": v})
}

// PlaceOrder creates an order for the logged-in customer. The customer id
// always comes from the session, never from the request body.
func (h *CatalogHandler) PlaceOrder(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	var o entity.Order
	if err := c.Bind(&o); err != nil {
		return err
	}

	v := validation.Violations{}
	if len(o.ProductIDs) == 0 {
		v["product_ids"] = "required"
	}
	if o.IsDelivery {
		validation.Required("address", o.Address, v)
	}
	if !v.Empty() {
		return violationsResponse(c, v)
	}

	o.CustomerID = s.UserID
	env, err := h.Backend.CreateOrder(c.Request().Context(), s.AccessToken, o)
	return relay(c, env, err)
}

type AddOrderProductRequest struct {
	ProductID int64 `json:"product_id"`
}

// AddOrderProduct links one more product into an existing order.
func (h *CatalogHandler) AddOrderProduct(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	orderID, err := idParam(c)
	if err != nil {
		return err
	}
	var req AddOrderProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	v := validation.Violations{}
	validation.PositiveID("product_id", req.ProductID, v)
	if !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.AddOrderProduct(c.Request().Context(), s.AccessToken, orderID, req.ProductID)
	return relay(c, env, err)
}

// MakeReservation books services for the logged-in user.
func (h *CatalogHandler) MakeReservation(c echo.Context) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	var r entity.Reservation
	if err := c.Bind(&r); err != nil {
		return err
	}

	v := validation.Violations{}
	if len(r.ServiceIDs) == 0 {
		v["service_ids"] = "required"
	}
	if r.Datetime.IsZero() {
		v["datetime"] = "required"
	}
	if !v.Empty() {
		return violationsResponse(c, v)
	}

	r.UserID = s.UserID
	env, err := h.Backend.CreateReservation(c.Request().Context(), s.AccessToken, r)
	return relay(c, env, err)
}
