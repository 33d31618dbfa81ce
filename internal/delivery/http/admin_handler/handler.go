package adminHandler

import (
	"context"
	"net/http"
	"strconv"

	"main/domain/entity"
	"main/internal/backend"
	"main/internal/cascade"
	"main/internal/validation"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	Backend Backend
	Cascade Cascade
}

type Backend interface {
	GetUsers(ctx context.Context, token string) (*backend.Envelope, error)
	GetOrders(ctx context.Context, token string) (*backend.Envelope, error)
	GetReservations(ctx context.Context, token string) (*backend.Envelope, error)

	GetUserRoles(ctx context.Context, token string, userID int64) (*backend.Envelope, error)
	AddUserRole(ctx context.Context, token string, userID int64, role string) (*backend.Envelope, error)
	CreatePromotion(ctx context.Context, token, entityType string, entityID int64, dateFrom, dateTo string, newPrice float64) (*backend.Envelope, error)

	CreateProduct(ctx context.Context, token string, p entity.Product) (*backend.Envelope, error)
	UpdateProduct(ctx context.Context, token string, p entity.Product) (*backend.Envelope, error)
	CreateService(ctx context.Context, token string, s entity.Service) (*backend.Envelope, error)
	UpdateService(ctx context.Context, token string, s entity.Service) (*backend.Envelope, error)
	CreateBlog(ctx context.Context, token string, b entity.Blog) (*backend.Envelope, error)
	AddPicture(ctx context.Context, token, url, ownerKey string, ownerID int64) (*backend.Envelope, error)

	// Leaf deletes: no dependents, one call each.
	DeleteOrder(ctx context.Context, token string, orderID int64) (*backend.Envelope, error)
	DeleteReservation(ctx context.Context, token string, reservationID int64) (*backend.Envelope, error)
	DeletePromotion(ctx context.Context, token string, promotionID int64) (*backend.Envelope, error)
}

type Cascade interface {
	DeleteUser(ctx context.Context, token string, userID int64) (cascade.Result, error)
	DeleteProduct(ctx context.Context, token string, productID int64) (cascade.Result, error)
	DeleteService(ctx context.Context, token string, serviceID int64) (cascade.Result, error)
	DeleteBlog(ctx context.Context, token string, blogID int64) (cascade.Result, error)
}

func NewAdminHandler(b Backend, c Cascade) *AdminHandler {
	return &AdminHandler{Backend: b, Cascade: c}
}

// token returns the backend access token of the session the gate attached.
func token(c echo.Context) string {
	if s, ok := c.Get("session").(*entity.Session); ok && s != nil {
		return s.AccessToken
	}
	return ""
}

// idParam parses the :id route parameter; anything non-numeric or
// non-positive is rejected before any backend call.
func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// relay forwards a backend envelope to the client unchanged.
func relay(c echo.Context, env *backend.Envelope, err error) error {
	if err != nil {
		return err
	}
	if !env.OK() {
		return c.JSON(http.StatusUnprocessableEntity, env)
	}
	return c.JSON(http.StatusOK, env)
}

// cascadeResult maps a cascade outcome onto the response envelope. Partial
// cleanup is a conflict, not a success: the parent is still there.
func cascadeResult(c echo.Context, res cascade.Result, err error) error {
	if err != nil {
		return err
	}
	if res.Incomplete() {
		return c.JSON(http.StatusConflict, map[string]any{
			"status":  "failed",
			"reason":  "cleanup_incomplete",
			"payload": res,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"payload": res,
	})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	env, err := h.Backend.GetUsers(c.Request().Context(), token(c))
	return relay(c, env, err)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	env, err := h.Backend.GetOrders(c.Request().Context(), token(c))
	return relay(c, env, err)
}

func (h *AdminHandler) ListReservations(c echo.Context) error {
	env, err := h.Backend.GetReservations(c.Request().Context(), token(c))
	return relay(c, env, err)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res, err := h.Cascade.DeleteUser(c.Request().Context(), token(c), id)
	return cascadeResult(c, res, err)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res, err := h.Cascade.DeleteProduct(c.Request().Context(), token(c), id)
	return cascadeResult(c, res, err)
}

func (h *AdminHandler) DeleteService(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res, err := h.Cascade.DeleteService(c.Request().Context(), token(c), id)
	return cascadeResult(c, res, err)
}

func (h *AdminHandler) DeleteBlog(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res, err := h.Cascade.DeleteBlog(c.Request().Context(), token(c), id)
	return cascadeResult(c, res, err)
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.DeleteOrder(c.Request().Context(), token(c), id)
	return relay(c, env, err)
}

func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.DeleteReservation(c.Request().Context(), token(c), id)
	return relay(c, env, err)
}

func (h *AdminHandler) DeletePromotion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.DeletePromotion(c.Request().Context(), token(c), id)
	return relay(c, env, err)
}

func (h *AdminHandler) GetUserRoles(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	env, err := h.Backend.GetUserRoles(c.Request().Context(), token(c), id)
	return relay(c, env, err)
}

type AddRoleRequest struct {
	Role string `json:"role"`
}

func (h *AdminHandler) AddUserRole(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req AddRoleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	v := validation.Violations{}
	validation.Required("role", req.Role, v)
	if !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.AddUserRole(c.Request().Context(), token(c), id, req.Role)
	return relay(c, env, err)
}

// validateCatalogItem shares the field checks of products and services.
func validateCatalogItem(title string, price float64, categoryID int64) validation.Violations {
	v := validation.Violations{}
	validation.Required("title", title, v)
	validation.PositiveFloat("price", price, v)
	validation.PositiveID("category_id", categoryID, v)
	return v
}

func violationsResponse(c echo.Context, v validation.Violations) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"status": "failed", "reason": "validation", "violations": v})
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var p entity.Product
	if err := c.Bind(&p); err != nil {
		return err
	}
	if v := validateCatalogItem(p.Title, p.Price, p.CategoryID); !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.CreateProduct(c.Request().Context(), token(c), p)
	return relay(c, env, err)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var p entity.Product
	if err := c.Bind(&p); err != nil {
		return err
	}
	if v := validateCatalogItem(p.Title, p.Price, p.CategoryID); !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.UpdateProduct(c.Request().Context(), token(c), p)
	return relay(c, env, err)
}

func (h *AdminHandler) CreateService(c echo.Context) error {
	var s entity.Service
	if err := c.Bind(&s); err != nil {
		return err
	}
	if v := validateCatalogItem(s.Title, s.Price, s.CategoryID); !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.CreateService(c.Request().Context(), token(c), s)
	return relay(c, env, err)
}

func (h *AdminHandler) UpdateService(c echo.Context) error {
	var s entity.Service
	if err := c.Bind(&s); err != nil {
		return err
	}
	if v := validateCatalogItem(s.Title, s.Price, s.CategoryID); !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.UpdateService(c.Request().Context(), token(c), s)
	return relay(c, env, err)
}

func (h *AdminHandler) CreateBlog(c echo.Context) error {
	var b entity.Blog
	if err := c.Bind(&b); err != nil {
		return err
	}
	v := validation.Violations{}
	validation.Required("title", b.Title, v)
	validation.Required("text", b.Text, v)
	validation.PositiveID("author_id", b.AuthorID, v)
	if !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.CreateBlog(c.Request().Context(), token(c), b)
	return relay(c, env, err)
}

type AddPictureRequest struct {
	URL     string `json:"url"`
	Owner   string `json:"owner"`
	OwnerID int64  `json:"owner_id"`
}

func (h *AdminHandler) AddPicture(c echo.Context) error {
	var req AddPictureRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	v := validation.Violations{}
	validation.Required("url", req.URL, v)
	validation.PositiveID("owner_id", req.OwnerID, v)
	var ownerKey string
	switch req.Owner {
	case "product":
		ownerKey = "product_id"
	case "service":
		ownerKey = "service_id"
	case "blog":
		ownerKey = "blog_id"
	default:
		v["owner"] = "must_be_product_service_or_blog"
	}
	if !v.Empty() {
		return violationsResponse(c, v)
	}
	env, err := h.Backend.AddPicture(c.Request().Context(), token(c), req.URL, ownerKey, req.OwnerID)
	return relay(c, env, err)
}

type CreatePromotionRequest struct {
	EntityType string  `json:"entity_type"`
	EntityID   int64   `json:"entity_id"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	NewPrice   float64 `json:"new_price"`
}

func (h *AdminHandler) CreatePromotion(c echo.Context) error {
	var req CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	v := validation.Violations{}
	validation.Required("entity_type", req.EntityType, v)
	validation.PositiveID("entity_id", req.EntityID, v)
	validation.PositiveFloat("new_price", req.NewPrice, v)
	if !validation.ValidDateRange(req.DateFrom, req.DateTo) {
		v["date_range"] = "invalid"
	}
	if !v.Empty() {
		return violationsResponse(c, v)
	}

	env, err := h.Backend.CreatePromotion(c.Request().Context(), token(c),
		req.EntityType, req.EntityID, req.DateFrom, req.DateTo, req.NewPrice)
	return relay(c, env, err)
}
