package backend

import (
	"context"
	"fmt"
	"net/http"

	"main/domain/entity"
	"main/pkg/customerrors"
)

// Catalog reads are public: no bearer token is attached.

func (c *Client) GetProducts(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/product", "", nil)
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*Envelope, error) {
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/product/%d", productID), "", nil)
}

func (c *Client) CreateProduct(ctx context.Context, token string, p entity.Product) (*Envelope, error) {
	if err := checkRequired(p.Title); err != nil {
		return nil, err
	}
	if err := checkID(p.CategoryID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/product", token, p)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, p entity.Product) (*Envelope, error) {
	if err := checkID(p.ID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, "/product", token, p)
}

// DeleteProduct removes the product record only; dependents are handled by
// the cascade orchestrator.
func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) (*Envelope, error) {
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/product/delete/%d", productID), token, nil)
}

// RemoveProductPictures deletes every picture attached to a product.
func (c *Client) RemoveProductPictures(ctx context.Context, token string, productID int64) (*Envelope, error) {
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/product/picture/remove/all", token, map[string]int64{"product_id": productID})
}

func (c *Client) GetServices(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/service", "", nil)
}

func (c *Client) GetService(ctx context.Context, serviceID int64) (*Envelope, error) {
	if err := checkID(serviceID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/service/%d", serviceID), "", nil)
}

func (c *Client) CreateService(ctx context.Context, token string, s entity.Service) (*Envelope, error) {
	if err := checkRequired(s.Title); err != nil {
		return nil, err
	}
	if err := checkID(s.CategoryID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/service", token, s)
}

func (c *Client) UpdateService(ctx context.Context, token string, s entity.Service) (*Envelope, error) {
	if err := checkID(s.ID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, "/service", token, s)
}

func (c *Client) DeleteService(ctx context.Context, token string, serviceID int64) (*Envelope, error) {
	if err := checkID(serviceID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/service/delete/%d", serviceID), token, nil)
}

// RemoveServicePictures deletes every picture attached to a service.
func (c *Client) RemoveServicePictures(ctx context.Context, token string, serviceID int64) (*Envelope, error) {
	if err := checkID(serviceID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/service/picture/remove/all", token, map[string]int64{"service_id": serviceID})
}

func (c *Client) GetCategories(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/category", "", nil)
}

func (c *Client) GetVehicleTypes(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/vehicle-type", "", nil)
}

// AddPicture attaches a picture URL to a product, service or blog.
func (c *Client) AddPicture(ctx context.Context, token, url string, ownerKey string, ownerID int64) (*Envelope, error) {
	if err := checkRequired(url, ownerKey); err != nil {
		return nil, err
	}
	if err := checkID(ownerID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/picture/add", token, map[string]any{
		"url":    url,
		ownerKey: ownerID,
	})
}

func (c *Client) GetPromotions(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/promotion", "", nil)
}

// CreatePromotion targets exactly one entity: entityType "product" sets
// product_id, "service" sets service_id, anything else never reaches the
// network.
func (c *Client) CreatePromotion(ctx context.Context, token, entityType string, entityID int64, dateFrom, dateTo string, newPrice float64) (*Envelope, error) {
	if err := checkID(entityID); err != nil {
		return nil, err
	}
	if err := checkRequired(dateFrom, dateTo); err != nil {
		return nil, err
	}
	body := map[string]any{
		"date_from": dateFrom,
		"date_to":   dateTo,
		"new_price": newPrice,
	}
	switch entityType {
	case "product":
		body["product_id"] = entityID
	case "service":
		body["service_id"] = entityID
	default:
		return nil, customerrors.ErrInvalidEntityType
	}
	return c.do(ctx, http.MethodPost, "/promotion", token, body)
}

func (c *Client) DeletePromotion(ctx context.Context, token string, promotionID int64) (*Envelope, error) {
	if err := checkID(promotionID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/promotion/delete/%d", promotionID), token, nil)
}

// DeletePromotionsByProduct removes every promotion referencing a product.
func (c *Client) DeletePromotionsByProduct(ctx context.Context, token string, productID int64) (*Envelope, error) {
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/promotion/delete/product/%d", productID), token, nil)
}

// DeletePromotionsByService removes every promotion referencing a service.
func (c *Client) DeletePromotionsByService(ctx context.Context, token string, serviceID int64) (*Envelope, error) {
	if err := checkID(serviceID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/promotion/delete/service/%d", serviceID), token, nil)
}
