package backend

import (
	"context"
	"fmt"
	"net/http"

	"main/domain/entity"
)

func (c *Client) GetOrders(ctx context.Context, token string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/order", token, nil)
}

func (c *Client) CreateOrder(ctx context.Context, token string, o entity.Order) (*Envelope, error) {
	if err := checkID(o.CustomerID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/order", token, o)
}

// AddOrderProduct links a product into an existing order.
func (c *Client) AddOrderProduct(ctx context.Context, token string, orderID, productID int64) (*Envelope, error) {
	if err := checkID(orderID); err != nil {
		return nil, err
	}
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/order/product/add", token, map[string]int64{
		"order_id":   orderID,
		"product_id": productID,
	})
}

func (c *Client) DeleteOrder(ctx context.Context, token string, orderID int64) (*Envelope, error) {
	if err := checkID(orderID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/order/delete/%d", orderID), token, nil)
}

// DeleteOrdersByCustomer removes every order placed by a customer.
func (c *Client) DeleteOrdersByCustomer(ctx context.Context, token string, customerID int64) (*Envelope, error) {
	if err := checkID(customerID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/order/delete/customer/%d", customerID), token, nil)
}

// DeleteOrdersByProduct removes every order containing a product.
func (c *Client) DeleteOrdersByProduct(ctx context.Context, token string, productID int64) (*Envelope, error) {
	if err := checkID(productID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/order/delete/product/%d", productID), token, nil)
}

func (c *Client) GetReservations(ctx context.Context, token string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/reservation", token, nil)
}

func (c *Client) CreateReservation(ctx context.Context, token string, r entity.Reservation) (*Envelope, error) {
	if err := checkID(r.UserID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/reservation", token, r)
}

func (c *Client) DeleteReservation(ctx context.Context, token string, reservationID int64) (*Envelope, error) {
	if err := checkID(reservationID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservation/delete/%d", reservationID), token, nil)
}

// DeleteReservationsByUser removes every reservation made by a user.
func (c *Client) DeleteReservationsByUser(ctx context.Context, token string, userID int64) (*Envelope, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservation/delete/user/%d", userID), token, nil)
}

// DeleteReservationsByService removes every reservation referencing a service.
func (c *Client) DeleteReservationsByService(ctx context.Context, token string, serviceID int64) (*Envelope, error) {
	if err := checkID(serviceID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservation/delete/service/%d", serviceID), token, nil)
}

func (c *Client) GetBlogs(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, "/blog", "", nil)
}

func (c *Client) GetBlog(ctx context.Context, blogID int64) (*Envelope, error) {
	if err := checkID(blogID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/blog/%d", blogID), "", nil)
}

func (c *Client) CreateBlog(ctx context.Context, token string, b entity.Blog) (*Envelope, error) {
	if err := checkRequired(b.Title, b.Text); err != nil {
		return nil, err
	}
	if err := checkID(b.AuthorID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/blog", token, b)
}

// RemoveBlogPictures deletes every picture attached to a blog post.
func (c *Client) RemoveBlogPictures(ctx context.Context, token string, blogID int64) (*Envelope, error) {
	if err := checkID(blogID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/blog/picture/remove/all", token, map[string]int64{"blog_id": blogID})
}

func (c *Client) DeleteBlog(ctx context.Context, token string, blogID int64) (*Envelope, error) {
	if err := checkID(blogID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blog/delete/%d", blogID), token, nil)
}

// DeleteBlogsByAuthor removes every blog post written by a user.
func (c *Client) DeleteBlogsByAuthor(ctx context.Context, token string, authorID int64) (*Envelope, error) {
	if err := checkID(authorID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blog/delete/author/%d", authorID), token, nil)
}
