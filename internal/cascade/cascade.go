package cascade

import (
	"context"
	"log/slog"

	"main/internal/backend"
	"main/pkg/customerrors"
)

// Orchestrator removes an entity together with everything that would
// otherwise be orphaned. The platform's backend enforces no cascading
// deletes, so dependents are deleted first, one class at a time, in a fixed
// order. Steps run strictly sequentially; a step starts only after the
// previous one settled.
//
// Partial-failure policy: remaining dependent classes are still attempted
// best-effort so as much cleanup as possible happens, but the parent delete
// is skipped whenever any dependent step failed. Removing the parent out
// from under live dependents would create exactly the orphans the cascade
// exists to prevent.
type Orchestrator struct {
	api *backend.Client
	log *slog.Logger
}

func NewOrchestrator(api *backend.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{api: api, log: log}
}

// StepFailure records one dependent-deletion step that did not succeed.
type StepFailure struct {
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

// Result is the structured outcome of one cascade delete.
type Result struct {
	ParentDeleted     bool          `json:"parent_deleted"`
	DependentFailures []StepFailure `json:"dependent_failures,omitempty"`
}

// Incomplete reports whether any part of the cascade did not finish.
func (r Result) Incomplete() bool {
	return !r.ParentDeleted || len(r.DependentFailures) > 0
}

type step struct {
	name string
	call func(ctx context.Context) (*backend.Envelope, error)
}

// DeleteUser removes a user and every record that references them:
// role bindings, reservations, orders, blog posts, then the user itself.
func (o *Orchestrator) DeleteUser(ctx context.Context, token string, userID int64) (Result, error) {
	if userID <= 0 {
		return Result{}, customerrors.ErrInvalidID
	}
	deps := []step{
		{"unassign_roles", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.UnassignUserRoles(ctx, token, userID)
		}},
		{"delete_reservations", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeleteReservationsByUser(ctx, token, userID)
		}},
		{"delete_orders", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeleteOrdersByCustomer(ctx, token, userID)
		}},
		{"delete_blogs", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeleteBlogsByAuthor(ctx, token, userID)
		}},
	}
	parent := step{"delete_user", func(ctx context.Context) (*backend.Envelope, error) {
		return o.api.DeleteUser(ctx, token, userID)
	}}
	return o.run(ctx, "user", userID, deps, parent), nil
}

// DeleteProduct removes a product after its promotions, pictures and the
// orders containing it.
func (o *Orchestrator) DeleteProduct(ctx context.Context, token string, productID int64) (Result, error) {
	if productID <= 0 {
		return Result{}, customerrors.ErrInvalidID
	}
	deps := []step{
		{"delete_promotions", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeletePromotionsByProduct(ctx, token, productID)
		}},
		{"remove_pictures", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.RemoveProductPictures(ctx, token, productID)
		}},
		{"delete_orders", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeleteOrdersByProduct(ctx, token, productID)
		}},
	}
	parent := step{"delete_product", func(ctx context.Context) (*backend.Envelope, error) {
		return o.api.DeleteProduct(ctx, token, productID)
	}}
	return o.run(ctx, "product", productID, deps, parent), nil
}

// DeleteService removes a service after its promotions, pictures and the
// reservations referencing it. Reservation cleanup is part of the sequence
// unconditionally, regardless of where the delete was triggered from.
func (o *Orchestrator) DeleteService(ctx context.Context, token string, serviceID int64) (Result, error) {
	if serviceID <= 0 {
		return Result{}, customerrors.ErrInvalidID
	}
	deps := []step{
		{"delete_promotions", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeletePromotionsByService(ctx, token, serviceID)
		}},
		{"remove_pictures", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.RemoveServicePictures(ctx, token, serviceID)
		}},
		{"delete_reservations", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.DeleteReservationsByService(ctx, token, serviceID)
		}},
	}
	parent := step{"delete_service", func(ctx context.Context) (*backend.Envelope, error) {
		return o.api.DeleteService(ctx, token, serviceID)
	}}
	return o.run(ctx, "service", serviceID, deps, parent), nil
}

// DeleteBlog removes a blog post after its pictures.
func (o *Orchestrator) DeleteBlog(ctx context.Context, token string, blogID int64) (Result, error) {
	if blogID <= 0 {
		return Result{}, customerrors.ErrInvalidID
	}
	deps := []step{
		{"remove_pictures", func(ctx context.Context) (*backend.Envelope, error) {
			return o.api.RemoveBlogPictures(ctx, token, blogID)
		}},
	}
	parent := step{"delete_blog", func(ctx context.Context) (*backend.Envelope, error) {
		return o.api.DeleteBlog(ctx, token, blogID)
	}}
	return o.run(ctx, "blog", blogID, deps, parent), nil
}

func (o *Orchestrator) run(ctx context.Context, entityName string, id int64, deps []step, parent step) Result {
	var res Result
	for _, s := range deps {
		if reason, ok := o.exec(ctx, entityName, id, s); !ok {
			res.DependentFailures = append(res.DependentFailures, StepFailure{Step: s.name, Reason: reason})
		}
	}
	if len(res.DependentFailures) > 0 {
		o.log.Warn("cascade cleanup incomplete, parent kept",
			"entity", entityName, "id", id, "failed_steps", len(res.DependentFailures))
		return res
	}
	if _, ok := o.exec(ctx, entityName, id, parent); !ok {
		return res
	}
	res.ParentDeleted = true
	return res
}

// exec runs one step and reports its outcome; a failure reason is either the
// transport error or the backend's stated reason.
func (o *Orchestrator) exec(ctx context.Context, entityName string, id int64, s step) (string, bool) {
	env, err := s.call(ctx)
	status := "ok"
	reason := ""
	switch {
	case err != nil:
		status = "error"
		reason = err.Error()
	case !env.OK():
		status = "failed"
		reason = env.Reason
	}
	o.api.Metrics.CascadeSteps.WithLabelValues(entityName, s.name, status).Inc()
	if status != "ok" {
		o.log.Error("cascade step failed",
			"entity", entityName, "id", id, "step", s.name, "reason", reason)
		return reason, false
	}
	return "", true
}
