package api

import (
	"context"
	"net/http"

	"github.com/avmoreira/despensa-web/internal/model"
)

type SubscriptionInput struct {
	Plan string `json:"plano"`
}

// CreateSubscription starts a subscription on the given plan
// ("mensal" or "anual").
func (c *Client) CreateSubscription(ctx context.Context, plan string) (*model.Subscription, error) {
	var out model.Subscription
	if err := c.do(ctx, http.MethodPost, "/assinaturas/", nil, SubscriptionInput{Plan: plan}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MySubscription returns the caller's active subscription.
func (c *Client) MySubscription(ctx context.Context) (*model.Subscription, error) {
	var out model.Subscription
	if err := c.do(ctx, http.MethodGet, "/assinaturas/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription cancels the caller's active subscription.
func (c *Client) CancelSubscription(ctx context.Context) (*model.Subscription, error) {
	var out model.Subscription
	if err := c.do(ctx, http.MethodPatch, "/assinaturas/me/cancelar", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
