// Package shopbridge sincroniza en segundo plano los pedidos de la tienda
// WooCommerce hacia una caché local de solo lectura. Es independiente del
// libro de movimientos: nunca escribe stock.
package shopbridge

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/prodflux/prodflux-api/pkg/config"
)

// Order pedido de la tienda tal como lo expone la API de WooCommerce.
type Order struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	Total       string     `json:"total"`
	Currency    string     `json:"currency"`
	DateCreated string     `json:"date_created"`
	LineItems   []LineItem `json:"line_items"`
}

// LineItem línea de pedido de la tienda.
type LineItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// Fetcher obtiene los pedidos de la tienda. El cliente real lo implementa;
// las pruebas lo sustituyen.
type Fetcher interface {
	FetchOrders(ctx context.Context) ([]Order, error)
}

var _ Fetcher = (*Client)(nil)

// Client cliente HTTP de la API REST de WooCommerce (autenticación por
// consumer key/secret en query params).
type Client struct {
	http           *resty.Client
	consumerKey    string
	consumerSecret string
}

// NewClient construye el cliente con la configuración del puente.
func NewClient(cfg config.ShopbridgeConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)

	return &Client{
		http:           httpClient,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
	}
}

// FetchOrders trae los pedidos más recientes de la tienda.
func (c *Client) FetchOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"consumer_key":    c.consumerKey,
			"consumer_secret": c.consumerSecret,
			"per_page":        "50",
			"orderby":         "date",
			"order":           "desc",
		}).
		SetResult(&orders).
		Get("/wp-json/wc/v3/orders")
	if err != nil {
		return nil, fmt.Errorf("fetch shop orders: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch shop orders: la tienda respondió %s", resp.Status())
	}
	return orders, nil
}
