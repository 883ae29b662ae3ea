package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planovahq/planova-api/internal/handlers"
	"github.com/planovahq/planova-api/internal/models"
)

func TestCartAdd_Success(t *testing.T) {
	mockCart := &handlers.MockCartService{
		AddToCartFunc: func(ctx context.Context, services, addons []string) (*models.CartSelection, error) {
			return &models.CartSelection{ID: "cart123", Services: services, Addons: addons}, nil
		},
	}

	handler := handlers.NewCartHandler(mockCart)
	req := handlers.NewTestRequest(t, "POST", "/api/cart", handlers.AddToCartRequest{
		Services: []string{"Wedding Planning"},
		Addons:   []string{"Photography"},
	})

	w := httptest.NewRecorder()
	handler.Add(w, req)

	var resp map[string]any
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "Added to cart", resp["message"])
}

func TestCartAdd_EmptySelection(t *testing.T) {
	mockCart := &handlers.MockCartService{
		AddToCartFunc: func(ctx context.Context, services, addons []string) (*models.CartSelection, error) {
			return nil, models.NewValidationError("", "Please select at least one service or addon")
		},
	}

	handler := handlers.NewCartHandler(mockCart)
	req := handlers.NewTestRequest(t, "POST", "/api/cart", handlers.AddToCartRequest{})

	w := httptest.NewRecorder()
	handler.Add(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestCartList(t *testing.T) {
	mockCart := &handlers.MockCartService{
		GetCartFunc: func(ctx context.Context) ([]*models.CartSelection, error) {
			return []*models.CartSelection{{ID: "cart1"}, {ID: "cart2"}}, nil
		},
	}

	handler := handlers.NewCartHandler(mockCart)
	req := handlers.NewTestRequest(t, "GET", "/api/cart", nil)

	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp []*models.CartSelection
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Len(t, resp, 2)
}

func TestCartList_EmptyReturnsArray(t *testing.T) {
	mockCart := &handlers.MockCartService{
		GetCartFunc: func(ctx context.Context) ([]*models.CartSelection, error) {
			return nil, nil
		},
	}

	handler := handlers.NewCartHandler(mockCart)
	req := handlers.NewTestRequest(t, "GET", "/api/cart", nil)

	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCartClear(t *testing.T) {
	mockCart := &handlers.MockCartService{}

	handler := handlers.NewCartHandler(mockCart)
	req := handlers.NewTestRequest(t, "DELETE", "/api/cart", nil)

	w := httptest.NewRecorder()
	handler.Clear(w, req)

	var resp map[string]string
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Cart cleared", resp["message"])
}
