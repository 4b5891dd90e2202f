package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sinanfen/todogether-cli/pkg/domain"
)

// CreateTodoListRequest is the payload for creating a todo list.
type CreateTodoListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ColorCode   string `json:"colorCode,omitempty"`
}

// UpdateTodoListRequest carries the fields to change on a todo list.
// Nil fields are left untouched.
type UpdateTodoListRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ColorCode   *string `json:"colorCode,omitempty"`
}

// CreateTodoItemRequest is the payload for adding an item to a list.
type CreateTodoItemRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Severity    domain.Severity `json:"severity"`
}

// UpdateTodoItemRequest carries the fields to change on a todo item.
// Nil fields are left untouched.
type UpdateTodoItemRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Severity    *domain.Severity `json:"severity,omitempty"`
	Status      *domain.Status   `json:"status,omitempty"`
	Order       *int             `json:"order,omitempty"`
}

// Health checks whether the API answers at all.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/", nil, nil); err != nil {
		return fmt.Errorf("client.Health: %w", err)
	}
	return nil
}

// ListTodoLists fetches the authenticated user's own todo lists.
func (c *Client) ListTodoLists(ctx context.Context) ([]domain.TodoList, error) {
	var lists []domain.TodoList
	if err := c.get(ctx, "/todolists", &lists); err != nil {
		return nil, fmt.Errorf("client.ListTodoLists: %w", err)
	}
	return lists, nil
}

// PartnerTodoLists fetches the partner's todo lists.
func (c *Client) PartnerTodoLists(ctx context.Context) ([]domain.TodoList, error) {
	var lists []domain.TodoList
	if err := c.get(ctx, "/todolists/partner", &lists); err != nil {
		return nil, fmt.Errorf("client.PartnerTodoLists: %w", err)
	}
	return lists, nil
}

// PartnerOverview fetches the partner's profile together with their lists.
// Returns (nil, nil) when no partner has been paired yet.
func (c *Client) PartnerOverview(ctx context.Context) (*domain.PartnerOverview, error) {
	var overview domain.PartnerOverview
	if err := c.get(ctx, "/partner/overview", &overview); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("client.PartnerOverview: %w", err)
	}
	return &overview, nil
}

// CreateTodoList creates a new todo list.
func (c *Client) CreateTodoList(ctx context.Context, req CreateTodoListRequest) (*domain.TodoList, error) {
	var created domain.TodoList
	if err := c.post(ctx, "/todolists", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTodoList: %w", err)
	}
	return &created, nil
}

// UpdateTodoList updates a todo list.
func (c *Client) UpdateTodoList(ctx context.Context, id uuid.UUID, req UpdateTodoListRequest) (*domain.TodoList, error) {
	var updated domain.TodoList
	if err := c.put(ctx, "/todolists/"+id.String(), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateTodoList: %w", err)
	}
	return &updated, nil
}

// DeleteTodoList deletes a todo list together with its items.
func (c *Client) DeleteTodoList(ctx context.Context, id uuid.UUID) error {
	if err := c.delete(ctx, "/todolists/"+id.String()); err != nil {
		return fmt.Errorf("client.DeleteTodoList: %w", err)
	}
	return nil
}

// ListTodoItems fetches the items of one todo list.
func (c *Client) ListTodoItems(ctx context.Context, listID uuid.UUID) ([]domain.TodoItem, error) {
	var items []domain.TodoItem
	if err := c.get(ctx, "/todolists/"+listID.String()+"/items", &items); err != nil {
		return nil, fmt.Errorf("client.ListTodoItems: %w", err)
	}
	return items, nil
}

// CreateTodoItem adds an item to a todo list.
func (c *Client) CreateTodoItem(ctx context.Context, listID uuid.UUID, req CreateTodoItemRequest) (*domain.TodoItem, error) {
	var created domain.TodoItem
	if err := c.post(ctx, "/todolists/"+listID.String()+"/items", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTodoItem: %w", err)
	}
	return &created, nil
}

// UpdateTodoItem updates an item in a todo list.
func (c *Client) UpdateTodoItem(ctx context.Context, listID, itemID uuid.UUID, req UpdateTodoItemRequest) (*domain.TodoItem, error) {
	var updated domain.TodoItem
	if err := c.put(ctx, "/todolists/"+listID.String()+"/items/"+itemID.String(), req, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateTodoItem: %w", err)
	}
	return &updated, nil
}

// DeleteTodoItem removes an item from a todo list.
func (c *Client) DeleteTodoItem(ctx context.Context, listID, itemID uuid.UUID) error {
	if err := c.delete(ctx, "/todolists/"+listID.String()+"/items/"+itemID.String()); err != nil {
		return fmt.Errorf("client.DeleteTodoItem: %w", err)
	}
	return nil
}
