package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ListTodos returns all todos of the authenticated user in the order the
// service returns them.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	todos := make([]Todo, 0)
	if err := c.Get(ctx, "/todos", &todos); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo creates a new todo. text is trimmed and must not be empty;
// dueDate may be nil.
func (c *Client) CreateTodo(ctx context.Context, text string, dueDate *Date, category string) (*Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("todo text cannot be empty")
	}
	req := CreateTodoRequest{
		Text:     text,
		DueDate:  dueDate,
		Category: strings.TrimSpace(category),
	}
	var todo Todo
	if err := c.Post(ctx, "/todos", req, &todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo applies a partial update and returns the stored todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch TodoPatch) (*Todo, error) {
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return nil, fmt.Errorf("todo text cannot be empty")
	}
	var todo Todo
	if err := c.Patch(ctx, "/todos/"+url.PathEscape(id), patch, &todo); err != nil {
		return nil, fmt.Errorf("failed to update todo %s: %w", id, err)
	}
	return &todo, nil
}

// SetDone marks a todo as done or open.
func (c *Client) SetDone(ctx context.Context, id string, done bool) (*Todo, error) {
	return c.UpdateTodo(ctx, id, TodoPatch{Done: &done})
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/todos/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	return nil
}
