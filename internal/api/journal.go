package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetJournalEntry returns the entry stored for date. The service answers
// null for days without an entry; that is reported as (nil, nil).
func (c *Client) GetJournalEntry(ctx context.Context, date Date) (*JournalEntry, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("journal date cannot be empty")
	}
	var raw json.RawMessage
	if err := c.Get(ctx, "/journal/"+date.String(), &raw); err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", date, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var entry JournalEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode journal entry: %w", err)
	}
	return &entry, nil
}

// SaveJournalEntry upserts the entry for entry.Date.
func (c *Client) SaveJournalEntry(ctx context.Context, entry JournalEntry) (*JournalEntry, error) {
	if entry.Date.IsZero() {
		return nil, fmt.Errorf("journal date cannot be empty")
	}
	var saved JournalEntry
	if err := c.do(ctx, http.MethodPost, "/journal", entry, &saved); err != nil {
		return nil, fmt.Errorf("failed to save journal entry %s: %w", entry.Date, err)
	}
	return &saved, nil
}
