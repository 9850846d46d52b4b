package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// ChatListOptions contains options for listing chats. Direction is "asc"
// or "desc" ("desc" when empty).
type ChatListOptions struct {
	Limit     int
	Direction string
	Cursor    string
}

// ListChats fetches a single page of chats. The API caps chat pages at
// 100 entries and defaults to 50.
func (api *LimitlessAPI) ListChats(opts ChatListOptions) (*ChatPage, error) {
	direction := opts.Direction
	if direction == "" {
		direction = "desc"
	}

	params := map[string]string{
		"limit":     strconv.Itoa(clampLimit(opts.Limit, core.ChatDefaultLimit, core.ChatPageLimit)),
		"direction": direction,
	}
	if opts.Cursor != "" {
		params["cursor"] = opts.Cursor
	}

	body, err := api.transport.Request(http.MethodGet, "chats", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			Chats      []Chat `json:"chats"`
			NextCursor string `json:"nextCursor"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse chats response: %w", err)
	}

	return &ChatPage{
		Chats:      envelope.Data.Chats,
		NextCursor: envelope.Data.NextCursor,
	}, nil
}

// GetChat fetches a single chat by ID.
func (api *LimitlessAPI) GetChat(id string) (*Chat, error) {
	body, err := api.transport.Request(http.MethodGet, "chats/"+id, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}

	var wrapper struct {
		Chat *Chat `json:"chat"`
	}
	if err := json.Unmarshal(envelope.Data, &wrapper); err == nil && wrapper.Chat != nil {
		return wrapper.Chat, nil
	}

	var chat Chat
	if err := json.Unmarshal(envelope.Data, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", err)
	}
	return &chat, nil
}

// DeleteChat deletes a chat. The returned bool reports whether the server
// acknowledged the deletion.
func (api *LimitlessAPI) DeleteChat(id string) (bool, error) {
	body, err := api.transport.Request(http.MethodDelete, "chats/"+id, nil)
	if err != nil {
		return false, err
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false, fmt.Errorf("failed to parse delete response: %w", err)
	}
	return envelope.Success, nil
}

// GetAllChats fetches every chat in the given sort direction, following
// pagination until the server reports no more pages. Pages are requested
// at the API maximum to keep the request count down.
func (api *LimitlessAPI) GetAllChats(direction string) ([]Chat, error) {
	return CollectPages(func(cursor string) ([]Chat, string, error) {
		page, err := api.ListChats(ChatListOptions{
			Limit:     core.ChatPageLimit,
			Direction: direction,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, "", err
		}
		return page.Chats, page.NextCursor, nil
	})
}
