package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// DefaultLimit is the default number of items per page.
const DefaultLimit = 20

// MaxLimit is the maximum allowed items per page.
const MaxLimit = 100

// Cursor errors.
var (
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor signals a first page request.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest represents pagination parameters from the query string.
type PaginationRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`

	// Limit is the maximum number of items to return (1-100, default 20).
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// DecodeCursor decodes the cursor. Returns ErrNoCursor when it is empty.
func (p *PaginationRequest) DecodeCursor() (*CursorData, error) {
	return DecodeCursor(p.Cursor)
}

// PaginatedResponse is a page of items in document order.
type PaginatedResponse[T any] struct {
	Items []T `json:"items"`

	// NextCursor is empty on the last page.
	NextCursor string `json:"nextCursor,omitempty"`

	HasMore bool `json:"hasMore"`
}

// CursorData locates a page within an ordered result. Offset is the
// number of items already served; ID is the last of them. A catalog
// reload that moves that item invalidates the cursor.
type CursorData struct {
	Offset int    `json:"o"`
	ID     string `json:"id"`
}

// EncodeCursor encodes cursor data to a URL-safe string.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor decodes a cursor string. Returns ErrNoCursor if empty.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	b, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}

// Paginate returns the page of items selected by req. idOf names each
// item so the cursor can be checked against the current result.
func Paginate[T any](items []T, req *PaginationRequest, idOf func(T) string) (*PaginatedResponse[T], error) {
	start := 0

	cursor, err := req.DecodeCursor()

	switch {
	case errors.Is(err, ErrNoCursor):
	case err != nil:
		return nil, err
	default:
		if cursor.Offset < 1 || cursor.Offset > len(items) || idOf(items[cursor.Offset-1]) != cursor.ID {
			return nil, ErrInvalidCursor
		}

		start = cursor.Offset
	}

	end := min(start+req.GetLimit(), len(items))

	resp := &PaginatedResponse[T]{
		Items:   make([]T, 0, end-start),
		HasMore: end < len(items),
	}
	resp.Items = append(resp.Items, items[start:end]...)

	if resp.HasMore {
		resp.NextCursor = EncodeCursor(&CursorData{Offset: end, ID: idOf(items[end-1])})
	}

	return resp, nil
}
