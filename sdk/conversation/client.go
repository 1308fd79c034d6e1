// Package conversation is a client for the support desk ticket API. Besides
// the typed HTTP client it carries the polling and optimistic send layer a
// conversation view needs: Poller drives refreshes, Thread and TicketList keep
// local state that only changes when a poll brings a substantive difference,
// and History caches admin threads per ticket.
package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotModified is returned by the message list calls when the server answers
// 304 to the supplied ETag.
var ErrNotModified = errors.New("conversation: not modified")

// Server error types carried in APIError.Type.
const (
	ErrorTypeValidation         = "validation_error"
	ErrorTypeNotFound           = "not_found"
	ErrorTypeTicketClosed       = "ticket_closed"
	ErrorTypePreconditionFailed = "precondition_failed"
	ErrorTypeConflict           = "conflict"
	ErrorTypeUnauthorized       = "unauthorized"
	ErrorTypeForbidden          = "forbidden"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("api error: status=%d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status=%d type=%s: %s", e.StatusCode, e.Type, e.Message)
}

// ErrorType returns the server error type of err, or "" when err is not an APIError.
func ErrorType(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ""
}

// IsTicketClosed reports whether err rejects an append to a closed ticket.
func IsTicketClosed(err error) bool {
	return ErrorType(err) == ErrorTypeTicketClosed
}

// IsNotFound reports whether err is a missing or foreign ticket.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is the ticket API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a client. token is the bearer access token issued by the
// identity service.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTicket opens a ticket. An empty ticketType lets the server default it.
func (c *Client) CreateTicket(ctx context.Context, content, ticketType string) (*CreateTicketResult, error) {
	body := map[string]string{"content": content}
	if ticketType != "" {
		body["type"] = ticketType
	}

	var result CreateTicketResult
	if _, err := c.doRequest(ctx, http.MethodPost, "/tickets", nil, body, nil, &result); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &result, nil
}

// ListTickets returns the tickets of ownerID, oldest first. Zero means the caller.
func (c *Client) ListTickets(ctx context.Context, ownerID uint) ([]Ticket, error) {
	query := url.Values{}
	if ownerID != 0 {
		query.Set("ownerId", strconv.FormatUint(uint64(ownerID), 10))
	}

	var result itemsEnvelope[Ticket]
	if _, err := c.doRequest(ctx, http.MethodGet, "/tickets", query, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return result.Items, nil
}

// ListMessages fetches the thread of an own ticket. When etag is set and the
// thread is unchanged it returns ErrNotModified. The returned string is the
// ETag to send next time.
func (c *Client) ListMessages(ctx context.Context, ticketID uint, etag string) ([]Message, string, error) {
	return c.listMessages(ctx, fmt.Sprintf("/tickets/%d/messages", ticketID), etag)
}

// AppendMessage adds a user message to an own ticket.
func (c *Client) AppendMessage(ctx context.Context, ticketID uint, content string) (*AppendResult, error) {
	var result AppendResult
	path := fmt.Sprintf("/tickets/%d/messages", ticketID)
	if _, err := c.doRequest(ctx, http.MethodPost, path, nil, map[string]string{"content": content}, nil, &result); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &result, nil
}

// DeleteTicket removes a closed own ticket.
func (c *Client) DeleteTicket(ctx context.Context, ticketID uint) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/tickets/%d", ticketID), nil, nil, nil, nil); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// MarkRead acknowledges the given tickets. Staff only.
func (c *Client) MarkRead(ctx context.Context, ids []uint) (*MarkReadResult, error) {
	return c.markRead(ctx, map[string]any{"ids": ids})
}

// MarkAllRead acknowledges every unread ticket. Staff only.
func (c *Client) MarkAllRead(ctx context.Context) (*MarkReadResult, error) {
	return c.markRead(ctx, map[string]any{"all": true})
}

func (c *Client) markRead(ctx context.Context, body map[string]any) (*MarkReadResult, error) {
	var result MarkReadResult
	if _, err := c.doRequest(ctx, http.MethodPost, "/tickets/mark-read", nil, body, nil, &result); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return &result, nil
}

// AdminListTickets returns one page of all tickets matching filter.
func (c *Client) AdminListTickets(ctx context.Context, filter AdminFilter) (*TicketPage, error) {
	query := url.Values{}
	setIfNotEmpty(query, "status", filter.Status)
	setIfNotEmpty(query, "type", filter.Type)
	setIfNotEmpty(query, "query", filter.Query)
	if filter.OwnerID != 0 {
		query.Set("ownerId", strconv.FormatUint(uint64(filter.OwnerID), 10))
	}
	setPaging(query, filter.Page, filter.PageSize)

	var page TicketPage
	if _, err := c.doRequest(ctx, http.MethodGet, "/admin/tickets", query, nil, nil, &page); err != nil {
		return nil, fmt.Errorf("admin list tickets: %w", err)
	}
	return &page, nil
}

// AdminGroups returns the aggregation view for scope, one group per ticket type.
func (c *Client) AdminGroups(ctx context.Context, scope Scope, page, pageSize int) ([]TicketGroup, error) {
	query := url.Values{}
	setIfNotEmpty(query, "scope", string(scope))
	setPaging(query, page, pageSize)

	var result itemsEnvelope[TicketGroup]
	if _, err := c.doRequest(ctx, http.MethodGet, "/admin/tickets/groups", query, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("admin groups: %w", err)
	}
	return result.Items, nil
}

// AdminListMessages fetches any ticket's thread. See ListMessages for etag.
func (c *Client) AdminListMessages(ctx context.Context, ticketID uint, etag string) ([]Message, string, error) {
	return c.listMessages(ctx, fmt.Sprintf("/admin/tickets/%d/messages", ticketID), etag)
}

// Reply appends a staff message.
func (c *Client) Reply(ctx context.Context, ticketID uint, content string) (*AppendResult, error) {
	var result AppendResult
	path := fmt.Sprintf("/admin/tickets/%d/messages", ticketID)
	if _, err := c.doRequest(ctx, http.MethodPost, path, nil, map[string]string{"content": content}, nil, &result); err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	return &result, nil
}

// CloseTicket closes a ticket. Closing a closed ticket succeeds and keeps the original closedAt.
func (c *Client) CloseTicket(ctx context.Context, ticketID uint) (*CloseResult, error) {
	var result CloseResult
	if _, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/admin/tickets/%d/close", ticketID), nil, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("close ticket: %w", err)
	}
	return &result, nil
}

func (c *Client) listMessages(ctx context.Context, path, etag string) ([]Message, string, error) {
	var headers http.Header
	if etag != "" {
		headers = http.Header{}
		headers.Set("If-None-Match", etag)
	}

	var result itemsEnvelope[Message]
	respHeader, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, headers, &result)
	if errors.Is(err, ErrNotModified) {
		return nil, etag, ErrNotModified
	}
	if err != nil {
		return nil, "", fmt.Errorf("list messages: %w", err)
	}
	return result.Items, respHeader.Get("ETag"), nil
}

// doRequest performs an HTTP request and decodes the envelope's data into result.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, headers http.Header, result any) (http.Header, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return resp.Header, ErrNotModified
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if decodeErr == nil && apiResp.Error != nil {
			apiErr.Type = apiResp.Error.Type
			apiErr.Message = apiResp.Error.Message
		}
		return resp.Header, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if !apiResp.Success {
		return nil, fmt.Errorf("api error: %s", apiResp.Message)
	}

	if result == nil || len(apiResp.Data) == 0 {
		return resp.Header, nil
	}
	if err := json.Unmarshal(apiResp.Data, result); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}

	return resp.Header, nil
}

func setIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

func setPaging(query url.Values, page, pageSize int) {
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
}
