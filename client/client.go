// Package client — Go-клиент API планировщика маршрутов.
//
// Клиент держит локальную копию маршрута и применяет изменения
// оптимистично: копия обновляется до запроса к серверу, при успехе
// сбрасывается (следующее чтение перечитает с сервера), при ошибке
// откатывается к снимку, снятому перед изменением.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const apiPrefix = "/api/v1"

// Client — клиент API планировщика маршрутов. Безопасен для
// использования из нескольких горутин.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	token  string
	cached *Itinerary
}

// User — публичное представление пользователя в ответах API.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// envelope — стандартный конверт ответа сервера.
type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// New создает Client для сервера по адресу baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewFromEnv создает Client из переменных окружения с префиксом ITINERARY
// (ITINERARY_BASE_URL, ITINERARY_HTTP_TIMEOUT, ITINERARY_TOKEN).
// Явные опции применяются поверх окружения.
func NewFromEnv(opts ...Option) (*Client, error) {
	env, err := loadEnvOptions()
	if err != nil {
		return nil, err
	}
	base := []Option{WithHTTPTimeout(env.HTTPTimeout)}
	if env.Token != "" {
		base = append(base, WithToken(env.Token))
	}
	return New(env.BaseURL, append(base, opts...)...)
}

// Token возвращает текущий сессионный токен или пустую строку.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Register создает учётную запись и открывает сессию.
func (c *Client) Register(ctx context.Context, email, name, password string) (*User, error) {
	body := map[string]string{"email": email, "name": name, "password": password}
	data, err := c.do(ctx, "register", http.MethodPost, "/auth/register", body)
	if err != nil {
		return nil, err
	}
	return c.adoptSession(data)
}

// Login проверяет учётные данные и открывает сессию.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.do(ctx, "login", http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	return c.adoptSession(data)
}

// Logout закрывает сессию на сервере и сбрасывает токен и кеш.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = ""
	c.cached = nil
	c.mu.Unlock()
	return nil
}

// Me возвращает владельца текущей сессии или nil, если сессии нет.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, "me", http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode me response: %w", err)
	}
	return payload.User, nil
}

// Itinerary возвращает маршрут владельца сессии. Локальная копия, если
// она есть, возвращается без похода на сервер. Возвращаемое значение
// не разделяет карту дней с локальной копией, его можно менять.
func (c *Client) Itinerary(ctx context.Context) (Itinerary, error) {
	c.mu.Lock()
	if c.cached != nil {
		cached := cloneItinerary(*c.cached)
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	data, err := c.do(ctx, "fetch", http.MethodGet, "/itinerary", nil)
	if err != nil {
		return Itinerary{}, err
	}
	var payload struct {
		Itinerary Itinerary `json:"itinerary"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Itinerary{}, fmt.Errorf("decode itinerary response: %w", err)
	}
	if payload.Itinerary.Days == nil {
		payload.Itinerary.Days = make(map[string]DayDetails)
	}

	c.mu.Lock()
	c.cached = &payload.Itinerary
	cached := cloneItinerary(*c.cached)
	c.mu.Unlock()
	return cached, nil
}

// cloneItinerary возвращает копию маршрута с собственной картой дней.
func cloneItinerary(src Itinerary) Itinerary {
	days := make(map[string]DayDetails, len(src.Days))
	for k, v := range src.Days {
		days[k] = v
	}
	src.Days = days
	return src
}

// SaveItinerary сохраняет маршрут целиком. Локальная копия обновляется
// до запроса; при успехе она сбрасывается, при ошибке откатывается.
func (c *Client) SaveItinerary(ctx context.Context, itinerary Itinerary) error {
	speculative := cloneItinerary(itinerary)
	snapshot := c.speculate(&speculative)

	if _, err := c.do(ctx, "save", http.MethodPost, "/itinerary", itinerary); err != nil {
		c.rollback(snapshot)
		return err
	}

	c.invalidate()
	return nil
}

// ClearItinerary удаляет маршрут на сервере. Локальная копия
// оптимистично заменяется пустым маршрутом с сегодняшней датой старта;
// при ошибке возвращается прежнее состояние.
func (c *Client) ClearItinerary(ctx context.Context) error {
	fresh := EmptyItinerary()
	fresh.StartDate = time.Now().Format(DateKeyFormat)
	snapshot := c.speculate(&fresh)

	if _, err := c.do(ctx, "clear", http.MethodDelete, "/itinerary", nil); err != nil {
		c.rollback(snapshot)
		return err
	}

	c.invalidate()
	return nil
}

// SetStartDate сохраняет маршрут с новой датой старта, не трогая дни.
func (c *Client) SetStartDate(ctx context.Context, startDate string) error {
	itinerary, err := c.Itinerary(ctx)
	if err != nil {
		return err
	}
	itinerary.StartDate = startDate
	return c.SaveItinerary(ctx, itinerary)
}

// SetDay сохраняет маршрут с обновлённым днём по ключу dateKey.
func (c *Client) SetDay(ctx context.Context, dateKey string, day DayDetails) error {
	itinerary, err := c.Itinerary(ctx)
	if err != nil {
		return err
	}
	if itinerary.Days == nil {
		itinerary.Days = make(map[string]DayDetails)
	}
	itinerary.Days[dateKey] = day
	return c.SaveItinerary(ctx, itinerary)
}

// TripWindow возвращает ключи дней 25-дневного окна поездки по
// текущей дате старта. Пустая дата старта дает пустой список.
func (c *Client) TripWindow(ctx context.Context) ([]string, error) {
	itinerary, err := c.Itinerary(ctx)
	if err != nil {
		return nil, err
	}
	return TripDates(itinerary.StartDate), nil
}

// RemoveDay сохраняет маршрут без дня с ключом dateKey.
func (c *Client) RemoveDay(ctx context.Context, dateKey string) error {
	itinerary, err := c.Itinerary(ctx)
	if err != nil {
		return err
	}
	delete(itinerary.Days, dateKey)
	return c.SaveItinerary(ctx, itinerary)
}

// speculate заменяет локальную копию на next и возвращает снимок
// прежнего состояния для возможного отката.
func (c *Client) speculate(next *Itinerary) *Itinerary {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.cached
	c.cached = next
	return snapshot
}

// rollback возвращает локальную копию к снимку.
func (c *Client) rollback(snapshot *Itinerary) {
	c.mu.Lock()
	c.cached = snapshot
	c.mu.Unlock()
	rollbacksTotal.Inc()
}

// invalidate сбрасывает локальную копию, следующее чтение перечитает
// маршрут с сервера.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// adoptSession разбирает ответ register/login и сохраняет токен сессии.
func (c *Client) adoptSession(data json.RawMessage) (*User, error) {
	var payload struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	c.mu.Lock()
	c.token = payload.Token
	c.cached = nil
	c.mu.Unlock()
	return payload.User, nil
}

// do выполняет запрос к API и возвращает поле data конверта ответа.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode >= 400 || env.Status != "OK" {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, apiError(resp.StatusCode, env.Error)
	}

	requestsTotal.WithLabelValues(op, "ok").Inc()
	return env.Data, nil
}

// apiError приводит ответ сервера к ошибке клиента; известные ответы
// получают сентинельные ошибки.
func apiError(status int, msg string) error {
	switch {
	case status == http.StatusUnauthorized && msg == "unauthenticated":
		return ErrUnauthenticated
	case status == http.StatusUnauthorized && msg == "invalid credentials":
		return ErrInvalidCredentials
	case status == http.StatusConflict && msg == "email already taken":
		return ErrEmailTaken
	case status == http.StatusNotFound && msg == "no itinerary to delete":
		return ErrNoItinerary
	default:
		return fmt.Errorf("server returned %d: %s", status, msg)
	}
}
