package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"livin/internal/model"

	"github.com/gorilla/websocket"
)

type (
	loginResponse struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}

	historyResponse struct {
		Messages []model.Message `json:"messages"`
	}
)

func (c *App) login(email, password string) (*loginResponse, error) {
	u := url.URL{
		Scheme: "http",
		Host:   c.host,
		Path:   "/auth/login",
	}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	resp, err := http.Post(u.String(), "application/json", strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	defer io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed: %s", resp.Status)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (c *App) fetchHistory(recipientID string) ([]model.Message, error) {
	u := url.URL{
		Scheme: "http",
		Host:   c.host,
		Path:   fmt.Sprintf("/api/messages/%s", recipientID),
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	defer io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch history failed: %s", resp.Status)
	}

	var hr historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, err
	}
	return hr.Messages, nil
}

func (c *App) dialChat() (*websocket.Conn, error) {
	params := url.Values{
		"token": []string{c.token},
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     c.host,
		Path:     "/ws",
		RawQuery: params.Encode(),
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
