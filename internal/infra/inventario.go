package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrInventarioTimeout distinguishes a timed-out or unreachable upstream
// from a regular upstream error, so the handler can map it to 504.
var ErrInventarioTimeout = errors.New("inventario: el servicio externo no respondió a tiempo")

// ConsultaInventarioPayload is forwarded verbatim to the external inventory
// API; this backend adds nothing, it only proxies credentials.
type ConsultaInventarioPayload struct {
	Usuario string `json:"usuario"`
	Clave   string `json:"clave"`
	Codigo  string `json:"codigo,omitempty"`
}

// InventarioClient is an HTTP client for the third-party inventory API.
// Unlike the datastore calls, this one enforces a fixed request timeout.
type InventarioClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInventarioClient(baseURL string, timeout time.Duration) *InventarioClient {
	return &InventarioClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Consultar POSTs the query and returns the upstream body as-is.
func (c *InventarioClient) Consultar(ctx context.Context, payload ConsultaInventarioPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("inventario: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/consulta", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("inventario: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if esTimeout(err) {
			return nil, ErrInventarioTimeout
		}
		return nil, fmt.Errorf("inventario: servicio externo inalcanzable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventario: el servicio externo respondió %d", resp.StatusCode)
	}

	var result json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("inventario: decode response: %w", err)
	}
	return result, nil
}

func esTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
