package otp

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/kimnewzealand/opentripplanner/config"
)

// Connection addresses a running OTP instance. It is the only structured
// state this layer owns; its single invariant is that the derived URL is
// well-formed.
type Connection struct {
	Hostname string
	Port     int
	Router   string
	SSL      bool

	client *http.Client
}

// NewConnection builds a connection descriptor without contacting the engine.
// Zero values fall back to the conventional local setup.
func NewConnection(cfg config.ConnectionConfig) *Connection {
	if cfg.Hostname == "" {
		cfg.Hostname = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Router == "" {
		cfg.Router = "default"
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if cfg.TimeoutSec == 0 {
		timeout = 60 * time.Second
	}
	return &Connection{
		Hostname: cfg.Hostname,
		Port:     cfg.Port,
		Router:   cfg.Router,
		SSL:      cfg.SSL,
		client:   &http.Client{Timeout: timeout},
	}
}

// Connect builds a connection descriptor and verifies it by asking the engine
// for the router's status.
func Connect(cfg config.ConnectionConfig) (*Connection, error) {
	c := NewConnection(cfg)
	info, err := c.RouterInfo()
	if err != nil {
		return nil, fmt.Errorf("could not reach OTP router at %s: %w", c.RouterURL(), err)
	}
	log.Printf("connected to router %q at %s", info.RouterID, c.RouterURL())
	return c, nil
}

// BaseURL returns the engine's API root, e.g. http://localhost:8080/otp.
func (c *Connection) BaseURL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d/otp", scheme, c.Hostname, c.Port)
}

// RouterURL returns the API root of the configured router.
func (c *Connection) RouterURL() string {
	return fmt.Sprintf("%s/routers/%s", c.BaseURL(), c.Router)
}

// get issues a GET against a router-relative path. The body is returned even
// for non-200 responses: several OTP endpoints report errors as JSON
// envelopes with a 4xx status.
func (c *Connection) get(path string, q url.Values) ([]byte, int, error) {
	u := c.RouterURL() + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	resp, err := c.client.Get(u)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// RouterInfo fetches the router's status from the engine.
func (c *Connection) RouterInfo() (*RouterInfo, error) {
	body, status, err := c.get("", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", status, c.RouterURL())
	}
	var info RouterInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parsing router info: %w", err)
	}
	return &info, nil
}
