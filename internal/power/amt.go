// Package power drives the stations' out-of-band management controllers.
package power

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wutsk/labreserve/config"
)

// Actions accepted by the controller.
const (
	ActionPowerOn  = "powerOn"
	ActionPowerOff = "powerOff"
	ActionReset    = "reset"
)

// ValidAction reports whether action is one of the supported power commands.
func ValidAction(action string) bool {
	switch action {
	case ActionPowerOn, ActionPowerOff, ActionReset:
		return true
	}
	return false
}

// AMTClient issues power commands to a station's AMT controller. Controllers
// are addressed as <hostPrefix><stationId>:<port> and share lab-wide digest
// credentials.
type AMTClient struct {
	hostPrefix string
	port       int
	username   string
	password   string
	http       *http.Client
}

func NewAMTClient(cfg config.PowerConfig) *AMTClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AMTClient{
		hostPrefix: cfg.HostPrefix,
		port:       cfg.Port,
		username:   cfg.Username,
		password:   cfg.Password,
		http:       &http.Client{Timeout: timeout},
	}
}

func (c *AMTClient) PowerOn(ctx context.Context, stationID string) error {
	return c.send(ctx, stationID, ActionPowerOn)
}

func (c *AMTClient) PowerOff(ctx context.Context, stationID string) error {
	return c.send(ctx, stationID, ActionPowerOff)
}

func (c *AMTClient) Reset(ctx context.Context, stationID string) error {
	return c.send(ctx, stationID, ActionReset)
}

// Do dispatches one of the named power actions. Callers validate the action
// string first with ValidAction.
func (c *AMTClient) Do(ctx context.Context, stationID, action string) error {
	if !ValidAction(action) {
		return fmt.Errorf("power: unknown action %q", action)
	}
	return c.send(ctx, stationID, action)
}

func (c *AMTClient) send(ctx context.Context, stationID, action string) error {
	payload, err := json.Marshal(map[string]string{"action": action})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s%s:%d/power", c.hostPrefix, stationID, c.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("power: %s %s: %w", action, stationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("power: %s %s: unexpected status %d", action, stationID, resp.StatusCode)
	}
	return nil
}
