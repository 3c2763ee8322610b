package power

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wutsk/labreserve/config"
)

func TestValidAction(t *testing.T) {
	assert.True(t, ValidAction(ActionPowerOn))
	assert.True(t, ValidAction(ActionPowerOff))
	assert.True(t, ValidAction(ActionReset))
	assert.False(t, ValidAction("explode"))
	assert.False(t, ValidAction(""))
}

// clientFor builds an AMTClient whose host template resolves to the test
// server: host 127.0.0.1 becomes prefix "127.0.0." plus station "1".
func clientFor(t *testing.T, ts *httptest.Server) (*AMTClient, string) {
	t.Helper()
	u, err := url.Parse(ts.URL)
	assert.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	assert.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	assert.NoError(t, err)

	client := NewAMTClient(config.PowerConfig{
		HostPrefix:     host[:len(host)-1],
		Port:           port,
		Username:       "admin",
		Password:       "secret",
		TimeoutSeconds: 1,
	})
	return client, host[len(host)-1:]
}

func TestAMTClient_PowerOn(t *testing.T) {
	var gotAction, gotUser, gotPass string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/power", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAction = body["action"]
		gotUser, gotPass, _ = r.BasicAuth()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client, stationID := clientFor(t, ts)

	err := client.PowerOn(context.Background(), stationID)

	assert.NoError(t, err)
	assert.Equal(t, ActionPowerOn, gotAction)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestAMTClient_Do_UnknownAction(t *testing.T) {
	client := NewAMTClient(config.PowerConfig{HostPrefix: "s", Port: 16992})

	err := client.Do(context.Background(), "5", "explode")

	assert.Error(t, err)
}

func TestAMTClient_ControllerFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client, stationID := clientFor(t, ts)

	err := client.Reset(context.Background(), stationID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
