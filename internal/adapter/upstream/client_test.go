package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(5*time.Second, channel.Defaults(""), zerolog.Nop())
}

func TestClient_CreateOrder(t *testing.T) {
	var gotSign, gotOrderID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotSign = r.FormValue("sign")
		gotOrderID = r.FormValue("orderId")
		assert.Equal(t, "1000.00", r.FormValue("amount"))
		assert.Equal(t, "https://gw.example.com/callback/unipay", r.FormValue("notifyUrl"))
		w.Write([]byte(`{"code":0,"data":{"platformOrderId":"P-777","payUrl":"https://pay.example.com/P-777","deepLinks":{"upi":"upi://pay?x=1"}}}`))
	}))
	defer srv.Close()

	result, err := testClient().CreateOrder(context.Background(), ports.UpstreamCreateRequest{
		Channel:         "unipay",
		CreateURL:       srv.URL,
		Secret:          "sek",
		ExternalOrderID: "ORD-1",
		Amount:          1000,
		NotifyURL:       "https://gw.example.com/callback/unipay",
	})
	require.NoError(t, err)
	assert.Equal(t, "P-777", result.PlatformOrderID)
	assert.Equal(t, "https://pay.example.com/P-777", result.PaymentURL)
	assert.Equal(t, "upi://pay?x=1", result.DeepLinks["upi"])
	assert.Equal(t, "ORD-1", gotOrderID)

	// Signature covers the form fields minus the sign field itself.
	ch, _ := channel.Defaults("").Get("unipay")
	expected := ch.Sign(map[string]string{
		"orderId":   "ORD-1",
		"amount":    "1000.00",
		"notifyUrl": "https://gw.example.com/callback/unipay",
	}, "sek")
	assert.Equal(t, expected, gotSign)
}

func TestClient_CreateOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":4001,"message":"amount below channel minimum"}`))
	}))
	defer srv.Close()

	_, err := testClient().CreateOrder(context.Background(), ports.UpstreamCreateRequest{
		Channel:         "swiftpay",
		CreateURL:       srv.URL,
		Secret:          "sek",
		ExternalOrderID: "ORD-2",
		Amount:          1,
		NotifyURL:       "https://gw.example.com/callback/swiftpay",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount below channel minimum")
}

func TestClient_CreateOrder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient().CreateOrder(context.Background(), ports.UpstreamCreateRequest{
		Channel:         "swiftpay",
		CreateURL:       srv.URL,
		Secret:          "sek",
		ExternalOrderID: "ORD-3",
		Amount:          500,
		NotifyURL:       "https://gw.example.com/callback/swiftpay",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestClient_CreateOrder_UnknownChannel(t *testing.T) {
	_, err := testClient().CreateOrder(context.Background(), ports.UpstreamCreateRequest{
		Channel: "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
}

func TestClient_CreateOrder_MissingPlatformID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{}}`))
	}))
	defer srv.Close()

	_, err := testClient().CreateOrder(context.Background(), ports.UpstreamCreateRequest{
		Channel:         "softpay",
		CreateURL:       srv.URL,
		Secret:          "sek",
		ExternalOrderID: "ORD-4",
		Amount:          250,
		NotifyURL:       "https://gw.example.com/callback/softpay",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing platform order id")
}
