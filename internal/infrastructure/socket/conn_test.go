package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
)

var upgrader = websocket.Upgrader{}

// echoServer upgrades, records the handshake query, pushes one greeting event
// and echoes every client frame back.
func echoServer(t *testing.T, gotQuery chan<- map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			gotQuery <- map[string]string{
				"userId": r.URL.Query().Get("userId"),
				"role":   r.URL.Query().Get("role"),
			}
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		greeting := Event{Name: "connected", Data: json.RawMessage(`{"ok":true}`)}
		require.NoError(t, ws.WriteJSON(greeting))

		for {
			var event Event
			if err := ws.ReadJSON(&event); err != nil {
				return
			}
			event.Name = "echo:" + event.Name
			if err := ws.WriteJSON(event); err != nil {
				return
			}
		}
	}))
}

func TestDialSendsIdentityQuery(t *testing.T) {
	gotQuery := make(chan map[string]string, 1)
	srv := echoServer(t, gotQuery)
	defer srv.Close()

	conn, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.NoError(t, err)
	defer conn.Close()

	query := <-gotQuery
	assert.Equal(t, "u-1", query["userId"])
	assert.Equal(t, "buyer", query["role"])
}

func TestEmitAndReceive(t *testing.T) {
	srv := echoServer(t, nil)
	defer srv.Close()

	conn, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.NoError(t, err)
	defer conn.Close()

	greeting := <-conn.Events()
	assert.Equal(t, "connected", greeting.Name)

	require.NoError(t, conn.Emit("join-room", map[string]string{"storeId": "s-1"}))

	select {
	case event := <-conn.Events():
		assert.Equal(t, "echo:join-room", event.Name)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(event.Data, &payload))
		assert.Equal(t, "s-1", payload["storeId"])
	case <-time.After(2 * time.Second):
		t.Fatal("no echo received")
	}
}

func TestRejectedHandshakeSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	}))
	defer srv.Close()

	_, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Token expired", appErr.Message)
}

func TestEventsChannelClosesOnServerDrop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		ws.Close()
	}))
	defer srv.Close()

	conn, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.NoError(t, err)
	defer conn.Close()

	select {
	case _, open := <-waitClosed(conn.Events()):
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel never closed")
	}
}

// waitClosed drains buffered events so the close is observable.
func waitClosed(events <-chan Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for range events {
		}
	}()
	return out
}

func TestEmitAfterCloseFails(t *testing.T) {
	srv := echoServer(t, nil)
	defer srv.Close()

	conn, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close(), "close is idempotent")

	err = conn.Emit("typing", map[string]bool{"isTyping": true})
	assert.True(t, apperrors.Is(err, "TRANSPORT_ERROR"))
}

func TestMalformedFramesAreDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		ws.WriteMessage(websocket.TextMessage, []byte("not json"))
		ws.WriteJSON(Event{Name: "after-garbage"})
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	conn, err := Dial(context.Background(), srv.URL, nil, Handshake{UserID: "u-1", Role: "buyer"})
	require.NoError(t, err)
	defer conn.Close()

	select {
	case event := <-conn.Events():
		assert.Equal(t, "after-garbage", event.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("valid frame after garbage never arrived")
	}
}
