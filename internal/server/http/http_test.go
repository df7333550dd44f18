package http

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/headers"
	"github.com/indigo-web/minihttp/internal/requestgen"
	"github.com/indigo-web/minihttp/internal/transport/http1"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport/dummy"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type routerFunc func(*http.Request) *http.Response

func (r routerFunc) OnRequest(request *http.Request) *http.Response {
	return r(request)
}

func newServer(r router.Router, body config.Body) (*Server, *http1.Transport) {
	cfg := config.Default()

	return NewServer(r, body, zerolog.Nop()), http1.New(cfg.Headers, nil)
}

func disperse(data []byte, n int) (parts [][]byte) {
	for len(data) > n {
		parts = append(parts, data[:n])
		data = data[n:]
	}

	return append(parts, data)
}

func TestServer(t *testing.T) {
	t.Run("echo", func(t *testing.T) {
		server, trans := newServer(router.New(t.TempDir()), config.Default().Body)
		client := dummy.NewMockClient([]byte("GET /echo/abc HTTP/1.1\r\nHost: localhost:4221\r\n\r\n"))

		require.True(t, server.HandleRequest(client, trans))
		require.Equal(
			t,
			"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc",
			client.Written(),
		)
	})

	t.Run("headers reach the router", func(t *testing.T) {
		wantHeaders := requestgen.Headers(10)
		server, trans := newServer(routerFunc(func(request *http.Request) *http.Response {
			require.Equal(t, wantHeaders, request.Headers)
			return http.NewResponse(200, nil, nil)
		}), config.Default().Body)
		client := dummy.NewMockClient(requestgen.Generate("GET", "", wantHeaders, ""))

		require.True(t, server.HandleRequest(client, trans))
		require.True(t, strings.HasPrefix(client.Written(), "HTTP/1.1 200 OK\r\n"))
	})

	t.Run("nil response falls back to the default handler", func(t *testing.T) {
		server, trans := newServer(routerFunc(func(*http.Request) *http.Response {
			return nil
		}), config.Default().Body)
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n\r\n"))

		require.True(t, server.HandleRequest(client, trans))
		want := router.DefaultHandler{}.Handle(nil, router.Unit())
		require.Equal(t, string(http1.Serialize(want)), client.Written())
	})

	t.Run("malformed request is not answered", func(t *testing.T) {
		server, trans := newServer(router.New(t.TempDir()), config.Default().Body)

		for _, raw := range []string{
			"GET / HTTP/1.1\r\nHost: localhost\r\n",
			"GARBAGE\r\n\r\n",
			"GET / HTTP/1.1\r\nbad header\r\n\r\n",
		} {
			client := dummy.NewMockClient([]byte(raw))
			require.False(t, server.HandleRequest(client, trans))
			require.Empty(t, client.Written())
		}
	})

	t.Run("nothing received", func(t *testing.T) {
		server, trans := newServer(router.New(t.TempDir()), config.Default().Body)
		client := dummy.NewMockClient()
		require.False(t, server.HandleRequest(client, trans))
		require.Empty(t, client.Written())
	})

	t.Run("write failure", func(t *testing.T) {
		server, trans := newServer(router.New(t.TempDir()), config.Default().Body)
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n\r\n")).FailWrites()
		require.False(t, server.HandleRequest(client, trans))
	})

	t.Run("run closes the connection", func(t *testing.T) {
		server, trans := newServer(router.New(t.TempDir()), config.Default().Body)
		client := dummy.NewMockClient([]byte("GET /user-agent HTTP/1.1\r\nUser-Agent: curl\r\n\r\n"))
		server.Run(client, trans)
		require.True(t, client.Closed())
		require.True(t, strings.HasSuffix(client.Written(), "\r\n\r\ncurl"))
	})
}

func TestServer_Body(t *testing.T) {
	post := func(name, body string) []byte {
		return requestgen.Generate(
			"POST", "files/"+name,
			headers.New().Set("Content-Length", strconv.Itoa(len(body))),
			body,
		)
	}

	t.Run("body split across reads", func(t *testing.T) {
		dir := t.TempDir()
		server, trans := newServer(router.New(dir), config.Default().Body)
		body := uniuri.NewLen(1000)
		client := dummy.NewMockClient(disperse(post("split", body), 64)...)

		require.True(t, server.HandleRequest(client, trans))
		require.True(t, strings.HasPrefix(client.Written(), "HTTP/1.1 201 "))
		content, err := os.ReadFile(filepath.Join(dir, "split"))
		require.NoError(t, err)
		require.Equal(t, body, string(content))
	})

	t.Run("content length ignored", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default().Body
		cfg.HonorContentLength = false
		server, trans := newServer(router.New(dir), cfg)
		raw := post("first-read-only", "Hello, world!")
		client := dummy.NewMockClient(raw[:len(raw)-6], raw[len(raw)-6:])

		require.True(t, server.HandleRequest(client, trans))
		content, err := os.ReadFile(filepath.Join(dir, "first-read-only"))
		require.NoError(t, err)
		require.Equal(t, "Hello, ", string(content))
	})

	t.Run("size limit", func(t *testing.T) {
		dir := t.TempDir()
		raw := post("limited", strings.Repeat("a", 100))
		cfg := config.Default().Body
		cfg.MaxSize = len(raw) - 40
		server, trans := newServer(router.New(dir), cfg)
		client := dummy.NewMockClient(disperse(raw, 64)...)

		require.True(t, server.HandleRequest(client, trans))
		content, err := os.ReadFile(filepath.Join(dir, "limited"))
		require.NoError(t, err)
		require.Equal(t, strings.Repeat("a", 60), string(content))
	})

	t.Run("client stops sending", func(t *testing.T) {
		dir := t.TempDir()
		server, trans := newServer(router.New(dir), config.Default().Body)
		raw := post("short", "0123456789")
		client := dummy.NewMockClient(raw[:len(raw)-4])

		require.True(t, server.HandleRequest(client, trans))
		content, err := os.ReadFile(filepath.Join(dir, "short"))
		require.NoError(t, err)
		require.Equal(t, "012345", string(content))
	})
}
