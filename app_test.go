package minihttp

import (
	"bytes"
	"io"
	"net"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/indigo-web/minihttp/config"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func getTestConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.NET.Addr = "127.0.0.1:0"
	cfg.NET.AcceptLoopInterruptPeriod = 50 * time.Millisecond
	cfg.Files.Directory = dir

	return cfg
}

// runApp starts the app in the background and returns its address. The app is stopped
// when the test ends.
func runApp(t *testing.T, app *App) string {
	started := make(chan string, 1)
	done := make(chan error, 1)
	app.NotifyOnStart(func() {
		started <- app.Addr().String()
	})

	go func() {
		done <- app.Serve()
	}()

	var addr string
	select {
	case addr = <-started:
	case err := <-done:
		require.FailNow(t, "app exited prematurely", err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "app didn't start in time")
	}

	t.Cleanup(func() {
		app.Stop()
		require.NoError(t, <-done)
	})

	return addr
}

func newClient() *stdhttp.Client {
	return &stdhttp.Client{
		Transport: &stdhttp.Transport{
			DisableKeepAlives:  true,
			DisableCompression: true,
		},
		Timeout: 5 * time.Second,
	}
}

func do(t *testing.T, request *stdhttp.Request) (*stdhttp.Response, []byte) {
	resp, err := newClient().Do(request)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func get(t *testing.T, url string, hdrs ...string) (*stdhttp.Response, []byte) {
	request, err := stdhttp.NewRequest(stdhttp.MethodGet, url, nil)
	require.NoError(t, err)

	for i := 0; i+1 < len(hdrs); i += 2 {
		request.Header.Set(hdrs[i], hdrs[i+1])
	}

	return do(t, request)
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	addr := runApp(t, New(getTestConfig(dir)))
	base := "http://" + addr

	t.Run("root", func(t *testing.T) {
		resp, body := get(t, base+"/")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
		require.Equal(t, "Everything is fine, but the route is unknown", string(body))
	})

	t.Run("echo", func(t *testing.T) {
		resp, body := get(t, base+"/echo/pineapple")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, int64(len("pineapple")), resp.ContentLength)
		require.Equal(t, "pineapple", string(body))
		require.Empty(t, resp.Header.Get("Content-Encoding"))
	})

	t.Run("gzipped echo", func(t *testing.T) {
		resp, body := get(t, base+"/echo/"+strings.Repeat("grape", 20), "Accept-Encoding", "br, gzip")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
		require.Equal(t, int64(len(body)), resp.ContentLength)

		r, err := gzip.NewReader(bytes.NewReader(body))
		require.NoError(t, err)
		plain, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, strings.Repeat("grape", 20), string(plain))
	})

	t.Run("user agent", func(t *testing.T) {
		resp, body := get(t, base+"/user-agent", "User-Agent", "foobar/1.2.3")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "foobar/1.2.3", string(body))
	})

	t.Run("files", func(t *testing.T) {
		content := "Hello, world! " + strings.Repeat("x", 2000)
		request, err := stdhttp.NewRequest(stdhttp.MethodPost, base+"/files/upload.txt", strings.NewReader(content))
		require.NoError(t, err)
		resp, _ := do(t, request)
		require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

		written, err := os.ReadFile(filepath.Join(dir, "upload.txt"))
		require.NoError(t, err)
		require.Equal(t, content, string(written))

		resp, body := get(t, base+"/files/upload.txt")
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
		require.Equal(t, content, string(body))
	})

	t.Run("missing file", func(t *testing.T) {
		resp, _ := get(t, base+"/files/nonexistent")
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		resp, body := get(t, base+"/unknown/route")
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Equal(t, "The requested resource does not exist", string(body))
		require.Equal(t, int64(len(body)), resp.ContentLength)
	})

	t.Run("malformed request", func(t *testing.T) {
		conn, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write([]byte("GET / HTTP/1.1\r\nthis is not a header\r\n\r\n"))
		require.NoError(t, err)
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		data, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Empty(t, data)
	})
}

func TestApp_Lifecycle(t *testing.T) {
	t.Run("hooks", func(t *testing.T) {
		var stopped bool
		app := New(getTestConfig(t.TempDir())).NotifyOnStop(func() {
			stopped = true
		})
		started := make(chan struct{})
		done := make(chan error)
		app.NotifyOnStart(func() {
			close(started)
		})

		go func() {
			done <- app.Serve()
		}()

		<-started
		app.Stop()
		require.NoError(t, <-done)
		require.True(t, stopped)
	})

	t.Run("stop before serve", func(t *testing.T) {
		app := New(getTestConfig(t.TempDir()))
		app.Stop()
		require.NoError(t, app.Serve())
	})

	t.Run("bind error", func(t *testing.T) {
		cfg := getTestConfig(t.TempDir())
		cfg.NET.Addr = "256.256.256.256:99999"
		require.Error(t, New(cfg).Serve())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := getTestConfig(t.TempDir())
		cfg.NET.ReadBufferSize = 0
		require.Error(t, New(cfg).Serve())
	})

	t.Run("nil config", func(t *testing.T) {
		app := New(nil)
		require.Equal(t, config.Default(), app.cfg)
		require.Nil(t, app.Addr())
	})
}
