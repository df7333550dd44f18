package transport_test

import (
	"io"
	"testing"
	"time"

	"github.com/indigo-web/minihttp/transport"
	"github.com/indigo-web/minihttp/transport/dummy"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	t.Run("read into fixed buffer", func(t *testing.T) {
		conn := dummy.NewConn([]byte("GET / HTTP/1.1\r\n\r\n"))
		client := transport.NewClient(conn, 0, make([]byte, 8))

		data, err := client.Read()
		require.NoError(t, err)
		require.Equal(t, "GET / HT", string(data))
		require.True(t, conn.ReadDeadline.IsZero())

		data, err = client.Read()
		require.NoError(t, err)
		require.Equal(t, "TP/1.1\r\n", string(data))
	})

	t.Run("eof", func(t *testing.T) {
		client := transport.NewClient(dummy.NewConn(), 0, make([]byte, 8))
		data, err := client.Read()
		require.ErrorIs(t, err, io.EOF)
		require.Empty(t, data)
	})

	t.Run("read deadline", func(t *testing.T) {
		conn := dummy.NewConn([]byte("data"))
		client := transport.NewClient(conn, time.Minute, make([]byte, 8))
		_, err := client.Read()
		require.NoError(t, err)
		require.False(t, conn.ReadDeadline.IsZero())
		require.True(t, conn.ReadDeadline.After(time.Now().Add(30*time.Second)))
	})

	t.Run("write and close", func(t *testing.T) {
		conn := dummy.NewConn()
		client := transport.NewClient(conn, 0, nil)
		require.NoError(t, client.Write([]byte("HTTP/1.1 200 OK\r\n")))
		require.Equal(t, "HTTP/1.1 200 OK\r\n", string(conn.Data))
		require.NotNil(t, client.Remote())
		require.NoError(t, client.Close())
		require.True(t, conn.Closed())
		require.Error(t, client.Write([]byte("x")))
	})
}
