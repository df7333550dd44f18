package config

import (
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type (
	NET struct {
		// Addr is the address the listener is bound to.
		Addr string
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. A request is read into it once, so anything not fitting is truncated
		// and usually fails to parse.
		ReadBufferSize int
		// ReadTimeout limits how long a connection may stay silent. Zero disables the
		// deadline, so a client that never sends anything holds its goroutine forever.
		ReadTimeout time.Duration `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
		// MaxConnections caps the number of connections served simultaneously. Zero means
		// no limit. Connections above the limit wait in the backlog.
		MaxConnections int `test:"nullable"`
	}

	Headers struct {
		// MaxNumber is maximum number of header lines allowed to be presented.
		MaxNumber int
	}

	Body struct {
		// HonorContentLength makes the connection keep reading until the declared
		// Content-Length is buffered. Otherwise, whatever the first read returned is the
		// whole request.
		HonorContentLength bool
		// MaxSize limits how many bytes in total may be buffered for a single request when
		// HonorContentLength is enabled.
		MaxSize int
	}

	Files struct {
		// Directory is the base directory for the /files route.
		Directory string
	}
)

// Config holds settings used across the server.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET     NET
	Headers Headers
	Body    Body
	Files   Files
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:                      "0.0.0.0:4221",
			ReadBufferSize:            8 * 1024,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Headers: Headers{
			MaxNumber: 100,
		},
		Body: Body{
			HonorContentLength: true,
			MaxSize:            16 * 1024 * 1024,
		},
		Files: Files{
			Directory: ".",
		},
	}
}

// Validate rejects values the server cannot operate with.
func (c *Config) Validate() error {
	switch {
	case c.NET.ReadBufferSize <= 0:
		return errors.Errorf("config: NET.ReadBufferSize must be positive, got %d", c.NET.ReadBufferSize)
	case c.NET.AcceptLoopInterruptPeriod <= 0:
		return errors.Errorf("config: NET.AcceptLoopInterruptPeriod must be positive, got %s",
			c.NET.AcceptLoopInterruptPeriod)
	case c.NET.ReadTimeout < 0:
		return errors.Errorf("config: NET.ReadTimeout must not be negative, got %s", c.NET.ReadTimeout)
	case c.NET.MaxConnections < 0:
		return errors.Errorf("config: NET.MaxConnections must not be negative, got %d", c.NET.MaxConnections)
	case c.Headers.MaxNumber <= 0:
		return errors.Errorf("config: Headers.MaxNumber must be positive, got %d", c.Headers.MaxNumber)
	case c.Body.MaxSize < c.NET.ReadBufferSize:
		return errors.Errorf("config: Body.MaxSize (%d) must not be less than NET.ReadBufferSize (%d)",
			c.Body.MaxSize, c.NET.ReadBufferSize)
	}

	return nil
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads a JSON document from the file and applies it over the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: open")
	}

	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}

	return cfg, nil
}

// Decode applies a JSON document over the defaults. Fields missing in the document keep
// their default values; durations are written as Go duration strings, e.g. "90s".
func Decode(r io.Reader) (*Config, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	cfg := Default()
	doc.apply(cfg)

	return cfg, cfg.Validate()
}

type document struct {
	NET struct {
		Addr                      *string   `json:"addr"`
		ReadBufferSize            *int      `json:"read_buffer_size"`
		ReadTimeout               *duration `json:"read_timeout"`
		AcceptLoopInterruptPeriod *duration `json:"accept_loop_interrupt_period"`
		MaxConnections            *int      `json:"max_connections"`
	} `json:"net"`
	Headers struct {
		MaxNumber *int `json:"max_number"`
	} `json:"headers"`
	Body struct {
		HonorContentLength *bool `json:"honor_content_length"`
		MaxSize            *int  `json:"max_size"`
	} `json:"body"`
	Files struct {
		Directory *string `json:"directory"`
	} `json:"files"`
}

func (d document) apply(cfg *Config) {
	set(&cfg.NET.Addr, d.NET.Addr)
	set(&cfg.NET.ReadBufferSize, d.NET.ReadBufferSize)
	setDuration(&cfg.NET.ReadTimeout, d.NET.ReadTimeout)
	setDuration(&cfg.NET.AcceptLoopInterruptPeriod, d.NET.AcceptLoopInterruptPeriod)
	set(&cfg.NET.MaxConnections, d.NET.MaxConnections)
	set(&cfg.Headers.MaxNumber, d.Headers.MaxNumber)
	set(&cfg.Body.HonorContentLength, d.Body.HonorContentLength)
	set(&cfg.Body.MaxSize, d.Body.MaxSize)
	set(&cfg.Files.Directory, d.Files.Directory)
}

func set[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}

func setDuration(dst *time.Duration, value *duration) {
	if value != nil {
		*dst = time.Duration(*value)
	}
}

type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}

	parsed, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = duration(parsed)
	return nil
}
