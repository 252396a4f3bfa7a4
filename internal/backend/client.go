// Package backend is the typed REST client for the BeTogether backend. Every call
// goes through Client.Do, which attaches the bearer token, encodes the body, and
// decodes and validates the response envelope in one place.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"betogether-admin/internal/backend/config"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/validation"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Request describes one backend call.
type Request struct {
	Method string
	Base   config.Base
	Path   string
	// JSON and Form are mutually exclusive; Form wins when both are set.
	JSON interface{}
	Form *Form
}

// Get builds a GET request against the admin API.
func Get(path string) Request { return Request{Method: http.MethodGet, Path: path} }

// Post builds a JSON POST request against the admin API.
func Post(path string, body interface{}) Request {
	return Request{Method: http.MethodPost, Path: path, JSON: body}
}

// Put builds a JSON PUT request against the admin API.
func Put(path string, body interface{}) Request {
	return Request{Method: http.MethodPut, Path: path, JSON: body}
}

// Delete builds a DELETE request against the admin API.
func Delete(path string) Request { return Request{Method: http.MethodDelete, Path: path} }

// Multipart builds a multipart/form-data request against the admin API.
func Multipart(method, path string, form *Form) Request {
	return Request{Method: method, Path: path, Form: form}
}

// On returns a copy of r addressed to another API base.
func (r Request) On(base config.Base) Request {
	r.Base = base
	return r
}

// Client performs calls against the backend over fasthttp.
type Client struct {
	cfg       *config.Config
	http      *fasthttp.Client
	log       *zap.Logger
	validator *validation.Validator
}

// NewClient validates cfg and builds a client. A nil or incomplete configuration is
// refused so the console never starts without a backend.
func NewClient(cfg *config.Config, log *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigurationError("backend configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError(err.Error())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		http: &fasthttp.Client{
			Name:                     cfg.UserAgent,
			ReadTimeout:              cfg.Timeout,
			WriteTimeout:             cfg.Timeout,
			MaxResponseBodySize:      cfg.MaxResponseSize,
			NoDefaultUserAgentHeader: false,
		},
		log:       log,
		validator: validation.Default(),
	}, nil
}

// Config returns the backend configuration.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// As returns a Caller that authenticates every request with token.
func (c *Client) As(token string) *Caller {
	return &Caller{client: c, token: token}
}

// Anonymous returns a Caller that sends no Authorization header.
func (c *Client) Anonymous() *Caller {
	return &Caller{client: c}
}

// Caller is a Client bound to one session's bearer token.
type Caller struct {
	client *Client
	token  string
}

// Do performs req and decodes the response into out, which may be nil.
func (c *Caller) Do(ctx context.Context, req Request, out Envelope) error {
	return c.client.Do(ctx, c.token, req, out)
}

// Do performs req with the given bearer token.
//
// Failures map onto the console taxonomy: transport problems and undecodable bodies
// become network errors, 401 becomes an authentication error, and any response whose
// envelope reports failure becomes a server error carrying the backend's message.
func (c *Client) Do(ctx context.Context, token string, req Request, out Envelope) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewNetworkError("request cancelled").WithCause(err)
	}

	url := c.cfg.URL(req.Base, req.Path)
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	freq := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(freq)
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(url)
	freq.Header.SetMethod(method)
	freq.Header.Set(fasthttp.HeaderAccept, "application/json")
	if token != "" {
		freq.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}

	switch {
	case req.Form != nil:
		body, contentType, err := req.Form.Encode()
		if err != nil {
			return apperrors.NewInternalError("failed to encode form").WithCause(err)
		}
		freq.Header.SetContentType(contentType)
		freq.SetBody(body)
	case req.JSON != nil:
		body, err := sonic.Marshal(req.JSON)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request").WithCause(err)
		}
		freq.Header.SetContentType("application/json")
		freq.SetBody(body)
	}

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(freq, fresp, deadline)
	} else {
		err = c.http.DoTimeout(freq, fresp, c.cfg.Timeout)
	}
	elapsed := time.Since(start)
	if err != nil {
		c.log.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return apperrors.NewNetworkError("request failed").WithCause(err)
	}

	status := fresp.StatusCode()
	body := append([]byte(nil), fresp.Body()...)
	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed))

	return c.decode(status, body, out)
}

func (c *Client) decode(status int, body []byte, out Envelope) error {
	if status >= http.StatusBadRequest {
		var st Status
		if len(body) > 0 {
			_ = sonic.Unmarshal(body, &st)
		}
		msg := st.ServerMessage()
		if status == http.StatusUnauthorized {
			if msg == "" {
				msg = "unauthorized"
			}
			return apperrors.NewAuthenticationError(msg).WithCause(apperrors.ErrUnauthorized)
		}
		if msg != "" {
			return apperrors.NewServerError(msg, status)
		}
		return apperrors.NewNetworkError(fmt.Sprintf("backend responded with status %d", status)).
			WithDetail("backend_status", status)
	}

	if out == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return apperrors.NewNetworkError("malformed backend response").WithCause(err)
	}
	if !out.Succeeded() {
		return apperrors.NewServerError(out.ServerMessage(), status)
	}
	if err := c.validator.Struct(out); err != nil {
		var ve *apperrors.ValidationErrors
		if errors.As(err, &ve) {
			return apperrors.NewNetworkError("malformed backend response").
				WithDetail("validation_errors", ve.Errors).WithCause(err)
		}
		return apperrors.NewNetworkError("malformed backend response").WithCause(err)
	}
	return nil
}
