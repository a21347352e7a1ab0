// Package gemini adapts the Google Gen AI SDK to the ports.Generator interface.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/termuxdev/pkg/ports"
	"google.golang.org/genai"
)

var (
	ErrMissingAPIKey = errors.New("gemini API key is not configured")
	ErrEmptyResponse = errors.New("response contained no text")
)

// Config carries everything the client needs. Nothing is read from the environment here.
type Config struct {
	APIKey string
	// BaseURL overrides the service endpoint (used by tests and proxies).
	BaseURL string
	// Timeout bounds a single HTTP exchange. Zero leaves the transport default in place.
	Timeout time.Duration
}

// Client is a lazily-initialized Gemini generator.
// The underlying SDK client is created on first use so a missing key only shows up
// as a failed call, never as a startup error.
type Client struct {
	cfg Config

	once    sync.Once
	sdk     *genai.Client
	initErr error
}

var _ ports.Generator = (*Client)(nil)

// New creates a Gemini generator.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// init builds the SDK client once, independent of any request context.
func (c *Client) init() {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		c.initErr = ErrMissingAPIKey
		return
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: c.cfg.Timeout}
	}
	if c.cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	}

	sdk, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		c.initErr = fmt.Errorf("failed to create GenAI client: %w", err)
		return
	}
	c.sdk = sdk
}

// Generate sends one generateContent request and returns the response text.
func (c *Client) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	c.once.Do(c.init)
	if c.initErr != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrExternalCall, c.initErr)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.sdk.Models.GenerateContent(ctx, req.Model, genai.Text(req.Contents), config)
	if err != nil {
		return "", fmt.Errorf("%w: GenAI generate failed: %w", ports.ErrExternalCall, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: %w", ports.ErrExternalCall, ErrEmptyResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: %w", ports.ErrExternalCall, ErrEmptyResponse)
	}
	return text, nil
}
