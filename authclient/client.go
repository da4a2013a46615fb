package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"delivrya/navigation"
	"delivrya/tokenstore"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:8082"
	DefaultTimeout = 10 * time.Second

	loginPath  = "/api/auth/login"
	signupPath = "/api/clients"
)

// RoleClient is the only role this app signs in with
const RoleClient = 0

// Router is the part of the navigator the auth flows drive
type Router interface {
	Replace(s navigation.Screen, p navigation.Params) error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL  string
	http     *http.Client
	store    tokenstore.Store
	nav      Router
	validate *validator.Validate
	log      *zap.Logger
}

func New(cfg Config, store tokenstore.Store, nav Router, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		store:    store,
		nav:      nav,
		validate: newValidator(),
		log:      log,
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
	Role       int    `json:"role"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginResult carries the session token. Warning is set when the token
// could not be saved on the device; the user is signed in anyway.
type LoginResult struct {
	Token   string
	Warning string
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// Login exchanges credentials for a token, saves it under tokenstore.TokenKey
// and replaces the current screen with the app shell.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	resp, err := c.post(ctx, loginPath, loginRequest{Email: email, MotDePasse: password, Role: RoleClient})
	if err != nil {
		return LoginResult{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Info("login rejected", zap.Int("status", resp.StatusCode))
		return LoginResult{}, ErrInvalidCredentials
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if body.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: no token", ErrMalformedResponse)
	}

	res := LoginResult{Token: body.Token}
	if err := c.store.Set(ctx, tokenstore.TokenKey, body.Token); err != nil {
		c.log.Error("save token", zap.Error(err))
		res.Warning = tokenNotSaved
	}

	if err := c.nav.Replace(navigation.AppShell, nil); err != nil {
		return res, fmt.Errorf("open app: %w", err)
	}
	return res, nil
}

// Signup validates the form locally first. Nothing is sent while a field is
// invalid. On success the login screen replaces the signup screen.
func (c *Client) Signup(ctx context.Context, form SignupForm) error {
	form.Role = RoleClient
	if errs := c.Validate(form); len(errs) > 0 {
		return errs
	}

	resp, err := c.post(ctx, signupPath, form)
	if err != nil {
		return fmt.Errorf("signup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = defaultEmailTaken
		}
		return &DuplicateEmailError{Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Info("signup rejected", zap.Int("status", resp.StatusCode))
		return ErrSignupFailed
	}

	c.log.Info("signup succeeded", zap.String("email", form.Email))
	return c.nav.Replace(navigation.Login, nil)
}

// Token returns the saved session token
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.store.Get(ctx, tokenstore.TokenKey)
}

// Logout forgets the token and goes back to the login screen
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Delete(ctx, tokenstore.TokenKey); err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return c.nav.Replace(navigation.Login, nil)
}

// Authorize sets the bearer token of an API request
func (c *Client) Authorize(ctx context.Context, req *http.Request) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
