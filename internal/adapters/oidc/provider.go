package oidc

// Package oidc implements Google sign-in for the dashboard using OIDC/OAuth2.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/ports"
)

// Provider implements the IdentityProvider interface using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	// claim extraction expressions evaluated against verified ID token claims
	nameExpr  string
	emailExpr string

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string

	// NameExpr and EmailExpr are JMESPath expressions selecting the display
	// name and email from the token claims. Empty values use Google's
	// standard claim names.
	NameExpr  string
	EmailExpr string

	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	nameExpr := config.NameExpr
	if nameExpr == "" {
		nameExpr = "name"
	}
	emailExpr := config.EmailExpr
	if emailExpr == "" {
		emailExpr = "email"
	}
	if _, err := jmespath.Compile(nameExpr); err != nil {
		return nil, fmt.Errorf("compile name expression: %w", err)
	}
	if _, err := jmespath.Compile(emailExpr); err != nil {
		return nil, fmt.Errorf("compile email expression: %w", err)
	}

	p := &Provider{
		httpClient: httpClient,
		nameExpr:   nameExpr,
		emailExpr:  emailExpr,
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	// Configure OAuth2 using discovered endpoints
	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       strings.Fields(config.Scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// Begin starts the sign-in flow with fresh state and nonce values.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	state, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}

	nonce, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)

	return authURL, state, nonce, nil
}

// Exchange completes the sign-in flow. The code is exchanged for tokens,
// the ID token is verified against the expected nonce, and the claim
// expressions extract the identity fields.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainauth.Identity{}, errors.New("state is required")
	}
	if in.Nonce == "" {
		return domainauth.Identity{}, errors.New("nonce is required")
	}

	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	rawID, err := getIDTokenFromToken(token)
	if err != nil {
		return domainauth.Identity{}, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify id_token: %w", err)
	}

	var claims map[string]any
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Identity{}, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if nonce, _ := claims["nonce"].(string); nonce != in.Nonce {
		return domainauth.Identity{}, errors.New("invalid nonce")
	}

	identity, err := mapClaims(claims, p.nameExpr, p.emailExpr)
	if err != nil {
		return domainauth.Identity{}, err
	}
	identity.Subject = idTok.Subject

	identity.ExpiresAt = time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		identity.ExpiresAt = token.Expiry
	}

	return identity, nil
}

// mapClaims evaluates the claim expressions against the verified claims.
// A missing email is an error; a missing name degrades to the email.
func mapClaims(claims map[string]any, nameExpr, emailExpr string) (domainauth.Identity, error) {
	var id domainauth.Identity

	email, err := searchString(emailExpr, claims)
	if err != nil {
		return id, fmt.Errorf("evaluate email claim: %w", err)
	}
	if email == "" {
		return id, errors.New("id_token claims missing email")
	}
	id.Email = strings.ToLower(email)

	name, err := searchString(nameExpr, claims)
	if err != nil {
		return id, fmt.Errorf("evaluate name claim: %w", err)
	}
	if name == "" {
		name = id.Email
	}
	id.Name = name

	return id, nil
}

// searchString runs a JMESPath expression and coerces the result to string.
func searchString(expr string, data any) (string, error) {
	result, err := jmespath.Search(expr, data)
	if err != nil {
		return "", err
	}
	s, _ := result.(string)
	return s, nil
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
