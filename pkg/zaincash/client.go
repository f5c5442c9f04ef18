package zaincash

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

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/netwave-iq/netwave-backend/pkg/config"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	tokenLifetime  = 4 * time.Hour

	demoIDPrefix = "DEMO-"
	demoToken    = "demo-token"
)

var (
	errLoggerRequired = errors.New("zaincash logger is required")
	errSecretRequired = errors.New("zaincash secret is required in production")
)

// Client talks to the ZainCash wallet API. Sandbox mode is selected only
// by the configured environment; production never inspects transaction
// ids or tokens to decide behaviour.
type Client struct {
	environment enums.Environment
	merchantID  string
	secret      string
	msisdn      string
	apiURL      string
	httpClient  *http.Client
	logger      *logger.Logger
	metrics     *metrics.PaymentMetrics
	now         func() time.Time
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient initializes the ZainCash wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.ZainCashConfig, logg *logger.Logger, pm *metrics.PaymentMetrics, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	env, err := enums.ParseEnvironment(cfg.Environment)
	if err != nil {
		return nil, err
	}
	secret := strings.TrimSpace(cfg.Secret)
	if !env.IsSandbox() && secret == "" {
		return nil, errSecretRequired
	}

	c := &Client{
		environment: env,
		merchantID:  strings.TrimSpace(cfg.MerchantID),
		secret:      secret,
		msisdn:      strings.TrimSpace(cfg.MSISDN),
		apiURL:      strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logg,
		metrics:     pm,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if env.IsSandbox() {
		logg.Warn(ctx, "zaincash client running in sandbox mode, no real payments will be processed")
	} else {
		logg.Info(ctx, "zaincash client initialized")
	}
	return c, nil
}

// Environment reports the configured gateway environment.
func (c *Client) Environment() enums.Environment {
	if c == nil {
		return ""
	}
	return c.environment
}

// CreateTransaction registers a payment intent with the gateway and
// returns the transaction id plus the hosted payment URL the customer
// should be redirected to.
func (c *Client) CreateTransaction(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	lang := params.Lang
	if !lang.IsValid() {
		lang = enums.LocaleArabic
	}

	logCtx := c.logger.WithFields(ctx, map[string]any{
		"operation": "create_transaction",
		"order_id":  params.OrderID,
		"amount":    params.Amount.String(),
	})

	if c.environment.IsSandbox() {
		txn := c.demoTransaction(params.RedirectURL)
		c.logger.Warn(c.logger.WithTransactionID(logCtx, txn.ID), "demo transaction created, skipping gateway call")
		c.countGateway("create", "demo")
		return txn, nil
	}

	now := c.now().UTC()
	claims := jwt.MapClaims{
		"amount":      amountToFils(params.Amount),
		"serviceType": params.ServiceType,
		"msisdn":      c.msisdn,
		"orderId":     params.OrderID,
		"redirectUrl": params.RedirectURL,
		"lang":        lang.String(),
		"iat":         jwt.NewNumericDate(now),
		"exp":         jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secret))
	if err != nil {
		c.countGateway("create", "error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "signing gateway token")
	}

	body, err := json.Marshal(map[string]any{
		"token":      token,
		"merchantId": c.merchantID,
		"lang":       lang.String(),
	})
	if err != nil {
		c.countGateway("create", "error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/transaction/init", bytes.NewReader(body))
	if err != nil {
		c.countGateway("create", "error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var payload initResponse
	if err := c.do(req, &payload); err != nil {
		c.logger.Error(logCtx, "gateway init failed", err)
		c.countGateway("create", "failure")
		return nil, err
	}
	if payload.ID == "" {
		c.countGateway("create", "failure")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gateway returned no transaction id")
	}

	url := payload.URL
	if url == "" {
		url = fmt.Sprintf("%s/transaction/pay?id=%s", c.apiURL, payload.ID)
	}
	txn := &Transaction{
		ID:     payload.ID,
		Status: normalizeStatus(payload.Status),
		URL:    url,
	}
	c.logger.Info(c.logger.WithTransactionID(logCtx, txn.ID), "gateway transaction created")
	c.countGateway("create", "success")
	return txn, nil
}

// VerifyTransaction fetches the authoritative transaction state from the
// gateway. Transport and HTTP failures are reported as dependency errors
// so callers can distinguish gateway-down from a declined payment.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID, token string) (*VerificationResult, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}

	logCtx := c.logger.WithTransactionID(c.logger.WithFields(ctx, map[string]any{
		"operation": "verify_transaction",
	}), transactionID)

	if c.environment.IsSandbox() && (strings.HasPrefix(transactionID, demoIDPrefix) || token == demoToken) {
		c.logger.Warn(logCtx, "demo transaction auto-approved")
		c.countGateway("verify", "demo")
		return &VerificationResult{
			TransactionID: transactionID,
			Status:        enums.TransactionStatusSuccess,
			Message:       "demo payment approved",
		}, nil
	}

	bearer := token
	if bearer == "" {
		bearer = c.secret
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/transaction/get/"+transactionID, nil)
	if err != nil {
		c.countGateway("verify", "error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	var payload verifyResponse
	if err := c.do(req, &payload); err != nil {
		c.logger.Error(logCtx, "gateway verification failed", err)
		c.countGateway("verify", "failure")
		return nil, err
	}

	status := normalizeStatus(payload.Status)
	c.logger.Info(c.logger.WithFields(logCtx, map[string]any{"status": status.String()}), "gateway transaction verified")
	c.countGateway("verify", status.String())
	return &VerificationResult{
		TransactionID: transactionID,
		Status:        status,
		Message:       payload.Msg,
	}, nil
}

func (c *Client) demoTransaction(redirectURL string) *Transaction {
	id := demoIDPrefix + uuid.NewString()
	separator := "&"
	if !strings.Contains(redirectURL, "?") {
		separator = "?"
	}
	return &Transaction{
		ID:     id,
		Status: enums.TransactionStatusPending,
		URL:    fmt.Sprintf("%s%stransaction_id=%s&token=%s&demo=true", redirectURL, separator, id, demoToken),
	}
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling payment gateway")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading gateway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding gateway response")
	}
	return nil
}

func (c *Client) countGateway(operation, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncGatewayCall(operation, outcome)
}

// amountToFils converts a dinar amount into the integer fils the gateway
// expects. Conversion happens only at this boundary.
func amountToFils(amount decimal.Decimal) int64 {
	return amount.Mul(filsPerDinar).IntPart()
}

func normalizeStatus(raw string) enums.TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success", "completed":
		return enums.TransactionStatusSuccess
	case "pending", "processing":
		return enums.TransactionStatusPending
	default:
		return enums.TransactionStatusFailed
	}
}

type initResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

type verifyResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}
