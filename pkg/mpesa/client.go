package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	tokenPath = "/oauth/v1/generate?grant_type=client_credentials"
	pushPath  = "/mpesa/stkpush/v1/processrequest"
	queryPath = "/mpesa/stkpushquery/v1/query"

	timestampLayout = "20060102150405"

	// Daraja отвечает 500 с этим кодом, пока покупатель не подтвердил платеж
	errCodeProcessing = "500.001.1001"

	opToken = "token"
	opPush  = "push"
	opQuery = "query"

	TransactionPayBill  = "CustomerPayBillOnline"
	TransactionBuyGoods = "CustomerBuyGoodsOnline"
)

var eat = time.FixedZone("EAT", 3*60*60)

type Config struct {
	BaseURL         string
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	Passkey         string
	CallbackURL     string
	TransactionType string
	Timeout         time.Duration

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type PushRequest struct {
	Phone       string
	Amount      float64
	Reference   string
	Description string
}

type PushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type StatusResponse struct {
	ResponseCode        string     `json:"ResponseCode"`
	ResponseDescription string     `json:"ResponseDescription"`
	MerchantRequestID   string     `json:"MerchantRequestID"`
	CheckoutRequestID   string     `json:"CheckoutRequestID"`
	ResultCode          ResultCode `json:"ResultCode"`
	ResultDesc          string     `json:"ResultDesc"`
}

type response struct {
	status int
	body   []byte
}

var errUpstream = errors.New("upstream unavailable")

type Client struct {
	cfg        Config
	httpClient *http.Client
	breakers   map[string]*gobreaker.CircuitBreaker[response]
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TransactionType == "" {
		cfg.TransactionType = TransactionPayBill
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerOpenTimeout <= 0 {
		cfg.BreakerOpenTimeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// у каждой операции свой breaker, иначе успешный запрос токена сбрасывает счетчик отказов
	c.breakers = make(map[string]*gobreaker.CircuitBreaker[response], 3)
	for _, op := range []string{opToken, opPush, opQuery} {
		c.breakers[op] = newBreaker(op, cfg)
	}

	return c
}

func newBreaker(op string, cfg Config) *gobreaker.CircuitBreaker[response] {
	return gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
		Name:        "mpesa-" + op,
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		// ошибки бизнес-уровня (4xx) не должны размыкать цепь
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, errUpstream)
		},
	})
}

// AccessToken получает новый токен на каждый вызов, без кеширования
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+tokenPath, nil)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	res, err := c.execute(opToken, req)
	if err != nil {
		return "", &AuthError{StatusCode: res.status, Err: err}
	}
	if res.status != http.StatusOK {
		return "", &AuthError{StatusCode: res.status, Err: errors.New(strings.TrimSpace(string(res.body)))}
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := json.Unmarshal(res.body, &token); err != nil {
		return "", &AuthError{StatusCode: res.status, Err: fmt.Errorf("failed to decode token: %w", err)}
	}
	if token.AccessToken == "" {
		return "", &AuthError{StatusCode: res.status, Err: errors.New("empty access token")}
	}
	return token.AccessToken, nil
}

func (c *Client) InitiatePush(ctx context.Context, r PushRequest) (PushResponse, error) {
	phone, err := NormalizePhone(r.Phone)
	if err != nil {
		return PushResponse{}, err
	}
	if r.Amount <= 0 {
		return PushResponse{}, ErrInvalidAmount
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return PushResponse{}, err
	}

	password, timestamp := c.password()
	payload := map[string]any{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   c.cfg.TransactionType,
		"Amount":            int64(math.Ceil(r.Amount)),
		"PartyA":            phone,
		"PartyB":            c.cfg.ShortCode,
		"PhoneNumber":       phone,
		"CallBackURL":       c.cfg.CallbackURL,
		"AccountReference":  r.Reference,
		"TransactionDesc":   r.Description,
	}

	res, err := c.post(ctx, opPush, pushPath, token, payload)
	if err != nil {
		return PushResponse{}, err
	}

	var out PushResponse
	if err := json.Unmarshal(res.body, &out); err != nil {
		return PushResponse{}, &GatewayError{Op: opPush, StatusCode: res.status, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if out.CheckoutRequestID == "" || out.ResponseCode != "0" {
		return PushResponse{}, &GatewayError{
			Op:         opPush,
			StatusCode: res.status,
			Code:       out.ResponseCode,
			Message:    out.ResponseDescription,
		}
	}
	return out, nil
}

func (c *Client) QueryStatus(ctx context.Context, checkoutRequestID string) (StatusResponse, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return StatusResponse{}, err
	}

	password, timestamp := c.password()
	payload := map[string]any{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"CheckoutRequestID": checkoutRequestID,
	}

	res, err := c.post(ctx, opQuery, queryPath, token, payload)
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Code == errCodeProcessing {
		return StatusResponse{CheckoutRequestID: checkoutRequestID, ResultDesc: gwErr.Message}, nil
	}
	if err != nil {
		return StatusResponse{}, err
	}

	var out StatusResponse
	if err := json.Unmarshal(res.body, &out); err != nil {
		return StatusResponse{}, &GatewayError{Op: opQuery, StatusCode: res.status, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, op, path, token string, payload any) (response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return response{}, &GatewayError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return response{}, &GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.execute(op, req)
	if err != nil && res.status == 0 {
		return res, &GatewayError{Op: op, Err: err}
	}
	if res.status < 200 || res.status >= 300 {
		gwErr := &GatewayError{Op: op, StatusCode: res.status}
		var eb errorBody
		if json.Unmarshal(res.body, &eb) == nil {
			gwErr.Code = eb.ErrorCode
			gwErr.Message = eb.ErrorMessage
		}
		return res, gwErr
	}
	return res, nil
}

// execute выполняет запрос через circuit breaker. 5xx считаются отказом шлюза.
func (c *Client) execute(op string, req *http.Request) (response, error) {
	return c.breakers[op].Execute(func() (response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return response{}, fmt.Errorf("%w: %w", errUpstream, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{status: resp.StatusCode}, fmt.Errorf("%w: failed to read body: %w", errUpstream, err)
		}

		res := response{status: resp.StatusCode, body: body}
		if resp.StatusCode >= 500 && !isProcessing(body) {
			return res, errUpstream
		}
		return res, nil
	})
}

func (c *Client) password() (string, string) {
	timestamp := c.now().In(eat).Format(timestampLayout)
	raw := c.cfg.ShortCode + c.cfg.Passkey + timestamp
	return base64.StdEncoding.EncodeToString([]byte(raw)), timestamp
}

func isProcessing(body []byte) bool {
	var eb errorBody
	return json.Unmarshal(body, &eb) == nil && eb.ErrorCode == errCodeProcessing
}
