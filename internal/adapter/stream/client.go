package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wallet-assets/internal/config"
	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event types pushed by the wallet backend.
const (
	EventNetworkSelected = "networkSelected"
	EventAccountSelected = "accountSelected"
	EventVisibleTokens   = "visibleTokens"
	EventSpotPrices      = "spotPrices"
	EventAccounts        = "accounts"
	EventNetworks        = "networks"
)

// StateWriter is the part of the wallet store the stream writes to.
type StateWriter interface {
	SelectNetwork(ctx context.Context, chainID entity.ChainID) error
	SelectAccount(ctx context.Context, address string) error
	SetAccounts(accounts []entity.Account)
	SetNetworks(networks []entity.Network)
	SetVisibleTokens(tokens []entity.Token)
	SetSpotPrices(prices []entity.SpotPrice)
}

// Event is one message on the wallet event stream.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type networkSelectedPayload struct {
	ChainID string `json:"chainId"`
}

type accountSelectedPayload struct {
	Address string `json:"address"`
}

// Client keeps a websocket connection to the wallet backend and applies
// its events to the store.
type Client struct {
	url               string
	handshakeTimeout  time.Duration
	reconnectInterval time.Duration
	store             StateWriter
	logger            *zap.Logger
}

// NewClient creates a new wallet event stream client.
func NewClient(cfg config.StreamConfig, store StateWriter, logger *zap.Logger) *Client {
	handshakeTimeout := cfg.HandshakeTimeout
	if handshakeTimeout <= 0 {
		handshakeTimeout = 10 * time.Second
	}
	return &Client{
		url:               cfg.URL,
		handshakeTimeout:  handshakeTimeout,
		reconnectInterval: cfg.GetReconnectInterval(),
		store:             store,
		logger:            logger.Named("EventStream"),
	}
}

// Run connects and reads events until ctx is cancelled, reconnecting after
// every dropped connection.
func (c *Client) Run(ctx context.Context) {
	c.logger.Info("Starting wallet event stream", zap.String("url", c.url))
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			c.logger.Info("Wallet event stream stopped")
			return
		}
		c.logger.Warn("Wallet event stream disconnected",
			zap.Error(err), zap.Duration("reconnectIn", c.reconnectInterval))

		timer := time.NewTimer(c.reconnectInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.logger.Info("Wallet event stream stopped")
			return
		case <-timer.C:
		}
	}
}

// Start runs the client in its own goroutine. The returned channel is
// closed once Run has returned.
func (c *Client) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()
	return done
}

func (c *Client) session(ctx context.Context) error {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.handshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: dial to %s timed out: %v", apperrors.ErrTimeout, c.url, err)
		}
		return fmt.Errorf("%w: dial to %s failed: %v", apperrors.ErrExternalServiceFailure, c.url, err)
	}
	defer conn.Close()

	c.logger.Info("Wallet event stream connected", zap.String("url", c.url))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: read from %s failed: %v", apperrors.ErrExternalServiceFailure, c.url, err)
		}
		if err := c.Apply(ctx, message); err != nil {
			c.logger.Warn("Failed to apply wallet event", zap.Error(err), zap.ByteString("message", message))
		}
	}
}

// Apply decodes one event message and writes it to the store.
func (c *Client) Apply(ctx context.Context, message []byte) error {
	var ev Event
	if err := json.Unmarshal(message, &ev); err != nil {
		return fmt.Errorf("%w: malformed event: %v", apperrors.ErrInvalidInput, err)
	}

	c.logger.Debug("Wallet event received", zap.String("type", ev.Type))

	switch ev.Type {
	case EventNetworkSelected:
		var p networkSelectedPayload
		if err := decodePayload(ev, &p); err != nil {
			return err
		}
		chainID, err := entity.NewChainID(p.ChainID)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		return c.store.SelectNetwork(ctx, chainID)
	case EventAccountSelected:
		var p accountSelectedPayload
		if err := decodePayload(ev, &p); err != nil {
			return err
		}
		if strings.TrimSpace(p.Address) == "" {
			return fmt.Errorf("%w: empty account address", apperrors.ErrInvalidInput)
		}
		return c.store.SelectAccount(ctx, p.Address)
	case EventVisibleTokens:
		var tokens []entity.Token
		if err := decodePayload(ev, &tokens); err != nil {
			return err
		}
		if err := normalizeTokenChains(tokens); err != nil {
			return err
		}
		c.store.SetVisibleTokens(tokens)
	case EventSpotPrices:
		var prices []entity.SpotPrice
		if err := decodePayload(ev, &prices); err != nil {
			return err
		}
		c.store.SetSpotPrices(prices)
	case EventAccounts:
		var accounts []entity.Account
		if err := decodePayload(ev, &accounts); err != nil {
			return err
		}
		c.store.SetAccounts(normalizeBalanceKeys(accounts))
	case EventNetworks:
		var networks []entity.Network
		if err := decodePayload(ev, &networks); err != nil {
			return err
		}
		if err := normalizeNetworkChains(networks); err != nil {
			return err
		}
		c.store.SetNetworks(networks)
	default:
		return fmt.Errorf("%w: unknown event type %q", apperrors.ErrInvalidInput, ev.Type)
	}
	return nil
}

func decodePayload(ev Event, v any) error {
	if err := json.Unmarshal(ev.Payload, v); err != nil {
		return fmt.Errorf("%w: malformed %s payload: %v", apperrors.ErrInvalidInput, ev.Type, err)
	}
	return nil
}

// normalizeBalanceKeys lowercases token balance keys so they match Token.BalanceKey.
func normalizeBalanceKeys(accounts []entity.Account) []entity.Account {
	for i := range accounts {
		if accounts[i].TokenBalances == nil {
			continue
		}
		balances := make(map[string]string, len(accounts[i].TokenBalances))
		for k, v := range accounts[i].TokenBalances {
			balances[strings.ToLower(k)] = v
		}
		accounts[i].TokenBalances = balances
	}
	return accounts
}

// normalizeTokenChains rewrites chain ids into the form NewChainID produces.
func normalizeTokenChains(tokens []entity.Token) error {
	for i := range tokens {
		chainID, err := entity.NewChainID(tokens[i].ChainID.String())
		if err != nil {
			return fmt.Errorf("%w: token %s: %v", apperrors.ErrInvalidInput, tokens[i].Symbol, err)
		}
		tokens[i].ChainID = chainID
	}
	return nil
}

func normalizeNetworkChains(networks []entity.Network) error {
	for i := range networks {
		chainID, err := entity.NewChainID(networks[i].ChainID.String())
		if err != nil {
			return fmt.Errorf("%w: network %s: %v", apperrors.ErrInvalidInput, networks[i].Name, err)
		}
		networks[i].ChainID = chainID
	}
	return nil
}
