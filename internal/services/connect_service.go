package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/qr"
	"github.com/cyphera/kaia-bot/internal/wallet"
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

// ConnectOutcome is the terminal result of a connection attempt.
type ConnectOutcome int

const (
	// ConnectOutcomeConnected means a binding was created and persisted.
	ConnectOutcomeConnected ConnectOutcome = iota
	// ConnectOutcomeAlreadyConnected means a binding already existed; no
	// handshake was started.
	ConnectOutcomeAlreadyConnected
	// ConnectOutcomeCanceled means the user declined in the custodial app.
	ConnectOutcomeCanceled
	// ConnectOutcomeTimeout means neither path resolved in time.
	ConnectOutcomeTimeout
	// ConnectOutcomeFailed means the winning path resolved with an error.
	ConnectOutcomeFailed
)

// ConnectResult reports how a connection attempt ended. Binding is set for
// Connected and AlreadyConnected.
type ConnectResult struct {
	Outcome ConnectOutcome
	Binding *wallet.Binding
}

// ConnectConfig carries the knobs of the connection race.
type ConnectConfig struct {
	// ChainID in CAIP-2 form, e.g. "eip155:1001".
	ChainID string

	// ConnectTimeout bounds the whole race with wall-clock time.
	ConnectTimeout time.Duration

	// PollAttempts / PollInterval bound the custodial status polling.
	PollAttempts int
	PollInterval time.Duration

	// Deep link bases for the wallet-choice message.
	MiniWalletURLCompact string
	MiniWalletURLTall    string
	LiffRelayBaseURL     string

	// PublicBaseURL of this service; when set, a QR image of the pairing
	// URI is attached to the wallet-choice message.
	PublicBaseURL string
}

// ConnectService brokers the dual-path wallet connection: a pairing
// protocol handshake and a custodial auth request run concurrently, and
// whichever resolves first becomes the user's binding. It also owns the
// binding read and disconnect paths so session expiry is handled in one
// place.
type ConnectService struct {
	store      wallet.Store
	signClient walletconnect.SignClient
	custodial  CustodialClient
	sender     line.Sender
	qrCache    *qr.Cache
	cfg        ConnectConfig
	logger     *zap.Logger
}

// NewConnectService creates a connection broker.
func NewConnectService(store wallet.Store, signClient walletconnect.SignClient, custodial CustodialClient, sender line.Sender, qrCache *qr.Cache, cfg ConnectConfig) *ConnectService {
	return &ConnectService{
		store:      store,
		signClient: signClient,
		custodial:  custodial,
		sender:     sender,
		qrCache:    qrCache,
		cfg:        cfg,
		logger:     logger.Log,
	}
}

// CurrentBinding returns the user's binding after lazily expiring dead
// pairing sessions: a binding whose session is gone or past its expiry is
// removed and reported as absent.
func (s *ConnectService) CurrentBinding(ctx context.Context, userID string) (*wallet.Binding, error) {
	binding, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, ExternalErr("failed to read wallet binding", err)
	}
	if binding == nil || binding.Kind != wallet.KindWalletConnect {
		return binding, nil
	}

	session, ok := s.signClient.Session(binding.Topic)
	if !ok || session.Expired(time.Now()) {
		s.logger.Info("removing expired pairing session",
			zap.String("user_id", userID),
			zap.String("topic", binding.Topic))
		if err := s.store.Remove(ctx, userID); err != nil {
			return nil, ExternalErr("failed to remove expired binding", err)
		}
		return nil, nil
	}
	return binding, nil
}

// Disconnect tears the user's binding down. For pairing sessions the peer
// is notified before the binding is dropped.
func (s *ConnectService) Disconnect(ctx context.Context, userID string) (*wallet.Binding, error) {
	binding, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, ExternalErr("failed to read wallet binding", err)
	}
	if binding == nil {
		return nil, nil
	}

	if binding.Kind == wallet.KindWalletConnect && binding.Topic != "" {
		if err := s.signClient.Disconnect(ctx, binding.Topic, "user disconnected"); err != nil {
			// The peer may already be gone; the local binding still goes away.
			s.logger.Warn("failed to disconnect pairing session",
				zap.String("user_id", userID),
				zap.String("topic", binding.Topic),
				zap.Error(err))
		}
	}

	if err := s.store.Remove(ctx, userID); err != nil {
		return nil, ExternalErr("failed to remove wallet binding", err)
	}
	return binding, nil
}

// raceOutcome is what one branch of the connection race reports.
type raceOutcome struct {
	binding  *wallet.Binding
	canceled bool
	err      error
}

// Connect runs the dual-path connection race for a user. If a binding
// already exists it short-circuits without starting a handshake. The first
// branch to resolve wins; the loser is cancelled and its result, should it
// arrive anyway, is never persisted. Only this method writes to the store,
// and only once.
func (s *ConnectService) Connect(ctx context.Context, userID string) (*ConnectResult, error) {
	existing, err := s.CurrentBinding(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ConnectResult{Outcome: ConnectOutcomeAlreadyConnected, Binding: existing}, nil
	}

	connectRes, err := s.signClient.Connect(ctx, walletconnect.RequiredEIP155Namespaces(s.cfg.ChainID))
	if err != nil {
		return nil, ExternalErr("failed to open pairing handshake", err)
	}

	requestKey, err := s.custodial.PrepareAuth(ctx)
	if err != nil {
		return nil, ExternalErr("failed to prepare custodial auth", err)
	}

	s.logger.Info("connection race started",
		zap.String("user_id", userID),
		zap.String("request_key", requestKey))

	if err := s.sendWalletChoice(ctx, userID, connectRes.URI, requestKey); err != nil {
		return nil, err
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan raceOutcome, 2)
	go s.runPeerBranch(raceCtx, connectRes.Approval, results)
	go s.runCustodialBranch(raceCtx, requestKey, results)

	select {
	case outcome := <-results:
		return s.settleRace(ctx, userID, outcome)
	case <-time.After(s.cfg.ConnectTimeout):
		s.logger.Info("connection race timed out", zap.String("user_id", userID))
		return &ConnectResult{Outcome: ConnectOutcomeTimeout}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// runPeerBranch waits for the remote peer to approve the handshake.
func (s *ConnectService) runPeerBranch(ctx context.Context, approval walletconnect.Approval, results chan<- raceOutcome) {
	session, err := approval(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return // race already settled
		}
		results <- raceOutcome{err: fmt.Errorf("pairing approval failed: %w", err)}
		return
	}

	address := session.AccountAddress()
	if address == "" {
		results <- raceOutcome{err: fmt.Errorf("approved session exposes no account")}
		return
	}

	peer := session.Peer
	results <- raceOutcome{binding: &wallet.Binding{
		Kind:    wallet.KindWalletConnect,
		Address: address,
		Topic:   session.Topic,
		Peer:    &peer,
	}}
}

// runCustodialBranch polls the custodial auth request. A completed or
// canceled result settles the race; poll exhaustion does not, since the
// peer path may still resolve within the overall timeout.
func (s *ConnectService) runCustodialBranch(ctx context.Context, requestKey string, results chan<- raceOutcome) {
	result, err := s.custodial.PollResult(ctx, requestKey, kaiawallet.RequestTypeAuth, s.cfg.PollAttempts, s.cfg.PollInterval)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Info("custodial auth polling ended without terminal status",
				zap.String("request_key", requestKey),
				zap.Error(err))
		}
		return
	}

	if result.Status == kaiawallet.StatusCanceled {
		results <- raceOutcome{canceled: true}
		return
	}

	address := result.Result.KlaytnAddress
	if address == "" {
		results <- raceOutcome{err: fmt.Errorf("completed auth result carries no address")}
		return
	}

	results <- raceOutcome{binding: &wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: address,
	}}
}

// settleRace persists the winning binding. The existence check before the
// write keeps a race winner from clobbering a binding that appeared through
// another path in the meantime.
func (s *ConnectService) settleRace(ctx context.Context, userID string, outcome raceOutcome) (*ConnectResult, error) {
	switch {
	case outcome.canceled:
		return &ConnectResult{Outcome: ConnectOutcomeCanceled}, nil
	case outcome.err != nil:
		s.logger.Warn("connection race branch failed",
			zap.String("user_id", userID),
			zap.Error(outcome.err))
		return &ConnectResult{Outcome: ConnectOutcomeFailed}, nil
	}

	current, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, ExternalErr("failed to read wallet binding", err)
	}
	if current != nil {
		return &ConnectResult{Outcome: ConnectOutcomeAlreadyConnected, Binding: current}, nil
	}

	if err := s.store.Set(ctx, userID, outcome.binding); err != nil {
		return nil, ExternalErr("failed to persist wallet binding", err)
	}

	s.logger.Info("wallet connected",
		zap.String("user_id", userID),
		zap.String("kind", string(outcome.binding.Kind)),
		zap.String("address", outcome.binding.Address))

	return &ConnectResult{Outcome: ConnectOutcomeConnected, Binding: outcome.binding}, nil
}

// sendWalletChoice presents the pairing URI and the custodial relay link as
// deep links, plus a QR image of the pairing URI when one can be served.
func (s *ConnectService) sendWalletChoice(ctx context.Context, userID, pairingURI, requestKey string) error {
	custodialLink := kaiawallet.DeepLink(requestKey)

	items := []line.QuickReplyItem{
		line.URIAction("Metamask",
			s.cfg.MiniWalletURLCompact+"/open/wallet/?url="+url.QueryEscape("metamask://wc?uri="+url.QueryEscape(pairingURI))),
		line.URIAction("Mini Wallet",
			s.cfg.MiniWalletURLTall+"/wc/?uri="+url.QueryEscape(pairingURI)),
		line.URIAction("Kaia Wallet",
			s.cfg.LiffRelayBaseURL+"?uri="+url.QueryEscape(custodialLink)),
	}

	choice := line.NewTextMessage("Choose your wallet")
	choice.QuickReply = &line.QuickReply{Items: items}

	messages := []line.Message{choice}
	if s.cfg.PublicBaseURL != "" && s.qrCache != nil {
		if id, err := s.qrCache.Render(pairingURI); err != nil {
			s.logger.Warn("failed to render pairing QR code", zap.Error(err))
		} else {
			imageURL := fmt.Sprintf("%s/qr/%s.png", s.cfg.PublicBaseURL, id)
			messages = append(messages, line.NewImageMessage(imageURL, ""))
		}
	}

	if err := s.sender.SendMessage(ctx, userID, messages); err != nil {
		return ExternalErr("failed to send wallet choice message", err)
	}
	return nil
}
