package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/chain"
	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/wallet"
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

// BindingResolver resolves the current (non-expired) wallet binding of a
// user. *ConnectService satisfies it.
type BindingResolver interface {
	CurrentBinding(ctx context.Context, userID string) (*wallet.Binding, error)
}

// TxConfig carries the dispatch knobs shared by transfers and donations.
type TxConfig struct {
	// ChainID in CAIP-2 form for pairing protocol requests.
	ChainID string

	// PollAttempts / PollInterval bound the custodial confirmation polling.
	PollAttempts int
	PollInterval time.Duration

	// MiniWalletURLCompact builds the open-wallet deep link for pairing
	// protocol wallets that advertise a redirect target.
	MiniWalletURLCompact string
}

// ethTransaction is the eth_sendTransaction parameter object.
type ethTransaction struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Value    string `json:"value"`
	GasPrice string `json:"gasPrice"`
	GasLimit string `json:"gasLimit"`
	Data     string `json:"data,omitempty"`
}

// TransactionService dispatches value transfers through whichever wallet
// path the user has bound. It resolves gas parameters from the chain node
// for pairing sessions and delegates confirmation to the custodial API for
// Kaia Wallet bindings.
type TransactionService struct {
	bindings   BindingResolver
	signClient walletconnect.SignClient
	custodial  CustodialClient
	rpc        chain.RPC
	sender     line.Sender
	cfg        TxConfig
	logger     *zap.Logger
}

// NewTransactionService creates a transaction dispatcher.
func NewTransactionService(bindings BindingResolver, signClient walletconnect.SignClient, custodial CustodialClient, rpc chain.RPC, sender line.Sender, cfg TxConfig) *TransactionService {
	return &TransactionService{
		bindings:   bindings,
		signClient: signClient,
		custodial:  custodial,
		rpc:        rpc,
		sender:     sender,
		cfg:        cfg,
		logger:     logger.Log,
	}
}

// Send submits a value transfer of the given decimal KAIA amount to the
// recipient and returns the transaction hash.
func (s *TransactionService) Send(ctx context.Context, userID, recipient, amount string) (string, error) {
	binding, err := s.bindings.CurrentBinding(ctx, userID)
	if err != nil {
		return "", err
	}
	if binding == nil {
		return "", ErrNotConnected
	}

	valueHex, err := AmountToHex(amount)
	if err != nil {
		return "", err
	}

	s.logger.Info("dispatching transaction",
		zap.String("user_id", userID),
		zap.String("kind", string(binding.Kind)),
		zap.String("to", recipient),
		zap.String("value", valueHex))

	switch binding.Kind {
	case wallet.KindWalletConnect:
		return s.sendViaPeer(ctx, userID, binding, recipient, valueHex, nil)
	case wallet.KindKaiaWallet:
		return s.sendViaCustodial(ctx, userID, binding, recipient, valueHex)
	default:
		return "", ProtocolErr(fmt.Sprintf("unknown wallet kind %q", binding.Kind))
	}
}

// sendViaPeer routes an eth_sendTransaction request over the user's pairing
// session. data may carry contract calldata; nil means a plain transfer.
// The request suspends until the peer wallet signs or rejects.
func (s *TransactionService) sendViaPeer(ctx context.Context, userID string, binding *wallet.Binding, to, valueHex string, data []byte) (string, error) {
	if binding.Topic == "" {
		return "", ProtocolErr("pairing binding is missing its session topic")
	}

	if err := s.sendOpenWalletPrompt(ctx, userID, binding); err != nil {
		return "", err
	}

	peb, err := hexutil.DecodeBig(valueHex)
	if err != nil {
		return "", ProtocolErr("unparseable wire amount")
	}

	gasPrice, err := s.rpc.GasPrice(ctx)
	if err != nil {
		return "", ExternalErr("failed to get gas price", err)
	}
	gasLimit, err := s.rpc.EstimateGas(ctx, chain.CallMsg{
		From:  binding.Address,
		To:    to,
		Value: peb,
		Data:  data,
	})
	if err != nil {
		return "", ExternalErr("failed to estimate gas", err)
	}

	tx := ethTransaction{
		From:     binding.Address,
		To:       to,
		Value:    valueHex,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
	}
	if len(data) > 0 {
		tx.Data = hexutil.Encode(data)
	}

	raw, err := s.signClient.Request(ctx, binding.Topic, s.cfg.ChainID, walletconnect.MethodCall{
		Method: "eth_sendTransaction",
		Params: []ethTransaction{tx},
	})
	if err != nil {
		return "", ExternalErr("wallet rejected or failed the transaction", err)
	}

	var txHash string
	if err := json.Unmarshal(raw, &txHash); err != nil {
		return "", ProtocolErr("unexpected transaction response from wallet")
	}

	s.logger.Info("transaction submitted via pairing session",
		zap.String("user_id", userID),
		zap.String("tx_hash", txHash))
	return txHash, nil
}

// sendViaCustodial prepares a send_value request, points the user at the
// wallet app and polls for the signed result.
func (s *TransactionService) sendViaCustodial(ctx context.Context, userID string, binding *wallet.Binding, to, valueHex string) (string, error) {
	requestKey, err := s.custodial.PrepareSendValue(ctx, binding.Address, to, valueHex)
	if err != nil {
		return "", ExternalErr("failed to prepare transaction", err)
	}

	if err := s.sendConfirmPrompt(ctx, userID, "Kaia Wallet", kaiawallet.DeepLink(requestKey)); err != nil {
		return "", err
	}

	return s.awaitCustodialResult(ctx, requestKey, kaiawallet.RequestTypeSendValue, s.cfg.PollAttempts, s.cfg.PollInterval)
}

// awaitCustodialResult polls a prepared request to its terminal status and
// maps the outcome to the error taxonomy.
func (s *TransactionService) awaitCustodialResult(ctx context.Context, requestKey string, expected kaiawallet.RequestType, attempts int, interval time.Duration) (string, error) {
	result, err := s.custodial.PollResult(ctx, requestKey, expected, attempts, interval)
	if err != nil {
		if err == kaiawallet.ErrPollExhausted {
			return "", TimeoutErr("transaction confirmation timed out")
		}
		return "", ExternalErr("failed to poll transaction result", err)
	}
	if result.Status == kaiawallet.StatusCanceled {
		return "", CanceledErr("transaction was canceled in the wallet")
	}

	txHash := result.Result.TxHash
	if txHash == "" {
		return "", ProtocolErr("completed result carries no transaction hash")
	}

	s.logger.Info("transaction submitted via custodial wallet",
		zap.String("request_key", requestKey),
		zap.String("tx_hash", txHash))
	return txHash, nil
}

// sendOpenWalletPrompt tells the user to confirm in their pairing wallet,
// with a deep link back into the app when the peer advertises one.
func (s *TransactionService) sendOpenWalletPrompt(ctx context.Context, userID string, binding *wallet.Binding) error {
	msg := line.NewTextMessage(fmt.Sprintf("Open %s and confirm transaction", binding.WalletName()))

	if binding.Peer != nil && binding.Peer.Redirect != nil && binding.Peer.Redirect.Universal != "" {
		openURI := s.cfg.MiniWalletURLCompact + "/open/wallet/?url=" + url.QueryEscape(binding.Peer.Redirect.Universal)
		msg.QuickReply = &line.QuickReply{Items: []line.QuickReplyItem{
			line.URIAction("Open Wallet", openURI),
		}}
	}

	if err := s.sender.SendMessage(ctx, userID, []line.Message{msg}); err != nil {
		return ExternalErr("failed to send confirmation prompt", err)
	}
	return nil
}

// sendConfirmPrompt tells the user to confirm in a named wallet app via a
// deep link.
func (s *TransactionService) sendConfirmPrompt(ctx context.Context, userID, walletName, deepLink string) error {
	msg := line.NewTextMessage(fmt.Sprintf("Open %s and confirm transaction", walletName))
	msg.QuickReply = &line.QuickReply{Items: []line.QuickReplyItem{
		line.URIAction("Open Wallet", deepLink),
	}}
	if err := s.sender.SendMessage(ctx, userID, []line.Message{msg}); err != nil {
		return ExternalErr("failed to send confirmation prompt", err)
	}
	return nil
}
