package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/client/certificate"
	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/donation"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/wallet"
)

// certificateTimeout bounds the asynchronous certificate generation after a
// confirmed donation; the transaction must be mined before the service can
// read its receipt.
const certificateTimeout = 3 * time.Minute

// DonationConfig carries the donation dispatch knobs. Donation polling is
// allowed a longer window than transfers because it is not raced against a
// competing path.
type DonationConfig struct {
	ContractAddress string
	PollAttempts    int
	PollInterval    time.Duration
}

// DonationService dispatches donate(projectId) calls to the fund-raising
// contract and follows confirmed donations up with certificate delivery.
type DonationService struct {
	bindings     BindingResolver
	transactions *TransactionService
	custodial    CustodialClient
	certificates certificate.Generator
	sender       line.Sender
	cfg          DonationConfig
	logger       *zap.Logger
}

// NewDonationService creates a donation dispatcher. certificates may be nil
// when no rendering service is configured.
func NewDonationService(bindings BindingResolver, transactions *TransactionService, custodial CustodialClient, certificates certificate.Generator, sender line.Sender, cfg DonationConfig) *DonationService {
	return &DonationService{
		bindings:     bindings,
		transactions: transactions,
		custodial:    custodial,
		certificates: certificates,
		sender:       sender,
		cfg:          cfg,
		logger:       logger.Log,
	}
}

// Donate submits a donation of the given decimal KAIA amount to a project
// and returns the transaction hash. On success, certificate generation is
// kicked off in the background; its failure never fails the donation.
func (s *DonationService) Donate(ctx context.Context, userID, projectID, amount string) (string, error) {
	if projectID == "" || !digitsOnly(projectID) {
		return "", ErrInvalidProjectID
	}
	id, ok := new(big.Int).SetString(projectID, 10)
	if !ok {
		return "", ErrInvalidProjectID
	}

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

	s.logger.Info("dispatching donation",
		zap.String("user_id", userID),
		zap.String("kind", string(binding.Kind)),
		zap.String("project_id", projectID),
		zap.String("value", valueHex))

	var txHash string
	switch binding.Kind {
	case wallet.KindWalletConnect:
		data, packErr := donation.PackDonate(id)
		if packErr != nil {
			return "", ProtocolErr(fmt.Sprintf("failed to encode donation call: %v", packErr))
		}
		txHash, err = s.transactions.sendViaPeer(ctx, userID, binding, s.cfg.ContractAddress, valueHex, data)
	case wallet.KindKaiaWallet:
		txHash, err = s.donateViaCustodial(ctx, userID, projectID, valueHex)
	default:
		return "", ProtocolErr(fmt.Sprintf("unknown wallet kind %q", binding.Kind))
	}
	if err != nil {
		return "", err
	}

	if s.certificates != nil {
		go s.DeliverCertificate(userID, txHash)
	}

	return txHash, nil
}

// donateViaCustodial prepares an execute_contract request carrying the
// donate method ABI and its parameter list, then polls for the signed
// result.
func (s *DonationService) donateViaCustodial(ctx context.Context, userID, projectID, valueHex string) (string, error) {
	params, err := json.Marshal([]string{projectID})
	if err != nil {
		return "", ProtocolErr(fmt.Sprintf("failed to encode donation params: %v", err))
	}

	requestKey, err := s.custodial.PrepareExecuteContract(ctx, s.cfg.ContractAddress, donation.DonateMethodABI, string(params), valueHex)
	if err != nil {
		return "", ExternalErr("failed to prepare donation", err)
	}

	if err := s.transactions.sendConfirmPrompt(ctx, userID, "Kaia Wallet", kaiawallet.DeepLink(requestKey)); err != nil {
		return "", err
	}

	return s.transactions.awaitCustodialResult(ctx, requestKey, kaiawallet.RequestTypeExecuteContract, s.cfg.PollAttempts, s.cfg.PollInterval)
}

// DeliverCertificate renders the donation certificate for a confirmed
// transaction and sends it to the user. Failures are reported as a soft
// warning; the donation outcome stands either way.
func (s *DonationService) DeliverCertificate(userID, txHash string) {
	ctx, cancel := context.WithTimeout(context.Background(), certificateTimeout)
	defer cancel()

	imageURL, err := s.certificates.Generate(ctx, txHash)
	if err != nil {
		s.logger.Warn("certificate generation failed",
			zap.String("user_id", userID),
			zap.String("tx_hash", txHash),
			zap.Error(err))
		_ = s.sender.SendMessage(ctx, userID, []line.Message{
			line.NewTextMessage("Your donation is confirmed, but the certificate could not be generated right now."),
		})
		return
	}

	if err := s.sender.SendMessage(ctx, userID, []line.Message{
		line.NewTextMessage("Thank you! Here is your donation certificate:"),
		line.NewImageMessage(imageURL, ""),
	}); err != nil {
		s.logger.Warn("failed to deliver certificate",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
