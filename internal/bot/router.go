// Package bot maps inbound chat messages to the wallet services and
// renders their outcomes as replies. The router itself is a stateless
// dispatch table; all per-user state lives in the wallet and conversation
// stores.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/conversation"
	"github.com/cyphera/kaia-bot/internal/donation"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/services"
	"github.com/cyphera/kaia-bot/internal/wallet"
)

// Connector is the session lifecycle surface the router dispatches to.
// *services.ConnectService satisfies it.
type Connector interface {
	Connect(ctx context.Context, userID string) (*services.ConnectResult, error)
	CurrentBinding(ctx context.Context, userID string) (*wallet.Binding, error)
	Disconnect(ctx context.Context, userID string) (*wallet.Binding, error)
}

// TransactionSender dispatches value transfers. *services.TransactionService
// satisfies it.
type TransactionSender interface {
	Send(ctx context.Context, userID, recipient, amount string) (string, error)
}

// Donator dispatches donations. *services.DonationService satisfies it.
type Donator interface {
	Donate(ctx context.Context, userID, projectID, amount string) (string, error)
}

// ProjectLister reads project records. *services.ProjectService satisfies it.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]donation.Project, error)
}

// Config carries the router's rendering knobs.
type Config struct {
	ExplorerBaseURL string
}

// Router dispatches one inbound text message to a command handler, or to
// the user's in-progress conversation when one exists. Every inbound
// message produces a reply; internal failures are converted to user-facing
// messages and never escape.
type Router struct {
	sender        line.Sender
	connector     Connector
	transactions  TransactionSender
	donations     Donator
	projects      ProjectLister
	conversations *conversation.Store
	cfg           Config
	logger        *zap.Logger
}

// NewRouter wires the command router.
func NewRouter(sender line.Sender, connector Connector, transactions TransactionSender, donations Donator, projects ProjectLister, conversations *conversation.Store, cfg Config) *Router {
	return &Router{
		sender:        sender,
		connector:     connector,
		transactions:  transactions,
		donations:     donations,
		projects:      projects,
		conversations: conversations,
		cfg:           cfg,
		logger:        logger.Log,
	}
}

// HandleText processes one inbound text message from a user.
func (r *Router) HandleText(ctx context.Context, userID, text string) {
	switch strings.TrimSpace(text) {
	case "/connect":
		r.handleConnect(ctx, userID)
	case "/my_wallet":
		r.handleMyWallet(ctx, userID)
	case "/send_tx":
		r.handleSendTx(ctx, userID)
	case "/donate":
		r.handleDonate(ctx, userID)
	case "/project_list":
		r.handleProjectList(ctx, userID)
	case "/disconnect":
		r.handleDisconnect(ctx, userID)
	default:
		if _, ok := r.conversations.Current(userID); ok {
			r.handleConversationInput(ctx, userID, text)
		} else {
			r.reply(ctx, userID, greetingMessage())
		}
	}
}

func (r *Router) handleConnect(ctx context.Context, userID string) {
	result, err := r.connector.Connect(ctx, userID)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}

	switch result.Outcome {
	case services.ConnectOutcomeAlreadyConnected:
		r.reply(ctx, userID, textWithCommands(fmt.Sprintf(
			"You have already connected %s\nYour address: %s\n\nDisconnect wallet first to connect a new one.",
			result.Binding.WalletName(), result.Binding.Address)))
	case services.ConnectOutcomeConnected:
		r.reply(ctx, userID, textWithCommands(fmt.Sprintf(
			"%s connected successfully\nYour address: %s",
			result.Binding.WalletName(), result.Binding.Address)))
	case services.ConnectOutcomeCanceled:
		r.reply(ctx, userID, textWithCommands("Wallet connection was declined in the wallet app."))
	case services.ConnectOutcomeTimeout:
		r.reply(ctx, userID, textWithCommands("Connection process timed out. Please try again."))
	default:
		r.reply(ctx, userID, textWithCommands("Failed to connect wallet. Please try again."))
	}
}

func (r *Router) handleMyWallet(ctx context.Context, userID string) {
	binding, err := r.connector.CurrentBinding(ctx, userID)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}
	if binding == nil {
		r.reply(ctx, userID, textWithCommands("You didn't connect a wallet"))
		return
	}
	r.reply(ctx, userID, textWithCommands(fmt.Sprintf(
		"Connected wallet: %s\nYour address: %s", binding.WalletName(), binding.Address)))
}

func (r *Router) handleSendTx(ctx context.Context, userID string) {
	binding, err := r.connector.CurrentBinding(ctx, userID)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}
	if binding == nil {
		r.reply(ctx, userID, textWithCommands("Connect wallet to send transaction"))
		return
	}

	r.conversations.Begin(userID, conversation.StepAwaitingAddress)
	r.reply(ctx, userID, line.NewTextMessage("Please enter the address to send to:"))
}

func (r *Router) handleDonate(ctx context.Context, userID string) {
	binding, err := r.connector.CurrentBinding(ctx, userID)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}
	if binding == nil {
		r.reply(ctx, userID, textWithCommands("Connect wallet to donate"))
		return
	}

	r.conversations.Begin(userID, conversation.StepAwaitingProjectID)
	r.reply(ctx, userID, line.NewTextMessage("Please enter the project ID to donate to:"))
}

func (r *Router) handleProjectList(ctx context.Context, userID string) {
	projects, err := r.projects.ListProjects(ctx)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}
	r.reply(ctx, userID, textWithCommands(formatProjects(projects, time.Now())))
}

func (r *Router) handleDisconnect(ctx context.Context, userID string) {
	binding, err := r.connector.Disconnect(ctx, userID)
	if err != nil {
		r.replyError(ctx, userID, err)
		return
	}
	if binding == nil {
		r.reply(ctx, userID, textWithCommands("You didn't connect a wallet"))
		return
	}
	r.reply(ctx, userID, textWithCommands("Wallet has been disconnected"))
}

// handleConversationInput feeds one message into the user's flow and, on
// the terminal step, dispatches the collected input. The conversation is
// always cleared before dispatch so no state outlives its flow, whatever
// the dispatch outcome.
func (r *Router) handleConversationInput(ctx context.Context, userID, text string) {
	state, done, err := r.conversations.Advance(userID, text)
	if err != nil {
		r.logger.Error("conversation flow broke",
			zap.String("user_id", userID),
			zap.Error(err))
		r.reply(ctx, userID, textWithCommands("An error occurred. Please start over."))
		return
	}

	if !done {
		switch state.Step {
		case conversation.StepAwaitingAmount:
			r.reply(ctx, userID, line.NewTextMessage("Please enter the amount to send:"))
		case conversation.StepAwaitingDonationAmount:
			r.reply(ctx, userID, line.NewTextMessage("Please enter the amount to donate:"))
		default:
			r.conversations.End(userID)
			r.reply(ctx, userID, textWithCommands("An error occurred. Please start over."))
		}
		return
	}

	r.conversations.End(userID)

	switch state.Step {
	case conversation.StepAwaitingAmount:
		txHash, err := r.transactions.Send(ctx, userID, state.Address, state.Amount)
		if err != nil {
			r.replyError(ctx, userID, err)
			return
		}
		r.reply(ctx, userID, textWithCommands(
			"Transaction result\n"+explorerTxURL(r.cfg.ExplorerBaseURL, txHash)))
	case conversation.StepAwaitingDonationAmount:
		txHash, err := r.donations.Donate(ctx, userID, state.ProjectID, state.Amount)
		if err != nil {
			r.replyError(ctx, userID, err)
			return
		}
		r.reply(ctx, userID, textWithCommands(
			"Donation successful!\n"+explorerTxURL(r.cfg.ExplorerBaseURL, txHash)))
	default:
		r.reply(ctx, userID, textWithCommands("An error occurred. Please start over."))
	}
}

// replyError converts an internal failure to the user-facing message its
// class calls for.
func (r *Router) replyError(ctx context.Context, userID string, err error) {
	r.logger.Warn("command failed", zap.String("user_id", userID), zap.Error(err))

	var text string
	switch {
	case errors.Is(err, services.ErrNotConnected):
		text = "Connect wallet to send transaction"
	case errors.Is(err, services.ErrInvalidAmount):
		text = "Invalid amount. Please enter a valid number."
	case errors.Is(err, services.ErrInvalidProjectID):
		text = "Invalid project ID. Please enter a valid number."
	default:
		switch services.ClassOf(err) {
		case services.ClassTimeout:
			text = "The operation timed out. Please try again."
		case services.ClassCanceled:
			text = "The request was canceled in your wallet."
		case services.ClassUserInput:
			text = "Invalid input. Please try again."
		default:
			text = "An error occurred. Please try again."
		}
	}

	r.reply(ctx, userID, textWithCommands(text))
}

// reply pushes messages to the user. Delivery failures are logged; there
// is nothing else to do with them.
func (r *Router) reply(ctx context.Context, userID string, messages ...line.Message) {
	if err := r.sender.SendMessage(ctx, userID, messages); err != nil {
		r.logger.Error("failed to send reply",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
