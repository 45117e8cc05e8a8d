package bot_test

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cyphera/kaia-bot/internal/bot"
	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/conversation"
	"github.com/cyphera/kaia-bot/internal/donation"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/mocks"
	"github.com/cyphera/kaia-bot/internal/services"
	"github.com/cyphera/kaia-bot/internal/wallet"
)

func init() {
	logger.InitLogger("test")
}

// recordingSender captures every pushed message batch for assertions.
type recordingSender struct {
	mu      sync.Mutex
	batches [][]line.Message
}

func (r *recordingSender) SendMessage(_ context.Context, _ string, messages []line.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, messages)
	return nil
}

// lastText returns the text of the first message in the last batch.
func (r *recordingSender) lastText(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.batches)
	last := r.batches[len(r.batches)-1]
	require.NotEmpty(t, last)
	text, ok := last[0].(line.TextMessage)
	require.True(t, ok, "expected a text message, got %T", last[0])
	return text.Text
}

type routerFixture struct {
	router        *bot.Router
	sender        *recordingSender
	connector     *mocks.MockConnector
	transactions  *mocks.MockTransactionSender
	donations     *mocks.MockDonator
	projects      *mocks.MockProjectLister
	conversations *conversation.Store
}

func newRouterFixture(ctrl *gomock.Controller) *routerFixture {
	f := &routerFixture{
		sender:        &recordingSender{},
		connector:     mocks.NewMockConnector(ctrl),
		transactions:  mocks.NewMockTransactionSender(ctrl),
		donations:     mocks.NewMockDonator(ctrl),
		projects:      mocks.NewMockProjectLister(ctrl),
		conversations: conversation.NewStore(),
	}
	f.router = bot.NewRouter(f.sender, f.connector, f.transactions, f.donations, f.projects, f.conversations, bot.Config{
		ExplorerBaseURL: "https://scan.example.com",
	})
	return f
}

func TestHandleText_UnknownInputSendsGreeting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.router.HandleText(context.Background(), "user-1", "hello")

	text := f.sender.lastText(t)
	assert.Contains(t, text, "Commands list:")
	assert.Contains(t, text, "/connect")
}

func TestHandleText_Connect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().Connect(gomock.Any(), "user-1").Return(&services.ConnectResult{
		Outcome: services.ConnectOutcomeConnected,
		Binding: &wallet.Binding{Kind: wallet.KindKaiaWallet, Address: "0xabc"},
	}, nil)

	f.router.HandleText(context.Background(), "user-1", "/connect")

	text := f.sender.lastText(t)
	assert.Contains(t, text, "connected successfully")
	assert.Contains(t, text, "0xabc")
}

func TestHandleText_ConnectTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().Connect(gomock.Any(), "user-1").Return(&services.ConnectResult{
		Outcome: services.ConnectOutcomeTimeout,
	}, nil)

	f.router.HandleText(context.Background(), "user-1", "/connect")

	assert.Contains(t, f.sender.lastText(t), "timed out")
}

func TestHandleText_MyWalletWithoutBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(nil, nil)

	f.router.HandleText(context.Background(), "user-1", "/my_wallet")

	assert.Contains(t, f.sender.lastText(t), "didn't connect a wallet")
}

func TestHandleText_SendTxWithoutBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(nil, nil)

	f.router.HandleText(context.Background(), "user-1", "/send_tx")

	assert.Contains(t, f.sender.lastText(t), "Connect wallet to send transaction")
	_, ok := f.conversations.Current("user-1")
	assert.False(t, ok, "no flow should start without a wallet")
}

func TestHandleText_SendFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	ctx := context.Background()

	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xabc",
	}, nil)

	f.router.HandleText(ctx, "user-1", "/send_tx")
	assert.Contains(t, f.sender.lastText(t), "enter the address")

	f.router.HandleText(ctx, "user-1", "0xRecipient")
	assert.Contains(t, f.sender.lastText(t), "enter the amount")

	f.transactions.EXPECT().Send(gomock.Any(), "user-1", "0xRecipient", "1.5").Return("0xhash", nil)

	f.router.HandleText(ctx, "user-1", "1.5")
	text := f.sender.lastText(t)
	assert.Contains(t, text, "Transaction result")
	assert.Contains(t, text, "https://scan.example.com/tx/0xhash")

	_, ok := f.conversations.Current("user-1")
	assert.False(t, ok, "flow must be cleared after dispatch")
}

func TestHandleText_SendFlowInvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	ctx := context.Background()

	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xabc",
	}, nil)

	f.router.HandleText(ctx, "user-1", "/send_tx")
	f.router.HandleText(ctx, "user-1", "0xRecipient")

	f.transactions.EXPECT().Send(gomock.Any(), "user-1", "0xRecipient", "abc").
		Return("", services.ErrInvalidAmount)

	f.router.HandleText(ctx, "user-1", "abc")
	assert.Contains(t, f.sender.lastText(t), "Invalid amount")

	// The flow ended before dispatch; the next message is a command again.
	_, ok := f.conversations.Current("user-1")
	assert.False(t, ok)
}

func TestHandleText_SendFlowTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	ctx := context.Background()

	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xabc",
	}, nil)

	f.router.HandleText(ctx, "user-1", "/send_tx")
	f.router.HandleText(ctx, "user-1", "0xRecipient")

	f.transactions.EXPECT().Send(gomock.Any(), "user-1", "0xRecipient", "1").
		Return("", services.TimeoutErr("confirmation timed out"))

	f.router.HandleText(ctx, "user-1", "1")
	assert.Contains(t, f.sender.lastText(t), "timed out")
}

func TestHandleText_DonateFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	ctx := context.Background()

	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindWalletConnect,
		Address: "0xabc",
		Topic:   "topic-1",
	}, nil)

	f.router.HandleText(ctx, "user-1", "/donate")
	assert.Contains(t, f.sender.lastText(t), "project ID")

	f.router.HandleText(ctx, "user-1", "3")
	assert.Contains(t, f.sender.lastText(t), "amount to donate")

	f.donations.EXPECT().Donate(gomock.Any(), "user-1", "3", "0.5").Return("0xdonhash", nil)

	f.router.HandleText(ctx, "user-1", "0.5")
	text := f.sender.lastText(t)
	assert.Contains(t, text, "Donation successful")
	assert.Contains(t, text, "0xdonhash")

	_, ok := f.conversations.Current("user-1")
	assert.False(t, ok)
}

func TestHandleText_DonateWithoutBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(nil, nil)

	f.router.HandleText(context.Background(), "user-1", "/donate")

	assert.Contains(t, f.sender.lastText(t), "Connect wallet to donate")
}

func TestHandleText_ProjectList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.projects.EXPECT().ListProjects(gomock.Any()).Return([]donation.Project{
		{
			ID:               big.NewInt(2),
			Title:            "Clean Water",
			Goal:             big.NewInt(1_000_000),
			TotalFundsRaised: big.NewInt(250_000),
			Deadline:         big.NewInt(4_102_444_800),
		},
	}, nil)

	f.router.HandleText(context.Background(), "user-1", "/project_list")

	text := f.sender.lastText(t)
	assert.Contains(t, text, "#2 Clean Water")
	assert.Contains(t, text, "/donate")
}

func TestHandleText_ProjectListEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.projects.EXPECT().ListProjects(gomock.Any()).Return(nil, nil)

	f.router.HandleText(context.Background(), "user-1", "/project_list")

	assert.Contains(t, f.sender.lastText(t), "no fund-raising projects")
}

func TestHandleText_Disconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().Disconnect(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xabc",
	}, nil)

	f.router.HandleText(context.Background(), "user-1", "/disconnect")

	assert.Contains(t, f.sender.lastText(t), "disconnected")
}

func TestHandleText_TrimsWhitespaceAroundCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(nil, nil)

	f.router.HandleText(context.Background(), "user-1", "  /my_wallet \n")

	assert.Contains(t, f.sender.lastText(t), "didn't connect a wallet")
}

func TestHandleText_ConversationInputIsNotTrimmedIntoCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRouterFixture(ctrl)
	ctx := context.Background()

	f.connector.EXPECT().CurrentBinding(gomock.Any(), "user-1").Return(&wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xabc",
	}, nil)

	f.router.HandleText(ctx, "user-1", "/send_tx")

	// An address that happens to contain slashes still feeds the flow.
	f.router.HandleText(ctx, "user-1", "0xAddressWith/Slash")
	assert.Contains(t, f.sender.lastText(t), "enter the amount")

	state, ok := f.conversations.Current("user-1")
	require.True(t, ok)
	assert.True(t, strings.Contains(state.Address, "/"))
}
