package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
	"github.com/cyphera/kaia-bot/internal/mocks"
	"github.com/cyphera/kaia-bot/internal/services"
	"github.com/cyphera/kaia-bot/internal/wallet"
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

func connectTestConfig() services.ConnectConfig {
	return services.ConnectConfig{
		ChainID:              "eip155:1001",
		ConnectTimeout:       500 * time.Millisecond,
		PollAttempts:         3,
		PollInterval:         time.Millisecond,
		MiniWalletURLCompact: "https://mini.example.com/compact",
		MiniWalletURLTall:    "https://mini.example.com/tall",
		LiffRelayBaseURL:     "https://liff.example.com/relay",
	}
}

// blockingApproval suspends until the race is cancelled.
func blockingApproval(ctx context.Context) (*walletconnect.Session, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// blockingPoll mimics a custodial request that never reaches a terminal
// status before the race is cancelled.
func blockingPoll(ctx context.Context, _ string, _ kaiawallet.RequestType, _ int, _ time.Duration) (*kaiawallet.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestConnect_AlreadyConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "user-1", &wallet.Binding{
		Kind:    wallet.KindKaiaWallet,
		Address: "0xexisting",
	}))

	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeAlreadyConnected, result.Outcome)
	assert.Equal(t, "0xexisting", result.Binding.Address)
}

func TestConnect_PeerWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	session := &walletconnect.Session{
		Topic:    "topic-1",
		Expiry:   time.Now().Add(time.Hour).Unix(),
		Peer:     walletconnect.PeerMetadata{Name: "MetaMask"},
		Accounts: []string{"eip155:1001:0xPeerAddr"},
	}

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI: "wc:topic-1@2?relay",
		Approval: func(ctx context.Context) (*walletconnect.Session, error) {
			return session, nil
		},
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-1", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-1", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		DoAndReturn(blockingPoll)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeConnected, result.Outcome)
	assert.Equal(t, wallet.KindWalletConnect, result.Binding.Kind)
	assert.Equal(t, "0xPeerAddr", result.Binding.Address)
	assert.Equal(t, "topic-1", result.Binding.Topic)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, wallet.KindWalletConnect, stored.Kind)
}

func TestConnect_CustodialWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI:      "wc:topic-2@2?relay",
		Approval: blockingApproval,
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-2", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-2", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		Return(&kaiawallet.Result{
			Status: kaiawallet.StatusCompleted,
			Type:   kaiawallet.RequestTypeAuth,
			Result: kaiawallet.ResultPayload{KlaytnAddress: "0xCustodialAddr"},
		}, nil)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeConnected, result.Outcome)
	assert.Equal(t, wallet.KindKaiaWallet, result.Binding.Kind)
	assert.Equal(t, "0xCustodialAddr", result.Binding.Address)
}

func TestConnect_CustodialCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI:      "wc:topic-3@2?relay",
		Approval: blockingApproval,
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-3", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-3", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		Return(&kaiawallet.Result{
			Status: kaiawallet.StatusCanceled,
			Type:   kaiawallet.RequestTypeAuth,
		}, nil)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeCanceled, result.Outcome)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestConnect_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI:      "wc:topic-4@2?relay",
		Approval: blockingApproval,
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-4", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-4", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		DoAndReturn(blockingPoll)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	cfg := connectTestConfig()
	cfg.ConnectTimeout = 30 * time.Millisecond

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, cfg)

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeTimeout, result.Outcome)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestConnect_PeerRejectionFailsRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI: "wc:topic-5@2?relay",
		Approval: func(ctx context.Context) (*walletconnect.Session, error) {
			return nil, assert.AnError
		},
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-5", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-5", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		DoAndReturn(blockingPoll)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeFailed, result.Outcome)
}

func TestConnect_PollExhaustionDoesNotSettleRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	session := &walletconnect.Session{
		Topic:    "topic-6",
		Expiry:   time.Now().Add(time.Hour).Unix(),
		Accounts: []string{"eip155:1001:0xLateApproval"},
	}

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI: "wc:topic-6@2?relay",
		Approval: func(ctx context.Context) (*walletconnect.Session, error) {
			select {
			case <-time.After(30 * time.Millisecond):
				return session, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-6", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-6", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		Return(nil, kaiawallet.ErrPollExhausted)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeConnected, result.Outcome)
	assert.Equal(t, "0xLateApproval", result.Binding.Address)
}

func TestConnect_LateLoserNeverPersisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	approvalDone := make(chan struct{})
	session := &walletconnect.Session{
		Topic:    "topic-7",
		Expiry:   time.Now().Add(time.Hour).Unix(),
		Accounts: []string{"eip155:1001:0xLoser"},
	}

	signClient.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(&walletconnect.ConnectResult{
		URI: "wc:topic-7@2?relay",
		// The peer approves just after the custodial branch has already won.
		Approval: func(ctx context.Context) (*walletconnect.Session, error) {
			defer close(approvalDone)
			time.Sleep(20 * time.Millisecond)
			return session, nil
		},
	}, nil)
	custodial.EXPECT().PrepareAuth(gomock.Any()).Return("req-key-7", nil)
	custodial.EXPECT().PollResult(gomock.Any(), "req-key-7", kaiawallet.RequestTypeAuth, 3, time.Millisecond).
		Return(&kaiawallet.Result{
			Status: kaiawallet.StatusCompleted,
			Type:   kaiawallet.RequestTypeAuth,
			Result: kaiawallet.ResultPayload{KlaytnAddress: "0xWinner"},
		}, nil)
	sender.EXPECT().SendMessage(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	result, err := svc.Connect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, services.ConnectOutcomeConnected, result.Outcome)
	assert.Equal(t, "0xWinner", result.Binding.Address)

	<-approvalDone
	time.Sleep(10 * time.Millisecond)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, wallet.KindKaiaWallet, stored.Kind)
	assert.Equal(t, "0xWinner", stored.Address)
}

func TestCurrentBinding_ExpiresDeadSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	require.NoError(t, store.Set(context.Background(), "user-1", &wallet.Binding{
		Kind:    wallet.KindWalletConnect,
		Address: "0xabc",
		Topic:   "topic-gone",
	}))
	signClient.EXPECT().Session("topic-gone").Return(nil, false)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	binding, err := svc.CurrentBinding(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, binding)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDisconnect_NotifiesPeer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := wallet.NewMemoryStore()
	signClient := mocks.NewMockSignClient(ctrl)
	custodial := mocks.NewMockCustodialClient(ctrl)
	sender := mocks.NewMockSender(ctrl)

	require.NoError(t, store.Set(context.Background(), "user-1", &wallet.Binding{
		Kind:    wallet.KindWalletConnect,
		Address: "0xabc",
		Topic:   "topic-1",
	}))
	signClient.EXPECT().Disconnect(gomock.Any(), "topic-1", gomock.Any()).Return(nil)

	svc := services.NewConnectService(store, signClient, custodial, sender, nil, connectTestConfig())

	binding, err := svc.Disconnect(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "0xabc", binding.Address)

	stored, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDisconnect_WithoutBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewConnectService(wallet.NewMemoryStore(), mocks.NewMockSignClient(ctrl),
		mocks.NewMockCustodialClient(ctrl), mocks.NewMockSender(ctrl), nil, connectTestConfig())

	binding, err := svc.Disconnect(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, binding)
}
