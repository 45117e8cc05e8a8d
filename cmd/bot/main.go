package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/bot"
	"github.com/cyphera/kaia-bot/internal/chain"
	"github.com/cyphera/kaia-bot/internal/client/certificate"
	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/config"
	"github.com/cyphera/kaia-bot/internal/conversation"
	"github.com/cyphera/kaia-bot/internal/handlers"
	"github.com/cyphera/kaia-bot/internal/logger"
	"github.com/cyphera/kaia-bot/internal/qr"
	"github.com/cyphera/kaia-bot/internal/services"
	"github.com/cyphera/kaia-bot/internal/wallet"
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

const qrImageTTL = 10 * time.Minute

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg.Stage)
	defer logger.Sync()

	// Chain RPC connection
	chainClient, err := chain.Dial(cfg.RPCEndpoint)
	if err != nil {
		logger.Fatal("Unable to connect to chain RPC", zap.Error(err))
	}
	defer chainClient.Close()

	// Pairing gateway connection
	dialCtx, cancelDial := context.WithTimeout(context.Background(), 15*time.Second)
	signClient, err := walletconnect.DialGateway(dialCtx, cfg.PairingGatewayURL)
	cancelDial()
	if err != nil {
		logger.Fatal("Unable to connect to pairing gateway", zap.Error(err))
	}
	defer signClient.Close()

	// Wallet binding store: shared Redis when configured, in-process
	// memory otherwise.
	var store wallet.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		store = wallet.NewRedisStore(rdb)
		logger.Info("Using Redis wallet store", zap.String("addr", cfg.RedisAddr))
	} else {
		store = wallet.NewMemoryStore()
		logger.Info("Using in-memory wallet store")
	}

	// Clients
	lineClient := line.NewClient(cfg.LineChannelAccessToken)
	custodialClient := kaiawallet.NewClient(cfg.KaiaWalletAPIBaseURL, cfg.ChainID, cfg.AppName)

	var certificates certificate.Generator
	if cfg.CertificateServiceURL != "" {
		certificates = certificate.NewClient(cfg.CertificateServiceURL)
	}

	qrCache := qr.NewCache(qrImageTTL)
	conversations := conversation.NewStore()

	// Services
	connectService := services.NewConnectService(store, signClient, custodialClient, lineClient, qrCache, services.ConnectConfig{
		ChainID:              cfg.EIP155ChainID(),
		ConnectTimeout:       cfg.ConnectTimeout,
		PollAttempts:         cfg.ConnectPollAttempts,
		PollInterval:         cfg.ConnectPollInterval,
		MiniWalletURLCompact: cfg.MiniWalletURLCompact,
		MiniWalletURLTall:    cfg.MiniWalletURLTall,
		LiffRelayBaseURL:     cfg.LiffRelayBaseURL,
		PublicBaseURL:        cfg.PublicBaseURL,
	})

	transactionService := services.NewTransactionService(connectService, signClient, custodialClient, chainClient, lineClient, services.TxConfig{
		ChainID:              cfg.EIP155ChainID(),
		PollAttempts:         cfg.ConnectPollAttempts,
		PollInterval:         cfg.ConnectPollInterval,
		MiniWalletURLCompact: cfg.MiniWalletURLCompact,
	})

	donationService := services.NewDonationService(connectService, transactionService, custodialClient, certificates, lineClient, services.DonationConfig{
		ContractAddress: cfg.ContractAddress,
		PollAttempts:    cfg.DonationPollAttempts,
		PollInterval:    cfg.DonationPollInterval,
	})

	projectService := services.NewProjectService(chainClient, cfg.ContractAddress)

	router := bot.NewRouter(lineClient, connectService, transactionService, donationService, projectService, conversations, bot.Config{
		ExplorerBaseURL: cfg.ExplorerBaseURL,
	})

	// HTTP surface
	webhookHandler := handlers.NewWebhookHandler(router, cfg.LineChannelSecret)
	qrHandler := handlers.NewQRHandler(qrCache)

	engine := gin.Default()
	engine.GET("/health", handlers.Health)
	engine.POST("/webhook", webhookHandler.HandleWebhook)
	engine.GET("/qr/:id", qrHandler.HandleImage)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
