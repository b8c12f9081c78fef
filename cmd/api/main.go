package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Bitta/internal/config"
	"Bitta/internal/handler"
	"Bitta/internal/middleware"
	"Bitta/internal/pkg"
	"Bitta/internal/provider"
	"Bitta/internal/repository/mysql"
	"Bitta/internal/repository/redis"
	"Bitta/internal/router"
	"Bitta/internal/service"
	"Bitta/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pkg.InitLogger(cfg.Server.LogLevel)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysql.InitDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	// 自动建表
	if cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return err
		}
	}

	// 连接redis
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	objects, err := storage.NewS3Storage(ctx, storage.S3Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	})
	if err != nil {
		return err
	}

	issuer := pkg.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokens := &redis.TokenRepository{Client: rdb, TTL: issuer.AccessTTL()}

	var mailer service.Mailer
	if cfg.SMTP.Enabled() {
		mailer = pkg.NewMailer(pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	tx := &mysql.TxManager{DB: db}
	outbox := &mysql.OutboxRepository{DB: db}
	memberRepo := &mysql.MemberRepository{DB: db}
	members := provider.NewMemberProvider(memberRepo)
	applies := provider.NewApplyProvider(&mysql.ApplyRepository{DB: db})

	memberSvc := service.NewMemberService(memberRepo, tokens, issuer, objects, mailer, cfg.Member.DefaultProfileImageURL)
	feedSvc := service.NewFeedService(
		&mysql.FeedRepository{DB: db},
		service.NewPhotoService(&mysql.PhotoRepository{DB: db}, objects),
		service.NewVideoService(&mysql.VideoRepository{DB: db}, objects),
		members, tx, outbox, objects,
	)
	jobPostSvc := service.NewJobPostService(&mysql.JobPostRepository{DB: db}, members, applies, tx, outbox)

	// outbox 投递，未配置 kafka 时只打日志
	sender := service.Sender(service.LogSender)
	if cfg.Kafka.Enabled() {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return err
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	// 先于 producer.Close 执行（defer 后进先出）
	stopRelayer := service.NewOutboxRelayer(outbox, sender, cfg.Kafka.Batch, cfg.Kafka.Interval).
		Start(context.Background())
	defer stopRelayer()

	r := router.InitRouter(router.Handlers{
		Member:  handler.NewMemberHandler(memberSvc),
		Feed:    handler.NewFeedHandler(feedSvc, members),
		JobPost: handler.NewJobPostHandler(jobPostSvc),
	}, middleware.AuthMiddleware(issuer, tokens))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
