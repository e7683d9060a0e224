package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"staysboard/internal/config"
	kafkax "staysboard/internal/kafka"
	"staysboard/internal/logger"
	"staysboard/internal/mailer"
	mailerService "staysboard/internal/service/mailer"
	"staysboard/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info("notifier starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mailerSender := &mailer.SMTPSender{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}
	mailerSvc := mailerService.NewMailerService(log, mailerSender)

	consumer := kafkax.NewConsumer([]string{cfg.KafkaBrokers}, "staysboard-notifier", "listing-actions")
	defer consumer.Close()
	dlq := kafkax.NewProducer([]string{cfg.KafkaBrokers}, "listing-actions-dlq")
	defer dlq.Close()

	notifier := worker.NewNotifier(log, mailerSvc, consumer, dlq, cfg.OpsEmail, cfg.MaxWorkerRoutineCount)
	if err := notifier.Run(ctx); err != nil && err != context.Canceled {
		log.Error("notifier stopped", zap.Error(err))
	}
	log.Info("notifier exited")
}
