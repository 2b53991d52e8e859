package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"notesapi/internal/shared/config"
)

// NotificationService owns the Kafka producer and the consumer workers that
// deliver email notifications. It also implements the confirmation mailer
// used by the auth flow: SendConfirmation publishes a message and the
// consumer side renders and delivers it over SMTP.
type NotificationService interface {
	SendConfirmation(ctx context.Context, email, username, token string) error

	Start(ctx context.Context) error
	Stop() error
}

type ServiceConfig struct {
	KafkaBrokers       []string
	NotificationTopic  string
	ConsumerGroupID    string
	NumConsumerWorkers int

	// Base of the confirmation link embedded in outgoing emails,
	// e.g. "http://localhost:8080/api/v1".
	ConfirmationURLBase string
	ConfirmTokenTTL     time.Duration

	Email config.EmailConfig
}

// NewServiceConfig builds the notification settings from the application config.
func NewServiceConfig(cfg *config.Config) *ServiceConfig {
	return &ServiceConfig{
		KafkaBrokers:        cfg.Kafka.Brokers,
		NotificationTopic:   cfg.Kafka.NotificationTopic,
		ConsumerGroupID:     cfg.Kafka.ConsumerGroup,
		NumConsumerWorkers:  3,
		ConfirmationURLBase: cfg.BaseURL + cfg.GetAPIBasePath(),
		ConfirmTokenTTL:     cfg.JWT.ConfirmExpiresIn,
		Email:               cfg.Email,
	}
}

type EmailNotificationService struct {
	config       *ServiceConfig
	producer     NotificationProducer
	consumer     NotificationConsumer
	emailService EmailService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewEmailNotificationService(config *ServiceConfig) (*EmailNotificationService, error) {
	var emailService EmailService
	if config.Email.SMTPHost == "" {
		log.Printf("📧 No SMTP host configured, using mock email delivery")
		emailService = NewMockEmailService()
	} else {
		smtpService, err := NewSMTPEmailService(NewSMTPConfig(config.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP email service: %w", err)
		}
		emailService = smtpService
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.NotificationTopic = config.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.NotificationTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📧 Email notification service initialized (topic: %s)", config.NotificationTopic)

	return &EmailNotificationService{
		config:       config,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (ens *EmailNotificationService) Start(ctx context.Context) error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if ens.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("🚀 Starting email notification service...")

	err := ens.consumer.StartConsumers(ens.ctx, ens.config.NumConsumerWorkers)
	if err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ens.isRunning = true
	log.Printf("✅ Email notification service started successfully")

	return nil
}

func (ens *EmailNotificationService) Stop() error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if !ens.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("🛑 Stopping email notification service...")

	ens.cancel()

	if err := ens.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := ens.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ens.isRunning = false
	log.Printf("✅ Email notification service stopped")

	return nil
}

// SendConfirmation publishes an email-confirmation notification for the
// given recipient. The message carries the full confirmation link so the
// consumer needs no access to the token codec.
func (ens *EmailNotificationService) SendConfirmation(ctx context.Context, email, username, token string) error {
	confirmationURL := ens.config.ConfirmationURLBase + "/auth/confirmed_email/" + token

	notification := NewEmailNotification(
		NotificationTypeEmailConfirmation,
		email,
		username,
		"Confirm your email address",
		map[string]interface{}{
			"confirmation_url": confirmationURL,
		},
	)

	if ens.config.ConfirmTokenTTL > 0 {
		expiresAt := time.Now().Add(ens.config.ConfirmTokenTTL)
		notification.ExpiresAt = &expiresAt
	}

	return ens.producer.PublishNotification(ctx, notification)
}
