package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kolstage/backend/config"
	"github.com/kolstage/backend/internal/domain"
	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/kafka"
	"github.com/kolstage/backend/pkg/logger"
	"github.com/kolstage/backend/pkg/pubsub"
	"github.com/kolstage/backend/pkg/router"
	"github.com/kolstage/backend/pkg/storage"
	"github.com/kolstage/backend/pkg/xcontext"
	"github.com/kolstage/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client
	storage     storage.Storage
	publisher   pubsub.Publisher

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	campaignRepo     repository.CampaignRepository
	applicationRepo  repository.ApplicationRepository
	notificationRepo repository.NotificationRepository

	emitter notify.Emitter

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	campaignDomain     domain.CampaignDomain
	applicationDomain  domain.ApplicationDomain
	notificationDomain domain.NotificationDomain
	fileDomain         domain.FileDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.toml"
	}

	configs := defaultConfigs()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, configs); err != nil {
			panic(err)
		}
	}

	// Secrets always come from the environment when present.
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		configs.Database.Password = v
	}

	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		configs.Auth.TokenSecret = v
	}

	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		configs.Storage.AccessKey = v
	}

	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		configs.Storage.SecretKey = v
	}

	s.configs = configs
}

func defaultConfigs() *config.Configs {
	return &config.Configs{
		Env: "local",
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			User:     "kolstage",
			Database: "kolstage",
		},
		ApiServer: config.APIServerConfigs{
			Host:         "localhost",
			Port:         "8080",
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 5 * time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: 24 * time.Hour,
			},
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.db = s.newDatabase()
}

func (s *srv) loadRedisClient() {
	if s.configs.Redis.Addr == "" {
		return
	}

	ctx := xcontext.WithConfigs(context.Background(), *s.configs)
	redisClient, err := xredis.NewClient(xcontext.WithLogger(ctx, s.logger))
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadPublisher() {
	if s.configs.Kafka.Addr == "" {
		return
	}

	s.publisher = kafka.NewPublisher("kolstage-api", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.campaignRepo = repository.NewCampaignRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.notificationRepo = repository.NewNotificationRepository()
}

func (s *srv) loadDomains() {
	s.emitter = notify.NewEmitter(s.notificationRepo, s.publisher)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.emitter)
	s.campaignDomain = domain.NewCampaignDomain(s.campaignRepo, s.applicationRepo, s.userRepo)
	s.applicationDomain = domain.NewApplicationDomain(
		s.applicationRepo, s.campaignRepo, s.userRepo, s.emitter)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
	s.fileDomain = domain.NewFileDomain(s.storage)
}
