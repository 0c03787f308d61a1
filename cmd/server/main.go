package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livin/internal/config"
	billRepo "livin/internal/repository/bill"
	messageRepo "livin/internal/repository/message"
	profileRepo "livin/internal/repository/profile"
	propertyRepo "livin/internal/repository/property"
	serviceRepo "livin/internal/repository/service"
	userRepo "livin/internal/repository/user"
	"livin/internal/service/chat"
	"livin/internal/service/presence"
	redisSvc "livin/internal/service/redis"
	"livin/internal/service/server"
	"livin/internal/utils/log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	mongoDBClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("connect mongo", zap.Error(err))
	}

	db := mongoDBClient.Database(cfg.MongoDB)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	presenceSvc := presence.NewService(redisSvc.NewRedis(rdb), cfg.PresenceTTL)

	messages := messageRepo.NewMessageRepo(db)
	hub := chat.NewHub()
	chatSvc := chat.NewService(messages, hub)

	s := server.NewHttpServer(
		cfg,
		userRepo.NewUserRepo(db),
		profileRepo.NewProfileRepo(db),
		propertyRepo.NewPropertyRepo(db),
		serviceRepo.NewServiceRepo(db),
		billRepo.NewBillRepo(db),
		messages,
		chatSvc,
		hub,
		presenceSvc,
	)
	go s.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	<-done
}

func initMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return client, client.Ping(ctx, nil)
}
