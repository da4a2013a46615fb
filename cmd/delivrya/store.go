package main

import (
	"fmt"

	"delivrya/authclient"
	"delivrya/config"
	"delivrya/navigation"
	"delivrya/tokenstore"

	"github.com/redis/go-redis/v9"
)

var openDB = config.OpenDB

func openStore(cfg config.TokenStore) (tokenstore.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		return tokenstore.NewMemory(), func() {}, nil
	case "sql":
		db, err := openDB("sqlite", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open token store: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		s, err := tokenstore.NewSQL(db)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		return s, closeDB, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return tokenstore.NewRedis(client, "delivrya:", 0), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown token store %q", cfg.Driver)
}

// authFlow wires the auth client to the device store and a navigator that
// starts on screen
func (e *env) authFlow(screen navigation.Screen) (*authclient.Client, *navigation.Navigator, func(), error) {
	store, closeStore, err := openStore(e.cfg.TokenStore)
	if err != nil {
		return nil, nil, nil, err
	}
	nav, err := navigation.NewNavigator(screen, e.log)
	if err != nil {
		closeStore()
		return nil, nil, nil, err
	}
	client := authclient.New(authclient.Config{
		BaseURL: e.cfg.Auth.BaseURL,
		Timeout: e.cfg.Auth.Timeout,
	}, store, nav, e.log)
	return client, nav, closeStore, nil
}
