//go:build ignore

// Публикует тестовое событие в stream:airports:changed.
//
//	go run scripts/publish_airports_changed.go -country US -codes DFW,DAL
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/airport-locator/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	country := flag.String("country", "", "ISO country of changed airports (empty - whole dataset)")
	codes := flag.String("codes", "", "Comma separated IATA codes")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var codeList []string
	if *codes != "" {
		codeList = strings.Split(*codes, ",")
	}
	event := domain.NewAirportsChangedEvent(*country, codeList...)

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamAirportsChanged,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	log.Printf("Published %s to %s: %s", id, domain.StreamAirportsChanged, data)
}
