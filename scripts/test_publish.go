//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LocationInput struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

type GenerateRouteRequest struct {
	Start LocationInput `json:"start"`
	End   LocationInput `json:"end"`
}

type RouteGenerateEvent struct {
	GenerationID uuid.UUID            `json:"generation_id"`
	Request      GenerateRouteRequest `json:"request"`
}

// Ручная публикация события генерации в Redis-стрим для проверки воркера:
//
//	go run scripts/test_publish.go -addr localhost:6379
func main() {
	addr := flag.String("addr", "localhost:6379", "redis address")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	startLat, startLon := 37.4419, -122.1430
	endLat, endLon := 37.3688, -122.0363

	event := RouteGenerateEvent{
		GenerationID: uuid.New(),
		Request: GenerateRouteRequest{
			Start: LocationInput{Lat: &startLat, Lon: &startLon},
			End:   LocationInput{Lat: &endLat, Lon: &endLon},
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "routes:generate",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("publish: %v", err)
	}

	fmt.Printf("published generation %s as message %s\n", event.GenerationID, id)
}
