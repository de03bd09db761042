package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/zvrva/journeys/config"
	"github.com/zvrva/journeys/internal/kafka"
	"github.com/zvrva/journeys/internal/service/ingest"
)

// loader publishes a JSON file of flight event records to the ingestion
// topic, for bulk administrative entry.
func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "path to a JSON array of flight event records")
	flag.Parse()
	if *file == "" {
		log.Fatal("usage: loader -file events.json")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var records []ingest.FlightEventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	ctx := context.Background()
	for i, record := range records {
		key := fmt.Sprintf("%s-%d", record.FlightNumber, i)
		if err := producer.Publish(ctx, cfg.Kafka.FlightEventsTopic, key, record); err != nil {
			log.Fatalf("publish record %d: %v", i, err)
		}
	}

	log.Printf("published %d flight events to %s", len(records), cfg.Kafka.FlightEventsTopic)
}
