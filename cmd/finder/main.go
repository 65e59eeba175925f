package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"mosque/internal/enrich"
	"mosque/internal/env"
	"mosque/internal/keys"
	"mosque/internal/locate"
	"mosque/internal/models"
	"mosque/internal/presentation"
	"mosque/internal/server"
	"mosque/internal/service"
	"mosque/internal/storage"
	"mosque/pkg/geo"
	"mosque/pkg/graceful"
	"mosque/pkg/kafkaclient"
	"mosque/pkg/location"
)

func main() {
	cfg, err := env.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	geocoder := location.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent)
	var resolver enrich.Resolver
	if cfg.ResolveDistricts {
		resolver = geocoder
	}
	prepare := func(ctx context.Context, mosques []models.Mosque) []models.Mosque {
		return enrich.Normalize(ctx, mosques, resolver)
	}

	source, s3Service, err := newSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up mosque source: %v", err)
	}
	raw, err := source.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load mosques: %v", err)
	}
	mosques := prepare(ctx, raw)
	log.Printf("Serving %d mosques from %s source", len(mosques), cfg.Source)

	engine := presentation.New(mosques, presentation.Options{
		RadiusKm:    cfg.DefaultRadiusKm,
		MinRadiusKm: cfg.MinRadiusKm,
		MaxRadiusKm: cfg.MaxRadiusKm,
	})
	engine.Attach(presentation.NewMemorySurface())

	if cfg.KafkaEnabled() {
		log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID)
		consumer := kafkaclient.NewConsumer(cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaBroker)
		consumer.Start(ctx)
		defer consumer.Stop()

		var loader service.LoaderFunc[[]models.Mosque]
		if s3Service != nil {
			loader = s3Service.GetMosques
		}
		go service.NewFeed(consumer, loader, prepare).Run(ctx, engine)
	}

	srv := server.New(engine, geocoder, locate.NewSuggester(geocoder, cfg.SuggestDebounce))
	httpServer := server.HTTPServer(cfg.HTTPAddr, srv.Router(nil))
	if err := graceful.Serve(ctx, httpServer, 10*time.Second); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
	log.Println("Main method finished, application exiting.")
}

// newSource returns the configured mosque source. The S3 service is also
// returned when MinIO is configured so dataset notifications can be loaded.
func newSource(ctx context.Context, cfg env.Config) (storage.Source, *storage.S3Service, error) {
	var s3Service *storage.S3Service
	if cfg.Source == env.SourceS3 || cfg.KafkaEnabled() {
		svc, err := storage.NewS3Service()
		if err != nil && cfg.Source == env.SourceS3 {
			return nil, nil, err
		}
		if err != nil {
			log.Printf("MinIO not configured, dataset reloads disabled: %v", err)
		}
		s3Service = svc
	}

	switch cfg.Source {
	case env.SourceS3:
		return storage.S3Source{Service: s3Service, Bucket: cfg.Bucket, Key: keys.Dataset(cfg.Dataset)}, s3Service, nil
	case env.SourcePostgres:
		pool, err := storage.ConnectPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresSource(pool), s3Service, nil
	case env.SourceOverpass:
		return storage.NewOverpassSource(cfg.OverpassURL, 3*time.Minute, geo.Bangladesh), s3Service, nil
	case env.SourceFile:
		return storage.FileSource{Path: cfg.File}, s3Service, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
