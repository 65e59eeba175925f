package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mosque/internal/enrich"
	"mosque/internal/env"
	"mosque/internal/keys"
	"mosque/internal/storage"
	"mosque/pkg/geo"
	"mosque/pkg/graceful"
	"mosque/pkg/location"
)

// importer fetches mosques from OpenStreetMap (or a JSON file), normalizes
// them and writes the dataset to MinIO. Writing the dataset object triggers
// the bucket notification running finders reload from.
func main() {
	from := flag.String("from", "overpass", "where to read mosques: overpass or a JSON file path")
	resolve := flag.Bool("resolve", false, "reverse geocode places without a district")
	flag.Parse()

	env.LoadEnv()
	bucketName := env.GetEnv("MOSQUE_BUCKET_NAME", "mosques")
	dataset := env.GetEnv("FINDER_DATASET", "bangladesh")

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()
	start := time.Now()

	var source storage.Source = storage.NewOverpassSource(env.GetEnv("OVERPASS_URL", ""), 3*time.Minute, geo.Bangladesh)
	if *from != "overpass" {
		source = storage.FileSource{Path: *from}
	}
	raw, err := source.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load mosques: %v", err)
	}

	var resolver enrich.Resolver
	if *resolve {
		resolver = location.NewClient(env.GetEnv("NOMINATIM_URL", ""), env.GetEnv("NOMINATIM_USER_AGENT", ""))
	}
	mosques := enrich.Normalize(ctx, raw, resolver)

	s3Service, err := storage.NewS3Service()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := s3Service.CreateBucket(ctx, bucketName, ""); err != nil {
		log.Fatal(err)
	}
	if err := s3Service.StoreDataset(ctx, bucketName, dataset, mosques); err != nil {
		log.Fatalf("Failed to store dataset: %v", err)
	}

	log.Printf("Imported %d of %d mosques to %s/%s, took %s", len(mosques), len(raw), bucketName, keys.Dataset(dataset), time.Since(start))
}
