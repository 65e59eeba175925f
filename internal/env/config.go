package env

import (
	"fmt"
	"time"
)

// Source names where the mosque collection is loaded from.
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
	SourceOverpass = "overpass"
)

// Config holds the finder settings read by Load.
type Config struct {
	HTTPAddr        string
	DefaultRadiusKm float64
	MinRadiusKm     float64
	MaxRadiusKm     float64
	SuggestDebounce time.Duration

	Source      string
	File        string
	Bucket      string
	Dataset     string
	PostgresURL string
	OverpassURL string

	NominatimURL       string
	NominatimUserAgent string
	// ResolveDistricts enables reverse geocoding of places without a district.
	ResolveDistricts bool

	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string
}

// Load reads .env and the environment into a Config.
func Load() (Config, error) {
	LoadEnv()

	cfg := Config{
		HTTPAddr:        GetEnv("FINDER_HTTP_ADDR", ":8080"),
		DefaultRadiusKm: GetFloat("FINDER_DEFAULT_RADIUS_KM", 1),
		MinRadiusKm:     GetFloat("FINDER_MIN_RADIUS_KM", 0.5),
		MaxRadiusKm:     GetFloat("FINDER_MAX_RADIUS_KM", 10),
		SuggestDebounce: GetDuration("FINDER_SUGGEST_DEBOUNCE", 250*time.Millisecond),

		Source:      GetEnv("FINDER_POI_SOURCE", SourceFile),
		File:        GetEnv("FINDER_POI_FILE", "mosques.json"),
		Bucket:      GetEnv("MOSQUE_BUCKET_NAME", "mosques"),
		Dataset:     GetEnv("FINDER_DATASET", "bangladesh"),
		PostgresURL: GetEnv("POSTGRES_URL", ""),
		OverpassURL: GetEnv("OVERPASS_URL", ""),

		NominatimURL:       GetEnv("NOMINATIM_URL", ""),
		NominatimUserAgent: GetEnv("NOMINATIM_USER_AGENT", ""),
		ResolveDistricts:   GetBool("FINDER_RESOLVE_DISTRICTS", false),

		KafkaBroker:  GetEnv("KAFKA_BROKER", ""),
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "mosque-events"),
		KafkaGroupID: GetEnv("KAFKA_GROUP_ID", "mosque-finder"),
	}
	return cfg, cfg.Validate()
}

// Validate checks that the radius bounds are ordered and contain the default,
// and that the selected source has what it needs.
func (c Config) Validate() error {
	if c.MinRadiusKm <= 0 || c.MaxRadiusKm < c.MinRadiusKm {
		return fmt.Errorf("invalid radius bounds [%v, %v]", c.MinRadiusKm, c.MaxRadiusKm)
	}
	if c.DefaultRadiusKm < c.MinRadiusKm || c.DefaultRadiusKm > c.MaxRadiusKm {
		return fmt.Errorf("default radius %v outside [%v, %v]", c.DefaultRadiusKm, c.MinRadiusKm, c.MaxRadiusKm)
	}
	switch c.Source {
	case SourceFile, SourceS3, SourceOverpass:
	case SourcePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for source %q", c.Source)
		}
	default:
		return fmt.Errorf("unknown FINDER_POI_SOURCE %q", c.Source)
	}
	return nil
}

// KafkaEnabled reports whether the event feed should be consumed.
func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}
