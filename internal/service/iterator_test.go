package service

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"mosque/internal/models"
	"mosque/internal/presentation"
)

type fakeMessages struct {
	ch        chan kafka.Message
	committed []int64
}

func newFakeMessages(values ...string) *fakeMessages {
	f := &fakeMessages{ch: make(chan kafka.Message, len(values))}
	for i, v := range values {
		f.ch <- kafka.Message{Offset: int64(i), Value: []byte(v)}
	}
	close(f.ch)
	return f
}

func (f *fakeMessages) Messages() <-chan kafka.Message { return f.ch }

func (f *fakeMessages) CommitOffset(_ context.Context, msg kafka.Message) error {
	f.committed = append(f.committed, msg.Offset)
	return nil
}

func notificationFor(key string) string {
	return `{"EventName":"s3:ObjectCreated:Put","Key":"mosques/` + key + `","Records":[{"eventName":"s3:ObjectCreated:Put","s3":{"bucket":{"name":"mosques"},"object":{"key":"` + key + `"}}}]}`
}

func TestFeedRun(t *testing.T) {
	reloaded := []models.Mosque{
		{ID: "new", Name: "Star Mosque", Lat: 23.7153, Lng: 90.4013, District: "Dhaka"},
	}
	var loadedKey, loadedBucket string
	loader := func(_ context.Context, bucket, key string) ([]models.Mosque, error) {
		loadedBucket, loadedKey = bucket, key
		return reloaded, nil
	}
	prepared := false
	prepare := func(_ context.Context, m []models.Mosque) []models.Mosque {
		prepared = true
		return m
	}

	msgs := newFakeMessages(
		`{"type":"reference_changed","lat":23.7153,"lng":90.4013,"source":"geolocation"}`,
		`{"type":"radius_changed","radius_km":5}`,
		`not json`,
		notificationFor("datasets%2Fbangladesh.json"),
		notificationFor("datasets/bangladesh/dhaka.json"),
		`{"type":"radius_changed","radius_km":-1}`,
	)

	engine := presentation.New([]models.Mosque{{ID: "old", Name: "Old", Lat: 22.3, Lng: 91.8}}, presentation.Options{RadiusKm: 1})
	engine.Attach(presentation.NewMemorySurface())

	NewFeed(msgs, loader, prepare).Run(context.Background(), engine)

	wantCommitted := []int64{0, 1, 2, 3, 4, 5}
	if len(msgs.committed) != len(wantCommitted) {
		t.Fatalf("committed %v, want %v", msgs.committed, wantCommitted)
	}
	for i, off := range wantCommitted {
		if msgs.committed[i] != off {
			t.Errorf("committed %v, want %v", msgs.committed, wantCommitted)
			break
		}
	}

	if loadedBucket != "mosques" || loadedKey != "datasets/bangladesh.json" {
		t.Errorf("loaded %s/%s", loadedBucket, loadedKey)
	}
	if !prepared {
		t.Error("prepare not called")
	}

	state := engine.State()
	if state.RadiusKm != 5 {
		t.Errorf("radius = %v, want 5", state.RadiusKm)
	}
	if len(state.Markers) != 1 || state.Markers[0].ID != "new" {
		t.Fatalf("markers = %+v", state.Markers)
	}
	if state.Markers[0].Label.Distance != "Distance: 0.00 km" {
		t.Errorf("distance = %q", state.Markers[0].Label.Distance)
	}
}

func TestFeedDecode(t *testing.T) {
	f := NewFeed(nil, func(context.Context, string, string) ([]models.Mosque, error) {
		return nil, errors.New("NoSuchKey")
	}, nil)

	item, err := f.Decode(context.Background(), kafka.Message{Value: []byte(`{"type":"reference_cleared"}`)})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := item.Event.(presentation.ReferenceCleared); !ok {
		t.Errorf("event = %#v", item.Event)
	}

	if _, err := f.Decode(context.Background(), kafka.Message{Value: []byte(notificationFor("datasets/x.json"))}); err == nil {
		t.Error("expected loader error")
	}
	if _, err := f.Decode(context.Background(), kafka.Message{Value: []byte(notificationFor("raw/x.json"))}); !errors.Is(err, ErrIgnored) {
		t.Errorf("err = %v, want ErrIgnored", err)
	}
	if _, err := f.Decode(context.Background(), kafka.Message{Value: []byte(`{"type":"unknown"}`)}); !errors.Is(err, presentation.ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}
