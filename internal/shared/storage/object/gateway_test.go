package object

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

type fakeStore struct {
	createErr    error
	configureErr error
	headErr      error
	storeErr     error

	created    []string
	configured []string
	stored     []storedObject
}

type storedObject struct {
	container   string
	name        string
	contentType string
	data        []byte
}

func (f *fakeStore) CreateContainer(ctx context.Context, name string) error {
	f.created = append(f.created, name)
	return f.createErr
}

func (f *fakeStore) ConfigureContainer(ctx context.Context, name string) error {
	f.configured = append(f.configured, name)
	return f.configureErr
}

func (f *fakeStore) HeadContainer(ctx context.Context, name string) error {
	return f.headErr
}

func (f *fakeStore) StoreObject(ctx context.Context, container, name, contentType string, r io.Reader) (int64, error) {
	if f.storeErr != nil {
		return 0, f.storeErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.stored = append(f.stored, storedObject{container: container, name: name, contentType: contentType, data: data})
	return int64(len(data)), nil
}

func TestCreateContainerSuccess(t *testing.T) {
	store := &fakeStore{}
	g := NewGateway(store, time.Second)

	if !g.CreateContainer(context.Background(), "u1") {
		t.Fatalf("expected true")
	}
	if len(store.created) != 1 || store.created[0] != "u1" {
		t.Fatalf("created = %v", store.created)
	}
	if len(store.configured) != 1 {
		t.Fatalf("configure was not applied")
	}
}

func TestCreateContainerNilStore(t *testing.T) {
	g := NewGateway(nil, time.Second)
	if g.CreateContainer(context.Background(), "u1") {
		t.Fatalf("nil store must fail")
	}

	var nilGateway *Gateway
	if nilGateway.CreateContainer(context.Background(), "u1") {
		t.Fatalf("nil gateway must fail")
	}
}

func TestCreateContainerFailures(t *testing.T) {
	boom := errors.New("boom")

	for name, store := range map[string]*fakeStore{
		"create":    {createErr: boom},
		"configure": {configureErr: boom},
	} {
		g := NewGateway(store, time.Second)
		if g.CreateContainer(context.Background(), "u1") {
			t.Fatalf("%s failure must return false", name)
		}
	}
}

func TestStoreObjectSuccess(t *testing.T) {
	store := &fakeStore{}
	g := NewGateway(store, time.Second)

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 32)...)
	if !g.StoreObject(context.Background(), png, "a.png", "u1") {
		t.Fatalf("expected true")
	}
	if len(store.stored) != 1 {
		t.Fatalf("stored = %v", store.stored)
	}
	obj := store.stored[0]
	if obj.container != "u1" || obj.name != "a.png" {
		t.Fatalf("object = %+v", obj)
	}
	if obj.contentType != "image/png" {
		t.Fatalf("contentType = %s, want image/png", obj.contentType)
	}
	if len(obj.data) != len(png) {
		t.Fatalf("stored %d bytes, want %d", len(obj.data), len(png))
	}
}

func TestStoreObjectMissingContainer(t *testing.T) {
	store := &fakeStore{headErr: ErrContainerNotFound}
	g := NewGateway(store, time.Second)

	if g.StoreObject(context.Background(), []byte("x"), "a.png", "u1") {
		t.Fatalf("missing container must return false")
	}
	if len(store.stored) != 0 {
		t.Fatalf("object must not be written when the container is absent")
	}
}

func TestStoreObjectWriteFailure(t *testing.T) {
	store := &fakeStore{storeErr: errors.New("disk full")}
	g := NewGateway(store, time.Second)

	if g.StoreObject(context.Background(), []byte("x"), "a.png", "u1") {
		t.Fatalf("write failure must return false")
	}
}
