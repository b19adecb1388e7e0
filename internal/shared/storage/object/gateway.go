package object

import (
	"bytes"
	"context"
	"time"

	"photoshare-backend/internal/shared/telemetry"
)

const defaultCallTimeout = 15 * time.Second

// Gateway exposes the boolean storage contract handlers rely on. Every
// failure collapses to false; the failing stage is only visible through
// structured logs.
type Gateway struct {
	Store   ContainerStore
	Timeout time.Duration
}

// NewGateway wraps a container store. timeout bounds each storage call;
// zero selects the default.
func NewGateway(store ContainerStore, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Gateway{Store: store, Timeout: timeout}
}

// CreateContainer creates the named container and applies public-read
// metadata to it. A gateway without a backing store fails unconditionally.
func (g *Gateway) CreateContainer(ctx context.Context, name string) bool {
	if g == nil || g.Store == nil {
		telemetry.Error("storage.create_container.failed", map[string]any{
			"container": name,
			"stage":     "session",
		})
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	if err := g.Store.CreateContainer(ctx, name); err != nil {
		telemetry.Error("storage.create_container.failed", map[string]any{
			"container": name,
			"stage":     "create",
			"err":       err.Error(),
		})
		return false
	}

	if err := g.Store.ConfigureContainer(ctx, name); err != nil {
		telemetry.Error("storage.create_container.failed", map[string]any{
			"container": name,
			"stage":     "configure",
			"err":       err.Error(),
		})
		return false
	}

	telemetry.Info("storage.create_container.ok", map[string]any{"container": name})
	return true
}

// StoreObject writes binary under name inside the container. The container
// must already exist.
func (g *Gateway) StoreObject(ctx context.Context, binary []byte, name, container string) bool {
	if g == nil || g.Store == nil {
		telemetry.Error("storage.store_object.failed", map[string]any{
			"container": container,
			"object":    name,
			"stage":     "session",
		})
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	if err := g.Store.HeadContainer(ctx, container); err != nil {
		telemetry.Error("storage.store_object.failed", map[string]any{
			"container": container,
			"object":    name,
			"stage":     "missing_container",
			"err":       err.Error(),
		})
		return false
	}

	contentType := sniffContentType(binary)
	size, err := g.Store.StoreObject(ctx, container, name, contentType, bytes.NewReader(binary))
	if err != nil {
		telemetry.Error("storage.store_object.failed", map[string]any{
			"container": container,
			"object":    name,
			"stage":     "store",
			"err":       err.Error(),
		})
		return false
	}

	telemetry.Info("storage.store_object.ok", map[string]any{
		"container":  container,
		"object":     name,
		"size_bytes": size,
	})
	return true
}
