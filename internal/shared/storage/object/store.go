package object

import (
	"context"
	"errors"
	"io"
)

// ErrContainerNotFound indicates the named container does not exist.
var ErrContainerNotFound = errors.New("container not found")

// ContainerStore defines the contract for container and object operations
// against the object-storage service. Container names are assumed to be
// sanitized by the caller.
type ContainerStore interface {
	// CreateContainer creates a container by name.
	CreateContainer(ctx context.Context, name string) error
	// ConfigureContainer applies public-read and web-listing metadata.
	ConfigureContainer(ctx context.Context, name string) error
	// HeadContainer checks that a container exists.
	HeadContainer(ctx context.Context, name string) error
	// StoreObject writes an object under name inside the container.
	StoreObject(ctx context.Context, container, name, contentType string, r io.Reader) (int64, error)
}
