package images

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"photoshare-backend/internal/pipeline"
	"photoshare-backend/internal/shared/metrics"
	"photoshare-backend/internal/shared/storage/object"
	"photoshare-backend/internal/shared/util"
)

// Service contains business logic for images.
type Service struct {
	Repo       Repo
	Gateway    *object.Gateway
	Dispatcher pipeline.Dispatcher
	PublicBase string
}

// Upload persists the binary to the user's container, records the enriched
// image document, and notifies the processing pipeline. The response is
// produced only after storage and database completion; the pipeline dispatch
// is never waited on.
func (s *Service) Upload(ctx context.Context, upctx UploadContext, imageJSON map[string]any, binary []byte) (map[string]any, error) {
	rawName, _ := imageJSON[FieldFileName].(string)
	fileName, err := util.SanitizeFileName(rawName)
	if err != nil {
		return nil, fmt.Errorf("%w: fileName is required", ErrInvalidInput)
	}

	container := upctx.UserID
	imageID := uuid.NewString()

	doc := make(map[string]any, len(imageJSON)+6)
	for k, v := range imageJSON {
		doc[k] = v
	}
	doc[FieldFileName] = fileName
	doc[FieldContentType] = detectContentType(binary)
	doc[FieldURL] = BuildURL(s.PublicBase, container, fileName)
	doc[FieldUserID] = upctx.UserID
	doc[FieldDeviceID] = upctx.DeviceID
	doc[FieldUploadedTs] = time.Now().UTC().Format(time.RFC3339)
	doc[FieldType] = TypeImage

	if !s.Gateway.StoreObject(ctx, binary, fileName, container) {
		// First upload for a user may race container provisioning; create
		// the container and retry once before giving up.
		if !s.Gateway.CreateContainer(ctx, container) {
			return nil, ErrStorage
		}
		if !s.Gateway.StoreObject(ctx, binary, fileName, container) {
			return nil, ErrStorage
		}
	}

	if err := s.Repo.CreateImage(ctx, imageID, doc); err != nil {
		return nil, fmt.Errorf("create image document: %w", err)
	}

	metrics.IncUploadAccepted()
	s.Dispatcher.Dispatch(imageID)

	record := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		record[k] = v
	}
	record[FieldID] = imageID
	return record, nil
}

// Get returns the shaped record for one image, or absent.
func (s *Service) Get(ctx context.Context, imageID string) (map[string]any, bool) {
	return s.Repo.ReadImageByID(ctx, imageID)
}

// List returns all images wrapped in the collection envelope.
func (s *Service) List(ctx context.Context) (Collection, error) {
	records, err := s.Repo.ListImages(ctx)
	if err != nil {
		return Collection{}, err
	}
	return WrapAsCollection(records), nil
}

// ListByUser returns one user's images wrapped in the collection envelope.
func (s *Service) ListByUser(ctx context.Context, userID string) (Collection, error) {
	records, err := s.Repo.ListImagesByUser(ctx, userID)
	if err != nil {
		return Collection{}, err
	}
	return WrapAsCollection(records), nil
}

func detectContentType(binary []byte) string {
	sample := binary
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return http.DetectContentType(sample)
}
