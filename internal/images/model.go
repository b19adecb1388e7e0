package images

// Image records are raw JSON documents (map[string]any) throughout this
// layer: the database hands them over as loose JSON and the shaper's job is
// reshaping, not typing. The fields below name the keys this layer touches.
const (
	fieldID          = "_id"
	fieldRev         = "_rev"
	fieldAttachments = "_attachments"

	FieldID          = "id"
	FieldFileName    = "fileName"
	FieldContentType = "contentType"
	FieldURL         = "url"
	FieldUserID      = "userId"
	FieldDeviceID    = "deviceId"
	FieldUploadedTs  = "uploadedTs"
	FieldType        = "type"
	FieldUser        = "user"
)

// TypeImage is the type discriminator stored on every image document.
const TypeImage = "image"

// UploadContext is the per-request identity an upload runs under, derived
// from the authenticated session. Never persisted by this layer.
type UploadContext struct {
	UserID   string
	DeviceID string
}

// Collection is the uniform envelope for all list-returning read operations.
type Collection struct {
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
}

// WrapAsCollection wraps shaped records with their count. A nil slice
// becomes an empty, non-null records array.
func WrapAsCollection(records []map[string]any) Collection {
	if records == nil {
		records = []map[string]any{}
	}
	return Collection{Count: len(records), Records: records}
}
