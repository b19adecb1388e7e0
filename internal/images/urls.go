package images

// BuildURL constructs the public object-storage URL for an image. It is pure
// concatenation; containerName and imageName must already be sanitized by
// the caller.
func BuildURL(publicBase, containerName, imageName string) string {
	return publicBase + "/" + containerName + "/" + imageName
}
