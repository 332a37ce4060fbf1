package domain

// AvatarUpload describes the outcome of a successful avatar write.
// PublishErr is set when the object was stored but could not be made publicly
// readable; the upload itself still counts as a success.
type AvatarUpload struct {
	ObjectKey  string
	PublishErr error
}
