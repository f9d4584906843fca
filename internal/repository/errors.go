package repository

// Messages reported to clients when image bytes cannot be turned into a grid
const (
	// MsgEmptyUpload is returned for a file part with no content
	MsgEmptyUpload = "Uploaded file is empty."

	// MsgUndecodableUpload is returned when uploaded bytes are not a supported image
	MsgUndecodableUpload = "Failed to decode the image. The file might not be a valid image."

	// MsgUndecodableRemote is returned when downloaded bytes are not a supported image
	MsgUndecodableRemote = "Failed to decode the image from the URL content."

	// MsgEmptyRemote is returned when the remote server answered with no body
	MsgEmptyRemote = "The URL returned an empty response."
)
