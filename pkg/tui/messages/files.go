package messages

type (
	// UploadPathsMsg uploads server-side paths.
	UploadPathsMsg struct {
		Paths []string
	}
	// UploadLocalFilesMsg uploads files picked on this machine.
	UploadLocalFilesMsg struct {
		Paths []string
	}
	// ReuploadFilesMsg re-uploads files referenced by the loaded session.
	ReuploadFilesMsg struct {
		Paths []string
	}
	// UploadPDFMsg uploads a PDF fetched by the backend.
	UploadPDFMsg struct {
		URL         string
		DisplayName string
	}
	// DeleteFileMsg deletes one uploaded file. Sent only after confirmation.
	DeleteFileMsg struct {
		Name string
	}
	// ClearFilesMsg deletes every uploaded file. Sent only after confirmation.
	ClearFilesMsg struct{}
	// RefreshFilesMsg reloads the uploaded file list.
	RefreshFilesMsg struct{}
	// RefreshSessionFilesMsg reloads the files referenced by the session.
	RefreshSessionFilesMsg struct{}
)
