package deliver

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/handpartners/pmfstudio/internal/contract"
)

// folderMimeType identifies Drive folders in file queries.
const folderMimeType = "application/vnd.google-apps.folder"

// pdfMimeType is the content type uploaded reports are tagged with.
const pdfMimeType = "application/pdf"

// DriveUploader implements contract.Uploader on Google Drive. Reports land
// in a named folder, created on first use. When sharedDriveID is set, the
// folder lives on that shared drive instead of the service account's own.
type DriveUploader struct {
	service       *drive.Service
	folderName    string
	sharedDriveID string
}

var _ contract.Uploader = &DriveUploader{} // Compile-time check

// NewDriveUploader authenticates with service account credentials JSON.
func NewDriveUploader(ctx context.Context, credentialsJSON []byte, folderName, sharedDriveID string) (*DriveUploader, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is not set")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	if folderName == "" {
		folderName = contract.DefaultDriveFolder
	}
	return &DriveUploader{
		service:       service,
		folderName:    folderName,
		sharedDriveID: sharedDriveID,
	}, nil
}

// Upload stores the report PDF and returns its webViewLink.
func (u *DriveUploader) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	folderID, err := u.ensureFolder(ctx)
	if err != nil {
		return "", err
	}

	file := &drive.File{
		Name:     filename,
		Parents:  []string{folderID},
		MimeType: pdfMimeType,
	}

	created, err := u.service.Files.Create(file).
		Context(ctx).
		Media(bytes.NewReader(content)).
		SupportsAllDrives(true).
		Fields("id", "webViewLink").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload report to drive: %w", err)
	}

	return created.WebViewLink, nil
}

// ensureFolder finds the report folder, creating it if missing.
func (u *DriveUploader) ensureFolder(ctx context.Context) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", u.folderName, folderMimeType)

	call := u.service.Files.List().
		Context(ctx).
		Q(query).
		Fields("files(id)").
		PageSize(1)
	if u.sharedDriveID != "" {
		call = call.
			Corpora("drive").
			DriveId(u.sharedDriveID).
			IncludeItemsFromAllDrives(true).
			SupportsAllDrives(true)
	}

	list, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up drive folder %q: %w", u.folderName, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder := &drive.File{
		Name:     u.folderName,
		MimeType: folderMimeType,
	}
	if u.sharedDriveID != "" {
		folder.Parents = []string{u.sharedDriveID}
	}

	created, err := u.service.Files.Create(folder).
		Context(ctx).
		SupportsAllDrives(true).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder %q: %w", u.folderName, err)
	}
	return created.Id, nil
}
