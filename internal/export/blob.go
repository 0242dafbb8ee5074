package export

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// Well-known Azurite development account.
const (
	azuriteAccount = "devstoreaccount1"
	azuriteKey     = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// blobClient is the subset of *azblob.Client the sink uses.
type blobClient interface {
	CreateContainer(ctx context.Context, containerName string, o *azblob.CreateContainerOptions) (azblob.CreateContainerResponse, error)
	UploadBuffer(ctx context.Context, containerName, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

// BlobSink uploads exports to a blob container.
type BlobSink struct {
	serviceURL string
	container  string
	client     blobClient
}

// NewBlobSink connects to the blob service at serviceURL. Plain http URLs are
// treated as Azurite and use its shared key; anything else authenticates
// with the default Azure credential chain.
func NewBlobSink(serviceURL, container string) (*BlobSink, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("blob service URL is required")
	}

	opts := &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: 3},
		},
	}

	var client *azblob.Client
	if strings.HasPrefix(serviceURL, "http://") {
		cred, err := azblob.NewSharedKeyCredential(azuriteAccount, azuriteKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	} else {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(serviceURL, cred, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	return &BlobSink{serviceURL: serviceURL, container: container, client: client}, nil
}

// EnsureContainer creates the container unless it already exists.
func (s *BlobSink) EnsureContainer(ctx context.Context) error {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("create container %s: %w", s.container, err)
	}
	return nil
}

// Put uploads data as container/name and returns the blob URL.
func (s *BlobSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(name, ".json"):
		contentType = "application/json"
	case strings.HasSuffix(name, ".csv"):
		contentType = "text/csv"
	}

	_, err := s.client.UploadBuffer(ctx, s.container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return s.blobURL(name), nil
}

func (s *BlobSink) blobURL(name string) string {
	u, err := url.JoinPath(s.serviceURL, s.container, name)
	if err != nil {
		return strings.TrimRight(s.serviceURL, "/") + "/" + s.container + "/" + name
	}
	return u
}
