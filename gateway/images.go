package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrImageNotFound = errors.New("image not found")

// ImageName returns a random file name that keeps the extension of original.
func ImageName(original string) string {
	ext := strings.ToLower(path.Ext(path.Base(original)))
	return uuid.NewString() + ext
}

// ImageURL is where an uploaded image is publicly served.
func (g *Gateway) ImageURL(name string) string {
	return g.opts.PublicBaseURL + "/images/" + name
}

// UploadImage stores the asset under a random name and returns its public URL.
// Names are not checked for collisions and content type is stored as given.
func (g *Gateway) UploadImage(ctx context.Context, original, contentType string, src io.Reader) (string, error) {
	name := ImageName(original)
	meta := options.GridFSUpload().SetMetadata(map[string]string{
		"original_name": path.Base(original),
		"content_type":  contentType,
	})

	up, err := g.images.OpenUploadStream(name, meta)
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", name, err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = up.SetWriteDeadline(dl)
	}
	if _, err := io.Copy(up, src); err != nil {
		_ = up.Abort()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := up.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", name, err)
	}
	return g.ImageURL(name), nil
}

// Image is an open stored asset; the caller closes it.
type Image struct {
	io.ReadCloser
	Name        string
	Size        int64
	ContentType string
}

func (g *Gateway) OpenImage(ctx context.Context, name string) (*Image, error) {
	stream, err := g.images.OpenDownloadStreamByName(name)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", name, err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(dl)
	}

	img := &Image{ReadCloser: stream, Name: name}
	if f := stream.GetFile(); f != nil {
		img.Size = f.Length
		if f.Metadata != nil {
			if ct, ok := f.Metadata.Lookup("content_type").StringValueOK(); ok {
				img.ContentType = ct
			}
		}
	}
	return img, nil
}
