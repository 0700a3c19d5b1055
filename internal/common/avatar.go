package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"
	"github.com/pastevault/backend/pkg/storage"
	"github.com/pastevault/backend/pkg/xcontext"
)

const avatarSize = 256

// FetchAvatar downloads the provider avatar, normalizes it to a 256px png
// and uploads it to object storage. It returns the public url of the copy.
func FetchAvatar(ctx context.Context, store storage.Storage, avatarURL string) (string, error) {
	cfg := xcontext.Configs(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("avatar download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.File.MaxSize))
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	img = resize.Thumbnail(avatarSize, avatarSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	uploaded, err := store.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.File.AvatarBucket,
		Prefix:   "avatars",
		FileName: "avatar.png",
		Mime:     "image/png",
		Data:     buf.Bytes(),
	})
	if err != nil {
		return "", err
	}

	return uploaded.Url, nil
}
