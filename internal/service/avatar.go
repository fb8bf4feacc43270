package service

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// MaxAvatarSize is the largest accepted avatar upload
const MaxAvatarSize = 5 << 20

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// readAvatar buffers an upload, enforcing the size limit and sniffing the
// image type from its content rather than trusting the client header.
func readAvatar(body io.Reader) (data []byte, contentType, ext string, err error) {
	data, err = io.ReadAll(io.LimitReader(body, MaxAvatarSize+1))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) == 0 {
		return nil, "", "", fmt.Errorf("%w: avatar is empty", ErrValidation)
	}
	if len(data) > MaxAvatarSize {
		return nil, "", "", fmt.Errorf("%w: avatar exceeds %d bytes", ErrValidation, MaxAvatarSize)
	}

	contentType = http.DetectContentType(data)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: unsupported avatar type %s", ErrValidation, contentType)
	}
	return data, contentType, ext, nil
}

func avatarKey(userID uint, ext string) string {
	return fmt.Sprintf("avatars/%d/%s.%s", userID, uuid.NewString(), ext)
}
