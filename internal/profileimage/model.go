package profileimage

import (
	"encoding/base64"
	"time"
)

// Image is the single stored profile image for a user. At most one record
// exists per user id; uploads replace the payload in place.
type Image struct {
	UserID    string
	Data      []byte
	UpdatedAt time.Time
}

// Base64 renders the payload as a standard Base64 string with no line wrapping.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}
