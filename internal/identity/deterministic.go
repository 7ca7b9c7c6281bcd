package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const postNamespace = "blogfront:post:"

// UUID derives a deterministic UUID from key using go-hashid. Keys must be
// prefixed by their kind so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID identifies a post by its manifest file name.
func PostUUID(file string) uuid.UUID {
	file = strings.TrimPrefix(strings.TrimSpace(file), "./")
	if file == "" {
		return uuid.Nil
	}
	return UUID(postNamespace + file)
}

// ShortID returns the first eight hex characters of the post UUID. It is used
// as a slug fallback when a file name normalises to nothing.
func ShortID(file string) string {
	id := PostUUID(file)
	if id == uuid.Nil {
		return ""
	}
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
