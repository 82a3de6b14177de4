package enums

import "strings"

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

func ParsePostStatus(value string) (PostStatus, bool) {
	switch PostStatus(strings.ToLower(strings.TrimSpace(value))) {
	case PostDraft:
		return PostDraft, true
	case PostPublished:
		return PostPublished, true
	default:
		return "", false
	}
}

func (s PostStatus) String() string {
	return string(s)
}
