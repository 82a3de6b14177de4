package enums

import "strings"

type ResourceCategory string

const (
	CategoryReading   ResourceCategory = "reading"
	CategoryListening ResourceCategory = "listening"
	CategoryWriting   ResourceCategory = "writing"
	CategorySpeaking  ResourceCategory = "speaking"
	CategoryExtra     ResourceCategory = "extra_resources"
)

// ResourceCategories lists every category in the order the student
// dashboard renders them.
func ResourceCategories() []ResourceCategory {
	return []ResourceCategory{
		CategoryReading,
		CategoryListening,
		CategoryWriting,
		CategorySpeaking,
		CategoryExtra,
	}
}

func ParseResourceCategory(value string) (ResourceCategory, bool) {
	switch ResourceCategory(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryReading:
		return CategoryReading, true
	case CategoryListening:
		return CategoryListening, true
	case CategoryWriting:
		return CategoryWriting, true
	case CategorySpeaking:
		return CategorySpeaking, true
	case CategoryExtra:
		return CategoryExtra, true
	default:
		return "", false
	}
}

func (c ResourceCategory) String() string {
	return string(c)
}
