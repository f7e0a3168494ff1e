package usecases

// TextSanitizer strips markup from free-text fields before they are stored.
type TextSanitizer interface {
	StripTags(text string) string
}
