package cache

import "strings"

const (
	GlobalKeyPrefix = "quizbook"
)

// GenerateCacheKey builds "quizbook:<service>:<objectType>:<identifier>".
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}

// QuizTreeKey is the key under which the assembled tree of the quiz with
// the given slug is cached.
func QuizTreeKey(slug string) string {
	return GenerateCacheKey("quiz", "tree", slug)
}

// QuizListKey is the key of the cached quiz listing.
func QuizListKey() string {
	return GenerateCacheKey("quiz", "list", "all")
}
