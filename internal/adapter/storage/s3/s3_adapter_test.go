package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	k := objectKey("PNG")
	assert.True(t, strings.HasPrefix(k, "images/"))
	assert.True(t, strings.HasSuffix(k, ".png"))
	assert.NotEqual(t, k, objectKey(".png"))
	assert.NotContains(t, objectKey(""), ".")
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/pets/images/a.jpg", objectURL("https://cdn.example.com/pets/", "images/a.jpg"))
	assert.Equal(t, "http://localhost:9000/pets/images/a.jpg", objectURL("http://localhost:9000/pets", "images/a.jpg"))
}
