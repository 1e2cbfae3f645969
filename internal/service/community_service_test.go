package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go-study-group", Slugify("Go Study Group"))
	assert.Equal(t, "art-design", Slugify("  Art & Design!  "))
	assert.Equal(t, "2024-cohort", Slugify("2024 Cohort"))
	assert.Equal(t, "", Slugify("!!!"))
}
