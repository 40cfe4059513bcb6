package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 20, Age(time.Date(2004, 6, 15, 0, 0, 0, 0, time.UTC), now), "birthday today")
	assert.Equal(t, 19, Age(time.Date(2004, 6, 16, 0, 0, 0, 0, time.UTC), now), "birthday tomorrow")
	assert.Equal(t, 20, Age(time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 19, Age(time.Date(2004, 12, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestValidateBirthday(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateBirthday(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), now, 13, 100))
	assert.NoError(t, ValidateBirthday(time.Date(2011, 6, 15, 0, 0, 0, 0, time.UTC), now, 13, 100), "turns 13 today")

	assert.Error(t, ValidateBirthday(time.Date(2011, 6, 16, 0, 0, 0, 0, time.UTC), now, 13, 100), "still 12")
	assert.Error(t, ValidateBirthday(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), now, 13, 100), "over max age")
	assert.Error(t, ValidateBirthday(now.Add(24*time.Hour), now, 13, 100), "future birth date")
}
