package utils

import (
	"fmt"
	"time"
)

// Age in whole years at the reference date.
func Age(birthday, at time.Time) int {
	years := at.Year() - birthday.Year()
	if at.Month() < birthday.Month() ||
		(at.Month() == birthday.Month() && at.Day() < birthday.Day()) {
		years--
	}
	return years
}

// ValidateBirthday applies the signup age policy. The bounds are
// business policy, injected from configuration rather than fixed here.
func ValidateBirthday(birthday, now time.Time, minAge, maxAge int) error {
	if birthday.After(now) {
		return fmt.Errorf("birth date cannot be in the future")
	}
	age := Age(birthday, now)
	if age < minAge {
		return fmt.Errorf("you must be at least %d years old to register", minAge)
	}
	if age > maxAge {
		return fmt.Errorf("please enter a valid birth date")
	}
	return nil
}
