package personalnumber

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("StripsNonDigits", func(t *testing.T) {
		assert.Equal(t, "198501011234", Normalize("19850101-1234"))
		assert.Equal(t, "198501011234", Normalize(" 19 8501011234 "))
	})

	t.Run("CenturyInference", func(t *testing.T) {
		currentYY := time.Now().Year() % 100

		// Embedded year 85: prior century unless we are past 2085.
		expected := "198501011234"
		if 85 <= currentYY {
			expected = "208501011234"
		}
		assert.Equal(t, expected, Normalize("8501011234"))

		// Embedded year 00 is never in the future, so current century.
		assert.Equal(t, "200001011234", Normalize("0001011234"))
	})

	t.Run("ShortFormWithSeparator", func(t *testing.T) {
		assert.Equal(t, "198112189876", Normalize("811218-9876"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		inputs := []string{"8501011234", "198501011234", "850101-1234", "123", "", "abc"}
		for _, input := range inputs {
			once := Normalize(input)
			assert.Equal(t, once, Normalize(once), fmt.Sprintf("Normalize not idempotent for %q", input))
		}
	})

	t.Run("OtherLengthsPassThrough", func(t *testing.T) {
		assert.Equal(t, "123", Normalize("123"))
		assert.Equal(t, "85010112345", Normalize("85010112345"))
		assert.Equal(t, "", Normalize("no digits here"))
	})
}

func TestValid(t *testing.T) {
	t.Run("AcceptsShortAndLongForms", func(t *testing.T) {
		assert.True(t, Valid("8501011234"))
		assert.True(t, Valid("198501011234"))
		assert.True(t, Valid("850101-1234"))
	})

	t.Run("RejectsOtherLengths", func(t *testing.T) {
		assert.False(t, Valid("123"))
		assert.False(t, Valid("85010112345")) // 11 digits
		assert.False(t, Valid("1985010112345"))
		assert.False(t, Valid(""))
		assert.False(t, Valid("not a number"))
	})
}

func TestValidStrict(t *testing.T) {
	t.Run("AcceptsValidCheckDigit", func(t *testing.T) {
		// 8112189876 has a valid Luhn check digit.
		assert.True(t, ValidStrict("811218-9876"))
		assert.True(t, ValidStrict("198112189876"))
	})

	t.Run("RejectsBadCheckDigit", func(t *testing.T) {
		assert.False(t, ValidStrict("811218-9875"))
	})

	t.Run("RejectsBadLengths", func(t *testing.T) {
		assert.False(t, ValidStrict("123"))
		assert.False(t, ValidStrict(""))
	})
}
