package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFormatChecker_KnownFormats(t *testing.T) {
	assert.True(t, DefaultFormatChecker("email", "user@example.com"))
	assert.False(t, DefaultFormatChecker("email", "not-an-email"))
	assert.True(t, DefaultFormatChecker("ipv4", "127.0.0.1"))
	assert.False(t, DefaultFormatChecker("ipv4", "not-an-ip"))
}

func TestDefaultFormatChecker_UnknownFormatIsVacuous(t *testing.T) {
	assert.True(t, DefaultFormatChecker("x-made-up-format", "anything"))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-02-29")) // leap day
	assert.False(t, IsDate("2023-02-29"))
	assert.False(t, IsDate("2024-13-01"))
	assert.False(t, IsDate("2024-02-29T00:00:00Z"))
}

func TestIsTime(t *testing.T) {
	assert.True(t, IsTime("23:59:60Z"))
	assert.True(t, IsTime("01:02:03.456+01:00"))
	assert.False(t, IsTime("24:00:00Z"))
	assert.False(t, IsTime("01:02:03"))
}

func TestIsDateTime(t *testing.T) {
	assert.True(t, IsDateTime("2024-02-29T23:59:60Z"))
	assert.False(t, IsDateTime("2024-02-29 23:59:60Z"))
	assert.False(t, IsDateTime("not-a-date-time"))
}

func TestIsHostname(t *testing.T) {
	assert.True(t, IsHostname("example.com"))
	assert.False(t, IsHostname("-example.com"))
	assert.False(t, IsHostname("example-.com"))
	assert.False(t, IsHostname(""))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, IsUUID("123e4567-e89b-12d3-a456-42661417400")) // too short
	assert.False(t, IsUUID("123e4567ae89b-12d3-a456-426614174000"))
}

func TestValidator_FormatKeyword(t *testing.T) {
	v := mustCreate(t, `{"type": "string", "format": "email"}`)

	status, _ := v.ValidateText([]byte(`"user@example.com"`))
	assert.Equal(t, StatusSuccess, status)

	status, errs := v.ValidateText([]byte(`"nope"`))
	assert.Equal(t, StatusValidationFailed, status)
	assert.NotNil(t, errs)
}

func TestValidator_CustomFormatChecker(t *testing.T) {
	v := mustCreate(t, `{"type": "string", "format": "even-length"}`)
	v.SetFormatChecker(func(name, value string) bool {
		if name != "even-length" {
			return true
		}
		return len(value)%2 == 0
	})

	status, _ := v.ValidateText([]byte(`"ab"`))
	assert.Equal(t, StatusSuccess, status)

	status, _ = v.ValidateText([]byte(`"abc"`))
	assert.Equal(t, StatusValidationFailed, status)
}
