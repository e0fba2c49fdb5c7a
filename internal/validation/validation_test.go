package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roombooking/internal/validation"
)

func TestValidator_Country(t *testing.T) {
	v := validation.New(nil)

	for _, ok := range []string{"Nigeria", "nigeria", " Kenya ", "NG", "USA"} {
		assert.Nil(t, v.Country("country", ok), "expected %q to be accepted", ok)
	}
	for _, bad := range []string{"", "Wakanda", "ZZ"} {
		fe := v.Country("country", bad)
		require.NotNil(t, fe, "expected %q to be rejected", bad)
		assert.Equal(t, "country", fe.Field)
		assert.Equal(t, validation.MsgInvalidCountry, fe.Message)
	}
}

func TestValidator_CountryUsesConfiguredList(t *testing.T) {
	v := validation.New([]string{"Atlantis"})

	assert.Nil(t, v.Country("country", "ATLANTIS"))
	assert.NotNil(t, v.Country("country", "Kenya"))
	assert.Nil(t, v.Country("country", "KE"), "ISO codes stay valid with a custom list")
}

func TestValidator_TimeZone(t *testing.T) {
	v := validation.New(nil)

	assert.Nil(t, v.TimeZone("time_zone", "Africa/Lagos"))
	assert.Nil(t, v.TimeZone("time_zone", "America/New_York"))

	for _, bad := range []string{"", "Mars/Olympus", "Local", "not a zone"} {
		fe := v.TimeZone("time_zone", bad)
		require.NotNil(t, fe, "expected %q to be rejected", bad)
		assert.Equal(t, validation.MsgInvalidTimeZone, fe.Message)
	}
}

func TestValidator_URL(t *testing.T) {
	v := validation.New(nil)

	assert.Nil(t, v.URL("image_url", "https://example.com/lagos.png"))

	fe := v.URL("image_url", "not-a-url")
	require.NotNil(t, fe)
	assert.Equal(t, "image_url: Please input a valid url", fe.Error())
}

func TestValidator_RequiredAndState(t *testing.T) {
	v := validation.New(nil)

	fe := v.Required("name", "   ")
	require.NotNil(t, fe)
	assert.Equal(t, "name is required", fe.Message)
	assert.Nil(t, v.Required("name", "Lagos"))

	assert.Nil(t, v.State("state", "archived"))
	assert.NotNil(t, v.State("state", "gone"))
}
