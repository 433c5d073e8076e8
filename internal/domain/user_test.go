package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("builds a valid user", func(t *testing.T) {
		user, err := NewUser("Alice", "Smith", "12345678Z")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Username())
		assert.Equal(t, "Smith", user.LastName())
		assert.Equal(t, "12345678Z", user.DNI())
		assert.False(t, user.IsZero())
		assert.Equal(t, "Alice Smith - DNI: 12345678Z", user.String())
	})

	t.Run("keeps non-ASCII names", func(t *testing.T) {
		user, err := NewUser("Agustín", "Estévez Domínguez", "76826889N")
		require.NoError(t, err)
		assert.Equal(t, "Agustín", user.Username())
		assert.Equal(t, "Estévez Domínguez", user.LastName())
	})

	invalid := []struct {
		name     string
		username string
		lastName string
		dni      string
		field    string
	}{
		{name: "empty username", username: "", lastName: "Smith", dni: "12345678Z", field: FieldUsername},
		{name: "empty last name", username: "Alice", lastName: "", dni: "12345678Z", field: FieldLastName},
		{name: "empty dni", username: "Alice", lastName: "Smith", dni: "", field: FieldDNI},
		{name: "bad checksum", username: "Alice", lastName: "Smith", dni: "12345678A", field: FieldDNI},
		{name: "short dni", username: "Alice", lastName: "Smith", dni: "1234Z", field: FieldDNI},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.lastName, tt.dni)
			require.Error(t, err)
			assert.True(t, user.IsZero())
			assert.ErrorIs(t, err, ErrInvalidUser)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUserWithNames(t *testing.T) {
	user, err := NewUser("Alice", "Smith", "12345678Z")
	require.NoError(t, err)

	renamed, err := user.WithNames("Alicia", "Smyth")
	require.NoError(t, err)
	assert.Equal(t, "12345678Z", renamed.DNI())
	assert.Equal(t, "Alicia", renamed.Username())
	assert.Equal(t, "Alice", user.Username(), "receiver is unchanged")

	_, err = user.WithNames("", "Smyth")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestUserValidate(t *testing.T) {
	user, err := NewUser("Alice", "Smith", "12345678Z")
	require.NoError(t, err)
	assert.NoError(t, user.Validate())

	err = User{}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldUsername, verr.Field)
	assert.ErrorIs(t, err, ErrInvalidUser)
}
