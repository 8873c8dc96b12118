package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[sample]("Sure! ```json\n{\"name\": \"Objectness\"}\n``` hope that helps")
	require.NoError(t, err)
	assert.Equal(t, "Objectness", got.Name)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON[sample]("no json here")
	assert.Error(t, err)

	_, err = ParseJSON[sample]("} backwards {")
	assert.Error(t, err)

	_, err = ParseJSON[sample]("{\"name\": 3}")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}
