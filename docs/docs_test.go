package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Swagger string                 `json:"swagger"`
		Info    map[string]interface{} `json:"info"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Tabbit API", doc.Info["title"])
	assert.Contains(t, doc.Paths, "/v1/rounds/{roundID}/draw")
	assert.Contains(t, doc.Paths, "/v1/tournaments/{tournamentID}/standings")
	assert.Contains(t, doc.Paths, "/v1/tags/{tagID}/judges/{judgeID}")
}
