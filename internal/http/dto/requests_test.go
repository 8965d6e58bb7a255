package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCampaignRequest_FormPayload(t *testing.T) {
	// shape sent by the campaign creator form: numbers as strings
	body := `{
		"name": "Spring Launch",
		"description": "Q2 push",
		"tasks": [{"name":"Tweet","description":"Post about launch","proof":"screenshot","pointsEarned":"10","price":"0"}]
	}`

	var req CreateCampaignRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	c := req.ToModel()
	assert.Empty(t, c.ID)
	assert.Equal(t, "Spring Launch", c.Name)
	require.Len(t, c.Tasks, 1)
	points, err := c.Tasks[0].PointsEarned.Float64()
	require.NoError(t, err)
	assert.Equal(t, 10.0, points)
	assert.NoError(t, c.Validate())
}

func TestCreateCampaignRequest_IgnoresClientID(t *testing.T) {
	var req CreateCampaignRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"mine","name":"x"}`), &req))
	assert.Empty(t, req.ToModel().ID)
	assert.NotNil(t, req.ToModel().Tasks)
}
