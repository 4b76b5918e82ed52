package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Normalize(t *testing.T) {
	assert.Equal(t, KindSuccess, KindSuccess.Normalize())
	assert.Equal(t, KindError, KindError.Normalize())
	assert.Equal(t, KindWarning, KindWarning.Normalize())
	assert.Equal(t, KindInfo, KindInfo.Normalize())
	assert.Equal(t, KindInfo, Kind("").Normalize())
	assert.Equal(t, KindInfo, Kind("fatal").Normalize())
}

func TestNotification_json_roundtrip(t *testing.T) {
	n := Notification{ID: 7, Kind: KindWarning, Title: "t", Body: "b", State: StateVisible}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"warning"`)
	assert.Contains(t, string(data), `"state":"visible"`)
}
