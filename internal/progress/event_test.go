package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

func TestEventWireShapes(t *testing.T) {
	t.Parallel()

	buf, err := Init(10, "Connecting to the maps provider...").NDJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"status":"init","current":0,"total":10,"message":"Connecting to the maps provider..."}`,
		string(buf))
	require.Equal(t, byte('\n'), buf[len(buf)-1])

	buf, err = Progressf(KindLead, 3, 10, "%s", "Acme Plumbing").NDJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"status":"progress","current":3,"total":10,"message":"Acme Plumbing"}`,
		string(buf))
}

func TestCompleteEventCarriesLeads(t *testing.T) {
	t.Parallel()

	buf, err := Complete([]lead.Lead{{Name: "Acme", Website: "https://acme.example"}}).NDJSON()
	require.NoError(t, err)

	var payload struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf, &payload))
	require.Equal(t, "complete", payload.Status)
	require.Contains(t, string(payload.Data), `"name":"Acme"`)
}

func TestCompleteEventEmptyListIsArray(t *testing.T) {
	t.Parallel()

	buf, err := Complete(nil).NDJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"complete","data":[]}`, string(buf))
}

func TestEventValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(5, "starting").Validate())
	require.NoError(t, Complete(nil).Validate())
	require.Error(t, Event{Status: "bogus"}.Validate())
	require.Error(t, Event{Status: StatusProgress}.Validate())
	require.Error(t, Event{Status: StatusProgress, Message: "m", Current: -1}.Validate())
}
