package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEq deep-compares two JSON documents after normalising both
// through unmarshal, so key order and whitespace never matter.
func AssertJSONEq(t *testing.T, expected, actual []byte) {
	t.Helper()

	var expVal, actVal interface{}
	require.NoError(t, json.Unmarshal(expected, &expVal), "expected document is not valid JSON")
	require.NoError(t, json.Unmarshal(actual, &actVal), "actual document is not valid JSON\nbody: %s", actual)

	assert.Equal(t, expVal, actVal, "JSON body mismatch")
}

// AssertEnvelope checks the success flag and, when msg is non-empty, the
// message field of a wire envelope.
func AssertEnvelope(t *testing.T, body []byte, success bool, msg string) map[string]interface{} {
	t.Helper()

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &env), "response is not valid JSON\nbody: %s", body)

	assert.Equal(t, success, env["success"], "success flag mismatch")
	if msg != "" {
		assert.Equal(t, msg, env["message"], "message mismatch")
	}
	return env
}

// AssertAllMocksCalled fails the test when any registered mock route was
// never hit.
func AssertAllMocksCalled(t *testing.T, mt *MockTransport) {
	t.Helper()
	for _, pattern := range mt.UncalledRoutes() {
		assert.Fail(t, "mock route never called", "pattern %q", pattern)
	}
}
