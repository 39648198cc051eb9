package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	hexStr := strings.Repeat("ab", AddressSize)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain hex", hexStr, false},
		{"0x prefix", "0x" + hexStr, false},
		{"surrounding whitespace", "  " + hexStr + " ", false},
		{"too short", "abcd", true},
		{"not hex", strings.Repeat("zz", AddressSize), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, hexStr, a.String())
		})
	}
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	var a Address
	a[0] = 0x01
	a[31] = 0xff

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+a.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, a, decoded)
}

func TestAddress_ScanValue(t *testing.T) {
	var a Address
	a[5] = 0x42

	v, err := a.Value()
	require.NoError(t, err)

	var scanned Address
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, a, scanned)

	require.NoError(t, scanned.Scan([]byte(a.String())))
	assert.Equal(t, a, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestAddress_IsZero(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())
	assert.False(t, Address{1}.IsZero())
}
