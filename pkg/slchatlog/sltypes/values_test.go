package sltypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

func TestParseLindenAmount(t *testing.T) {
	amount, rest, err := sltypes.ParseLindenAmount("L$250: thanks")
	require.NoError(t, err)
	assert.Equal(t, sltypes.LindenAmount(250), amount)
	assert.Equal(t, ": thanks", rest)
	assert.Equal(t, "L$250", amount.String())

	_, _, err = sltypes.ParseLindenAmount("L$")
	assert.ErrorIs(t, err, sltypes.ErrNoMatch)
	_, _, err = sltypes.ParseLindenAmount("$250")
	assert.ErrorIs(t, err, sltypes.ErrNoMatch)
}

func TestParseDistance(t *testing.T) {
	d, rest, err := sltypes.ParseDistance("12.50 m)")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, float64(d), 1e-9)
	assert.Equal(t, ")", rest)

	for _, input := range []string{"12 m", "12.5m", ".5 m", "12.5 km"} {
		_, _, err := sltypes.ParseDistance(input)
		assert.ErrorIs(t, err, sltypes.ErrNoMatch, input)
	}
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		input string
		want  sltypes.Area
	}{
		{"chat range", sltypes.ChatRange},
		{"draw distance", sltypes.DrawDistance},
		{"region", sltypes.Region},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := sltypes.ParseArea(tt.input + ".")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, ".", rest)
			assert.Equal(t, tt.input, got.String())
		})
	}

	_, _, err := sltypes.ParseArea("parcel")
	assert.ErrorIs(t, err, sltypes.ErrNoMatch)
}

func TestVolumeAndMessage(t *testing.T) {
	tests := []struct {
		input   string
		volume  sltypes.ChatVolume
		message string
	}{
		{"whispers: psst", sltypes.Whisper, "psst"},
		{"shouts: HEY", sltypes.Shout, "HEY"},
		{"hello", sltypes.Say, "hello"},
		{"whispers:no space", sltypes.Say, "whispers:no space"},
		{"", sltypes.Say, ""},
	}
	for _, tt := range tests {
		volume, message := sltypes.VolumeAndMessage(tt.input)
		assert.Equal(t, tt.volume, volume, tt.input)
		assert.Equal(t, tt.message, message, tt.input)
	}
	assert.Equal(t, "region_say", sltypes.RegionSay.String())
}

func TestParseURLLocation(t *testing.T) {
	loc, rest, err := sltypes.ParseURLLocation("Da%20Boom/128/64/23 )")
	require.NoError(t, err)
	assert.Equal(t, sltypes.Location{Region: "Da Boom", X: 128, Y: 64, Z: 23}, loc)
	assert.Equal(t, " )", rest)
	assert.Equal(t, "https://maps.secondlife.com/secondlife/Da%20Boom/128/64/23", loc.MapsURL())

	loc, _, err = sltypes.ParseURLLocation("Sandbox/10/20/-5")
	require.NoError(t, err)
	assert.Equal(t, -5, loc.Z)

	for _, input := range []string{"/1/2/3", "Sandbox/1/2", "Sandbox/a/2/3", "Bad%zzName/1/2/3", "X/1/2/3"} {
		_, rest, err := sltypes.ParseURLLocation(input)
		assert.ErrorIs(t, err, sltypes.ErrNoMatch, input)
		assert.Equal(t, input, rest)
	}
}

func TestNewRegionName(t *testing.T) {
	name, err := sltypes.NewRegionName("  Ahern ")
	require.NoError(t, err)
	assert.Equal(t, sltypes.RegionName("Ahern"), name)

	_, err = sltypes.NewRegionName("This Region Name Is Far Too Long To Be Valid")
	assert.Error(t, err)
}

func TestParseUint(t *testing.T) {
	v, rest, err := sltypes.ParseUint("42 scripts")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
	assert.Equal(t, " scripts", rest)
}

func TestParseRegionCoordinates(t *testing.T) {
	c, rest, err := sltypes.ParseRegionCoordinates("{ 63.0486, 45.2515, 1501.08 } on parcel")
	require.NoError(t, err)
	assert.Equal(t, sltypes.RegionCoordinates{X: 63.0486, Y: 45.2515, Z: 1501.08}, c)
	assert.Equal(t, " on parcel", rest)

	c, rest, err = sltypes.ParseCoordinateList("12, -3.5,100, has")
	require.NoError(t, err)
	assert.Equal(t, sltypes.RegionCoordinates{X: 12, Y: -3.5, Z: 100}, c)
	assert.Equal(t, ", has", rest)

	_, _, err = sltypes.ParseRegionCoordinates("{ 1, 2 }")
	assert.ErrorIs(t, err, sltypes.ErrNoMatch)
}
